package progress

import (
	"time"

	"github.com/mobanhawi/prodash/key"
	"github.com/mobanhawi/prodash/unit"
)

// Item is the producer-side handle for a single task. It is the only
// way to mutate a task's record; two distinct live Items never share a
// Key (each AddChild call mints a fresh one). Updates made through one
// Item are totally ordered with respect to each other (its own mutex
// serializes them) but carry no ordering guarantee relative to any
// other Item's updates.
type Item struct {
	root *Root
	key  key.Key
	rec  *record
}

// Key returns the Item's position in the tree.
func (it *Item) Key() key.Key { return it.key }

// Init (re)starts the task: it resets Step to 0 and sets Max/Unit.
// Step is monotonic only *between* Init calls.
func (it *Item) Init(max *uint64, u unit.Unit) {
	it.rec.mu.Lock()
	it.rec.value.Step = 0
	it.rec.value.Max = max
	it.rec.value.Unit = u
	it.rec.value.Phase = Running
	it.rec.value.DoneAt = nil
	it.rec.value.Failed = false
	it.rec.value.FailMessage = ""
	it.rec.mu.Unlock()
}

// Set assigns the current step.
func (it *Item) Set(step uint64) {
	it.rec.mu.Lock()
	it.rec.value.Step = step
	it.rec.mu.Unlock()
}

// Inc increments the step by one.
func (it *Item) Inc() { it.IncBy(1) }

// IncBy increments the step by n.
func (it *Item) IncBy(n uint64) {
	it.rec.mu.Lock()
	it.rec.value.Step += n
	it.rec.mu.Unlock()
}

// SetName changes the task's display label.
func (it *Item) SetName(name string) {
	it.rec.mu.Lock()
	it.rec.value.Name = name
	it.rec.mu.Unlock()
}

// Name returns the task's current display label.
func (it *Item) Name() string {
	it.rec.mu.Lock()
	defer it.rec.mu.Unlock()
	return it.rec.value.Name
}

// Message appends a message attributed to this task's current name.
func (it *Item) Message(level Level, content string) {
	it.root.message(level, it.Name(), content)
}

// Blocked marks the task as waiting on an external resource.
func (it *Item) Blocked(reason string, eta *time.Time) {
	it.rec.mu.Lock()
	it.rec.value.Phase = Blocked
	it.rec.value.Reason = reason
	it.rec.value.ETA = eta
	it.rec.mu.Unlock()
}

// Halted marks the task as self-paused (e.g. backing off, rate limited).
func (it *Item) Halted(reason string, eta *time.Time) {
	it.rec.mu.Lock()
	it.rec.value.Phase = Halted
	it.rec.value.Reason = reason
	it.rec.value.ETA = eta
	it.rec.mu.Unlock()
}

// Done marks the task as successfully finished. An optional message is
// appended to the ring at Success level.
func (it *Item) Done(msg ...string) {
	now := time.Now()
	it.rec.mu.Lock()
	it.rec.value.DoneAt = &now
	it.rec.mu.Unlock()
	if len(msg) > 0 {
		it.root.message(Success, it.Name(), msg[0])
	}
}

// Fail marks the task as unsuccessfully finished. An optional message is
// appended to the ring at Failure level.
func (it *Item) Fail(msg ...string) {
	now := time.Now()
	text := ""
	if len(msg) > 0 {
		text = msg[0]
	}
	it.rec.mu.Lock()
	it.rec.value.Failed = true
	it.rec.value.FailMessage = text
	it.rec.value.DoneAt = &now
	it.rec.mu.Unlock()
	if len(msg) > 0 {
		it.root.message(Failure, it.Name(), text)
	}
}

// AddChild creates a new child task under it. It returns Progress
// (rather than a concrete *Item) to satisfy the generic façade in
// facade.go; callers that need the concrete type can type-assert the
// result, e.g. child := parent.AddChild("x").(*Item).
func (it *Item) AddChild(name string) Progress {
	return it.root.addChildOf(it.key, name)
}

// Close releases this Item's claim on its Key. A task that was marked
// Done or Fail is retained briefly for fade-out (see Options.FadeOutDuration);
// any other task is removed from the tree immediately. Close must be
// called exactly once per Item — Go has no destructors to hook, so the
// caller has to say explicitly when an Item is done.
func (it *Item) Close() {
	it.root.closeItem(it.key)
}

var _ Progress = (*Item)(nil)
