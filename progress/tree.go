package progress

import (
	"sync"
	"sync/atomic"
	"time"

	charmlog "github.com/charmbracelet/log"

	"github.com/mobanhawi/prodash/key"
)

// shardCount partitions the tree by the top-level key slot so that
// traversal can walk shards in order and get lexicographic order for
// free across subtrees, while within a shard concurrent writers never
// contend across unrelated subtrees. Fixed rather than sized off
// runtime.NumCPU() since it partitions a fixed-width key space, not
// host parallelism.
const shardCount = 32

// shardWidth is the span of top-level key values owned by one shard.
const shardWidth = (1 << 16) / shardCount

func shardIndex(k key.Key) int {
	return int(k[0]) / shardWidth
}

// record is the tree's internal, shard-owned representation of one
// task. Its own mutex guards Value mutation so that concurrent writers
// to different records never contend on the shard's structural lock.
type record struct {
	mu       sync.Mutex
	value    Value
	parent   key.Key
	children atomic.Uint32 // last child id allocated under this record
}

type shard struct {
	mu sync.RWMutex
	m  map[key.Key]*record
}

func newShard() *shard {
	return &shard{m: make(map[key.Key]*record)}
}

// Options configures a new Root.
type Options struct {
	// MessageCapacity bounds the message ring; 0 uses the default.
	MessageCapacity int
	// FadeOutDuration is how long a done/failed task's record is kept
	// around after Done or Fail was called, so a renderer has a chance to
	// show it as finished before it disappears. Default ~1s.
	FadeOutDuration time.Duration
	// Logger, if set, receives a mirrored entry for every Item.Message
	// call.
	Logger *charmlog.Logger
}

const defaultFadeOut = time.Second

// Root is the shared, multi-writer progress tree. It is created once
// per program and handed to many concurrent producers via Item handles;
// the only reader is expected to be a renderer's periodic tick.
type Root struct {
	shards  [shardCount]*shard
	ring    *ring
	fadeOut time.Duration
	logger  *charmlog.Logger

	rootChildren atomic.Uint32
}

// New constructs a Root. The zero Options value is valid and uses the
// documented defaults.
func New(opts Options) *Root {
	r := &Root{
		ring:    newRing(opts.MessageCapacity),
		fadeOut: opts.FadeOutDuration,
		logger:  opts.Logger,
	}
	if r.fadeOut <= 0 {
		r.fadeOut = defaultFadeOut
	}
	for i := range r.shards {
		r.shards[i] = newShard()
	}
	return r
}

func (r *Root) shardFor(k key.Key) *shard {
	return r.shards[shardIndex(k)]
}

// AddChild allocates a new top-level task named name and returns its
// Item handle.
func (r *Root) AddChild(name string) *Item {
	id := r.rootChildren.Add(1)
	k := key.New(truncateID(id))
	return r.insert(k, key.Key{}, name)
}

// addChildOf allocates a child of the record owning parent, using that
// record's own per-parent id counter.
func (r *Root) addChildOf(parent key.Key, name string) *Item {
	depth := parent.Depth()
	if depth >= key.MaxDepth {
		// Nothing deeper is addressable; collapse into a sibling of
		// the parent instead of silently losing the child.
		return r.addChildOf(parent.Parent(), name)
	}
	rec := r.record(parent)
	var id uint32
	if rec != nil {
		id = rec.children.Add(1)
	} else {
		id = r.rootChildren.Add(1)
	}
	k := parent.WithLevel(depth, truncateID(id))
	return r.insert(k, parent, name)
}

// truncateID folds a wide, never-decremented counter into the 16-bit
// Key slot. This is an accepted, documented limitation: once a single
// parent creates more than 65535 children over its lifetime, new
// children can collide in Key-space with surviving earlier siblings.
// The 32-bit counter does not change this: only its low 16 bits reach
// the Key, so slot values repeat every 65536 children. Removing it would
// mean widening Key itself, which would cost every renderer its
// branch-free Key comparisons.
func truncateID(id uint32) uint16 {
	return uint16(id) // #nosec G115 -- intentional truncation, see doc comment
}

func (r *Root) record(k key.Key) *record {
	s := r.shardFor(k)
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.m[k]
}

func (r *Root) insert(k, parent key.Key, name string) *Item {
	s := r.shardFor(k)
	rec := &record{
		value:  Value{Name: name, Phase: Running},
		parent: parent,
	}
	s.mu.Lock()
	s.m[k] = rec
	s.mu.Unlock()
	return &Item{root: r, key: k, rec: rec}
}

// remove deletes k's record unconditionally.
func (r *Root) remove(k key.Key) {
	s := r.shardFor(k)
	s.mu.Lock()
	delete(s.m, k)
	s.mu.Unlock()
}

// closeItem is the explicit stand-in for a destructor: callers call
// Close on an Item instead of relying on scope exit. A task that was
// marked done/failed is retained for FadeOutDuration (pruned lazily on
// the next snapshot); everything else is removed immediately.
func (r *Root) closeItem(k key.Key) {
	rec := r.record(k)
	if rec == nil {
		return
	}
	rec.mu.Lock()
	done := rec.value.IsDone()
	rec.mu.Unlock()
	if !done {
		r.remove(k)
	}
	// Done records are pruned by prune(), called from SortedSnapshot,
	// once FadeOutDuration has elapsed.
}

// prune removes done records whose retention window has elapsed. It is
// called once per snapshot so fade-out needs no dedicated goroutine.
func (r *Root) prune(now time.Time) {
	for _, s := range r.shards {
		s.mu.Lock()
		for k, rec := range s.m {
			rec.mu.Lock()
			expired := rec.value.DoneAt != nil && now.Sub(*rec.value.DoneAt) > r.fadeOut
			rec.mu.Unlock()
			if expired {
				delete(s.m, k)
			}
		}
		s.mu.Unlock()
	}
}

// message appends a message to the ring and mirrors it to the log sink
// if one is configured.
func (r *Root) message(level Level, origin, content string) {
	msg := r.ring.push(level, origin, content, time.Now())
	if r.logger == nil {
		return
	}
	switch level {
	case Failure:
		r.logger.Error(msg.Content, "origin", msg.Origin)
	case Success:
		r.logger.Info(msg.Content, "origin", msg.Origin, "result", "success")
	default:
		r.logger.Info(msg.Content, "origin", msg.Origin)
	}
}

// CopyMessages fills out with every retained message, oldest first.
func (r *Root) CopyMessages(out []Message) []Message {
	return r.ring.copyAll(out)
}

// CopyNewMessages fills out with every message appended after prevSeq,
// in append order, and returns the new high-water sequence number.
func (r *Root) CopyNewMessages(out []Message, prevSeq uint64) ([]Message, uint64) {
	return r.ring.copyNew(out, prevSeq)
}

// MessageBufferUsage reports how full the message ring is.
func (r *Root) MessageBufferUsage() (used, capacity int) {
	return r.ring.usage()
}
