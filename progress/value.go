// Package progress implements the shared concurrent progress tree: the
// sharded map from key.Key to task state, the bounded message ring, the
// snapshot/traversal protocol renderers use, and the generic Progress
// façade that lets library code take progress optionally.
package progress

import (
	"time"

	"github.com/mobanhawi/prodash/unit"
)

// Phase is the human-readable running state of a task.
type Phase int

const (
	// Running is the default phase for any task that hasn't reported
	// otherwise.
	Running Phase = iota
	// Blocked means the task is waiting on an external resource.
	Blocked
	// Halted means the task paused itself (e.g. backoff, rate limit).
	Halted
)

// String renders the phase the way both renderers label it.
func (p Phase) String() string {
	switch p {
	case Blocked:
		return "blocked"
	case Halted:
		return "halted"
	default:
		return "running"
	}
}

// Value is the per-task state a renderer reads out of the tree. It is
// always handled by value — renderers never hold a reference into
// tree-owned memory (see Root.SortedSnapshot).
type Value struct {
	Name string
	Step uint64
	Max  *uint64
	Unit unit.Unit

	Phase  Phase
	Reason string
	ETA    *time.Time

	// Failed and FailMessage record a terminal error state, distinct
	// from Phase (a failed task is not "running", "blocked" or
	// "halted" — it's done, unsuccessfully).
	Failed      bool
	FailMessage string

	// DoneAt is set when Done or Fail was last called, and is used by
	// the tree to retain the record briefly for fade-out instead of
	// deleting it the instant the owning Item is closed.
	DoneAt *time.Time
}

// IsDone reports whether Done or Fail has been called on this value.
func (v Value) IsDone() bool { return v.DoneAt != nil }

// Percentage returns the value's completion percentage and whether Max
// is known (percentages are only meaningful with a known Max).
func (v Value) Percentage() (pct float64, ok bool) {
	if v.Max == nil {
		return 0, false
	}
	return unit.Percentage(v.Step, *v.Max), true
}
