package progress

import (
	"slices"
	"time"

	"github.com/mobanhawi/prodash/key"
)

// Entry is one row of a sorted snapshot: a task's Key and a copy of its
// Value at the moment the snapshot was taken.
type Entry struct {
	Key   key.Key
	Value Value
}

// SortedSnapshot fills out (reusing its backing array across calls, so
// steady-state rendering is allocation-free once it has grown to the
// tree's high-water size) with every live task, ordered by Key. It also
// prunes any done records whose fade-out window has elapsed, so callers
// should treat this as the renderer's once-per-frame tick rather than
// calling it ad hoc from multiple places.
func (r *Root) SortedSnapshot(out []Entry) []Entry {
	r.prune(time.Now())

	out = out[:0]
	for _, s := range r.shards {
		// Each shard's entries are appended to out and sorted in place.
		start := len(out)
		s.mu.RLock()
		for k, rec := range s.m {
			rec.mu.Lock()
			v := rec.value
			rec.mu.Unlock()
			out = append(out, Entry{Key: k, Value: v})
		}
		s.mu.RUnlock()

		slices.SortFunc(out[start:], func(a, b Entry) int {
			return key.Compare(a.Key, b.Key)
		})
	}
	return out
}

// Children returns the direct children of parent within a snapshot
// previously produced by SortedSnapshot, preserving snapshot order.
// Renderers use this to lay out a subtree without re-walking the whole
// tree structure.
func Children(snapshot []Entry, parent key.Key) []Entry {
	var out []Entry
	wantDepth := parent.Depth() + 1
	for _, e := range snapshot {
		if e.Key.Depth() != wantDepth {
			continue
		}
		if e.Key.Parent() == parent {
			out = append(out, e)
		}
	}
	return out
}
