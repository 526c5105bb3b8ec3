package progress_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mobanhawi/prodash/progress"
)

// TestDiscardIsStructurallyEquivalentToItem reproduces property 5: the
// Discard implementation satisfies the same Progress contract as a real
// Item — every operation succeeds and is a true no-op.
func TestDiscardIsStructurallyEquivalentToItem(t *testing.T) {
	var p progress.Progress = progress.Discard{}

	require.NotPanics(t, func() {
		max := uint64(10)
		p.Init(&max, nil)
		p.Set(5)
		p.Inc()
		p.IncBy(3)
		p.SetName("x")
		_ = p.Name()
		p.Message(progress.Info, "hello")
		p.Blocked("waiting", nil)
		p.Halted("paused", nil)
		p.Done("ok")
		p.Fail("nope")
		child := p.AddChild("child")
		require.IsType(t, progress.Discard{}, child)
	})

	require.Equal(t, "", p.Name())
}

func TestDoOrDiscardDelegatesWhenPresent(t *testing.T) {
	root := progress.New(progress.Options{})
	item := root.AddChild("real")
	wrapped := progress.Some(item)

	wrapped.SetName("renamed")
	require.Equal(t, "renamed", item.Name())
}

func TestDoOrDiscardNoOpsWhenAbsent(t *testing.T) {
	var wrapped *progress.DoOrDiscard
	require.NotPanics(t, func() {
		wrapped.Inc()
		wrapped.SetName("irrelevant")
		_ = wrapped.Name()
		wrapped.Blocked("r", nil)
	})

	wrapped = progress.Some(nil)
	require.NotPanics(t, func() {
		wrapped.Done("done")
	})
}

func TestDoOrDiscardBlockedEtaPassthrough(t *testing.T) {
	root := progress.New(progress.Options{})
	item := root.AddChild("x")
	wrapped := progress.Some(item)

	eta := time.Now().Add(time.Minute)
	wrapped.Blocked("slow disk", &eta)

	snap := root.SortedSnapshot(nil)
	require.Equal(t, progress.Blocked, snap[0].Value.Phase)
	require.Equal(t, "slow disk", snap[0].Value.Reason)
	require.NotNil(t, snap[0].Value.ETA)
}
