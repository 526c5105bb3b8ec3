package progress_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mobanhawi/prodash/progress"
)

// TestMessageRingOverflow asserts a ring of capacity 4 fed six
// messages keeps only the last four, and that a consumer seeded with
// an earlier sequence number only sees the messages it hasn't yet
// copied.
func TestMessageRingOverflow(t *testing.T) {
	root := progress.New(progress.Options{MessageCapacity: 4})
	item := root.AddChild("source")

	for i := 1; i <= 6; i++ {
		item.Message(progress.Info, "m"+string(rune('0'+i)))
	}

	all := root.CopyMessages(nil)
	require.Len(t, all, 4)
	want := []string{"m3", "m4", "m5", "m6"}
	for i, m := range all {
		require.Equal(t, want[i], m.Content)
	}

	seqOfM4 := all[1].Seq
	newer, newest := root.CopyNewMessages(nil, seqOfM4)
	require.Len(t, newer, 2)
	require.Equal(t, "m5", newer[0].Content)
	require.Equal(t, "m6", newer[1].Content)
	require.Equal(t, all[3].Seq, newest)
}

func TestCopyNewMessagesFirstCallReturnsEverything(t *testing.T) {
	root := progress.New(progress.Options{MessageCapacity: 10})
	item := root.AddChild("source")
	item.Message(progress.Info, "a")
	item.Message(progress.Info, "b")

	got, _ := root.CopyNewMessages(nil, 0)
	require.Len(t, got, 2)
}

func TestCopyNewMessagesNoDuplicatesNoGaps(t *testing.T) {
	root := progress.New(progress.Options{MessageCapacity: 100})
	item := root.AddChild("source")
	for i := 0; i < 20; i++ {
		item.Message(progress.Info, "x")
	}

	first, seq1 := root.CopyNewMessages(nil, 0)
	require.Len(t, first, 20)

	item.Message(progress.Info, "y")
	second, seq2 := root.CopyNewMessages(nil, seq1)
	require.Len(t, second, 1)
	require.Equal(t, "y", second[0].Content)
	require.Greater(t, seq2, seq1)
}

func TestMessageBufferUsage(t *testing.T) {
	root := progress.New(progress.Options{MessageCapacity: 5})
	item := root.AddChild("source")
	item.Message(progress.Info, "a")
	item.Message(progress.Info, "b")

	used, capacity := root.MessageBufferUsage()
	require.Equal(t, 2, used)
	require.Equal(t, 5, capacity)
}
