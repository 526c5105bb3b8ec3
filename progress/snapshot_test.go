package progress_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mobanhawi/prodash/progress"
)

func TestChildrenFiltersDirectDescendantsOnly(t *testing.T) {
	root := progress.New(progress.Options{})
	a := root.AddChild("A")
	b := a.AddChild("B").(*progress.Item)
	_ = b.AddChild("grandchild")
	_ = a.AddChild("C")
	_ = root.AddChild("D")

	snap := root.SortedSnapshot(nil)
	children := progress.Children(snap, a.Key())

	names := make([]string, len(children))
	for i, c := range children {
		names[i] = c.Value.Name
	}
	require.ElementsMatch(t, []string{"B", "C"}, names)
}

func TestSortedSnapshotReusesBackingArray(t *testing.T) {
	root := progress.New(progress.Options{})
	_ = root.AddChild("A")
	_ = root.AddChild("B")

	buf := make([]progress.Entry, 0, 16)
	buf = root.SortedSnapshot(buf)
	require.Len(t, buf, 2)

	if cap(buf) < 16 {
		t.Fatalf("expected SortedSnapshot to reuse caller capacity, got cap=%d", cap(buf))
	}
}
