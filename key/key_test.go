package key_test

import (
	"testing"

	"github.com/mobanhawi/prodash/key"
)

func TestKeyDepth(t *testing.T) {
	testCases := []struct {
		name string
		k    key.Key
		want int
	}{
		{name: "GivenZeroKey_WhenDepthRead_ThenReturnsZero", k: key.Key{}, want: 0},
		{name: "GivenSingleLevel_WhenDepthRead_ThenReturnsOne", k: key.New(1), want: 1},
		{name: "GivenTwoLevels_WhenDepthRead_ThenReturnsTwo", k: key.New(1, 2), want: 2},
		{name: "GivenAllLevels_WhenDepthRead_ThenReturnsFour", k: key.New(1, 2, 3, 4), want: 4},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.k.Depth(); got != tc.want {
				t.Errorf("Depth() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestKeyParent(t *testing.T) {
	t.Run("GivenNestedKey_WhenParentTaken_ThenLastLevelDropped", func(t *testing.T) {
		k := key.New(1, 2, 3)
		want := key.New(1, 2)
		if got := k.Parent(); got != want {
			t.Errorf("Parent() = %v, want %v", got, want)
		}
	})
	t.Run("GivenRootKey_WhenParentTaken_ThenUnchanged", func(t *testing.T) {
		var k key.Key
		if got := k.Parent(); got != k {
			t.Errorf("Parent() = %v, want root unchanged", got)
		}
	})
}

func TestKeyOrdering(t *testing.T) {
	// Traversal order must match strict lexicographic order of the keys,
	// which also means a parent always sorts before its own children.
	keys := []key.Key{
		key.New(1),       // A
		key.New(1, 1),    // A/B
		key.New(1, 2),    // A/C
		key.New(2),       // D
	}
	for i := 1; i < len(keys); i++ {
		if !keys[i-1].Less(keys[i]) {
			t.Errorf("expected keys[%d] < keys[%d]: %v !< %v", i-1, i, keys[i-1], keys[i])
		}
	}
}

func TestSharesParentWith(t *testing.T) {
	a := key.New(1, 1)
	b := key.New(1, 2)
	if got := a.SharesParentWith(b); got != 1 {
		t.Errorf("SharesParentWith() = %d, want 1", got)
	}
	c := key.New(2)
	if got := a.SharesParentWith(c); got != 0 {
		t.Errorf("SharesParentWith() = %d, want 0", got)
	}
}

// TestAdjacenciesNestedTree reproduces the adjacency scenario from the
// nested-tree scenario: Root->A, A->B, A->C, Root->D, traversed as
// [A, A/B, A/C, D].
func TestAdjacenciesNestedTree(t *testing.T) {
	a := key.New(1)
	ab := key.New(1, 1)
	ac := key.New(1, 2)
	d := key.New(2)

	t.Run("GivenSiblingsABAndAC_WhenAdjacent_ThenLevel2IsAboveAndBelow", func(t *testing.T) {
		got := key.Adjacencies(ab, ac, 2)
		if got[1] != key.AboveAndBelow {
			t.Errorf("level 2 = %v, want AboveAndBelow", got[1])
		}
	})

	t.Run("GivenACFollowedByD_WhenAdjacent_ThenLevel2AboveLevel1NotFound", func(t *testing.T) {
		got := key.Adjacencies(ac, d, 2)
		if got[1] != key.Above {
			t.Errorf("level 2 = %v, want Above", got[1])
		}
		if got[0] != key.NotFound {
			t.Errorf("level 1 = %v, want NotFound", got[0])
		}
	})

	t.Run("GivenRootAFollowedByChildAB_WhenAdjacent_ThenLevel1ContinuesThrough", func(t *testing.T) {
		got := key.Adjacencies(a, ab, 1)
		if got[0] != key.AboveAndBelow {
			t.Errorf("level 1 = %v, want AboveAndBelow", got[0])
		}
	})
}

func TestAdjacenciesEmptySides(t *testing.T) {
	t.Run("GivenNoPreviousRow_WhenAdjacent_ThenBelowOnly", func(t *testing.T) {
		got := key.Adjacencies(key.Key{}, key.New(1), 1)
		if got[0] != key.Below {
			t.Errorf("level 1 = %v, want Below", got[0])
		}
	})
	t.Run("GivenNoRows_WhenAdjacent_ThenEmpty", func(t *testing.T) {
		got := key.Adjacencies(key.Key{}, key.Key{}, 1)
		if got[0] != key.Empty {
			t.Errorf("level 1 = %v, want Empty", got[0])
		}
	})
}
