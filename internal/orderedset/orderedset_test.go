package orderedset

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func intCmp(a, b int) int {
	// ascending: smaller pops first
	return b - a
}

func TestSet_InsertPopMin_AscendingOrder(t *testing.T) {
	// GIVEN a set populated with values inserted out of order
	s := New(intCmp)
	values := []int{5, 1, 9, 3, 7, 2, 8, 0, 6, 4}
	for _, v := range values {
		s.Insert(v)
	}

	// WHEN repeatedly popping the minimum
	var got []int
	for !s.Empty() {
		got = append(got, s.PeekMin())
		s.PopMin()
	}

	// THEN the values come out in ascending order
	want := append([]int(nil), values...)
	sort.Ints(want)
	assert.Equal(t, want, got)
}

func TestSet_Find_ReturnsEquivalentCursor(t *testing.T) {
	// GIVEN a set with an inserted value
	s := New(intCmp)
	s.Insert(42)

	// WHEN finding it
	cur := s.Find(42)

	// THEN the cursor dereferences to an equivalent value and erase shrinks size
	assert.True(t, cur.Valid())
	assert.Equal(t, 42, cur.Value())
	s.Erase(cur)
	assert.Equal(t, 0, s.Size())
}

func TestSet_Find_Missing_ReturnsNil(t *testing.T) {
	// GIVEN an empty set
	s := New(intCmp)

	// WHEN finding a value that isn't present
	cur := s.Find(7)

	// THEN no cursor is returned
	assert.Nil(t, cur)
}

func TestSet_Erase_NilCursor_NoOp(t *testing.T) {
	// GIVEN a set with one element
	s := New(intCmp)
	s.Insert(1)

	// WHEN erasing a nil cursor
	s.Erase(nil)

	// THEN nothing changes
	assert.Equal(t, 1, s.Size())
}

func TestSet_Erase_ArbitraryElement_PreservesRemainingOrder(t *testing.T) {
	// GIVEN a set with several elements and a cursor to a middle one
	s := New(intCmp)
	cursors := map[int]*Cursor[int]{}
	for _, v := range []int{10, 20, 30, 40, 50} {
		cursors[v] = s.Insert(v)
	}

	// WHEN erasing by cursor (not by pop)
	s.Erase(cursors[30])

	// THEN the set yields the remaining elements in order
	var got []int
	for !s.Empty() {
		got = append(got, s.PeekMin())
		s.PopMin()
	}
	assert.Equal(t, []int{10, 20, 40, 50}, got)
}

func TestSet_PeekMin_Empty_Panics(t *testing.T) {
	s := New(intCmp)
	assert.Panics(t, func() { s.PeekMin() })
}

func TestSet_PopMin_Empty_Panics(t *testing.T) {
	s := New(intCmp)
	assert.Panics(t, func() { s.PopMin() })
}

func TestSet_Iterate_MatchesReferenceSort(t *testing.T) {
	// GIVEN 10000 random inserts
	s := New(intCmp)
	rng := rand.New(rand.NewSource(1))
	values := make([]int, 10000)
	for i := range values {
		values[i] = rng.Intn(100000)
		s.Insert(values[i])
	}

	// WHEN iterating
	got := s.Iterate()

	// THEN the order matches an independent sort
	want := append([]int(nil), values...)
	sort.Ints(want)
	assert.Equal(t, want, got)
}

// TestSet_RandomInsertFindErase exercises S6: 10000 interleaved inserts,
// finds, and erases leave the set size equal to (inserts - erases) and
// iteration order matching an independent reference sort of whatever
// remains.
func TestSet_RandomInsertFindErase(t *testing.T) {
	s := New(intCmp)
	rng := rand.New(rand.NewSource(7))

	type entry struct {
		val    int
		cursor *Cursor[int]
	}
	var live []entry
	inserts, erases := 0, 0

	for i := 0; i < 10000; i++ {
		op := rng.Intn(3)
		switch {
		case op == 0 || len(live) == 0:
			v := rng.Intn(1 << 20)
			cur := s.Insert(v)
			live = append(live, entry{val: v, cursor: cur})
			inserts++
		case op == 1:
			idx := rng.Intn(len(live))
			got := s.Find(live[idx].val)
			assert.True(t, got.Valid())
			assert.Equal(t, live[idx].val, got.Value())
		default:
			idx := rng.Intn(len(live))
			s.Erase(live[idx].cursor)
			live = append(live[:idx], live[idx+1:]...)
			erases++
		}
	}

	assert.Equal(t, inserts-erases, s.Size())

	want := make([]int, len(live))
	for i, e := range live {
		want[i] = e.val
	}
	sort.Ints(want)
	assert.Equal(t, want, s.Iterate())
}
