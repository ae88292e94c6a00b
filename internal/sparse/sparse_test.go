package sparse

import (
	"testing"
)

func identity32(id uint32) int32 {
	return int32(id) //nolint:gosec // test ids are small
}

func TestCounter_Basic(t *testing.T) {
	c := NewCounter(100)

	// Empty counter
	if !c.IsEmpty() {
		t.Error("new counter should be empty")
	}
	if c.Contains(0) {
		t.Error("empty counter should not contain 0")
	}

	if got := c.Add(5); got != 1 {
		t.Errorf("first add should return 1, got %d", got)
	}
	if !c.Contains(5) {
		t.Error("counter should contain 5 after add")
	}
	if got := c.Add(5); got != 2 {
		t.Errorf("second add should return 2, got %d", got)
	}
	if c.Len() != 1 {
		t.Errorf("len should be 1, got %d", c.Len())
	}

	c.Add(10)
	c.Add(3)
	c.Add(7)
	if c.Len() != 4 {
		t.Errorf("len should be 4, got %d", c.Len())
	}

	c.Clear()
	if !c.IsEmpty() {
		t.Error("counter should be empty after clear")
	}
	if c.Contains(5) {
		t.Error("cleared counter should not contain 5")
	}
	if c.Count(5) != 0 {
		t.Errorf("cleared count should be 0, got %d", c.Count(5))
	}
}

func TestCounter_InsertionOrder(t *testing.T) {
	c := NewCounter(100)
	for _, id := range []uint32{5, 2, 8, 2, 1, 5, 5} {
		c.Add(id)
	}

	expected := []uint32{5, 2, 8, 1}
	ids := c.Ids()
	if len(ids) != len(expected) {
		t.Fatalf("expected %d ids, got %d", len(expected), len(ids))
	}
	for i, id := range expected {
		if ids[i] != id {
			t.Errorf("ids[%d] = %d, want %d", i, ids[i], id)
		}
	}
}

func TestCounter_AppendSorted(t *testing.T) {
	c := NewCounter(16)
	for _, id := range []uint32{9, 3, 9, 0, 3, 9} {
		c.Add(id)
	}

	ids, counts := c.AppendSorted([]int32{42}, []int64{7}, identity32)

	wantIDs := []int32{42, 0, 3, 9}
	wantCounts := []int64{7, 1, 2, 3}
	if len(ids) != len(wantIDs) || len(counts) != len(wantCounts) {
		t.Fatalf("AppendSorted = %v %v, want %v %v", ids, counts, wantIDs, wantCounts)
	}
	for i := range wantIDs {
		if ids[i] != wantIDs[i] || counts[i] != wantCounts[i] {
			t.Errorf("pair %d = (%d,%d), want (%d,%d)", i, ids[i], counts[i], wantIDs[i], wantCounts[i])
		}
	}

	// Counter is untouched
	if c.Len() != 3 || c.Count(9) != 3 {
		t.Errorf("counter modified by AppendSorted: len=%d count(9)=%d", c.Len(), c.Count(9))
	}
}

func TestCounter_ReuseAfterClear(t *testing.T) {
	c := NewCounter(8)
	c.Add(1)
	c.Add(2)
	c.Clear()

	// Stale sparse entries must not resurrect cleared ids
	c.Add(2)
	if c.Contains(1) {
		t.Error("id 1 should be absent after clear")
	}
	if c.Count(2) != 1 {
		t.Errorf("count(2) = %d, want 1", c.Count(2))
	}
}

func TestCounter_OutOfRangeContains(t *testing.T) {
	c := NewCounter(4)
	if c.Contains(100) {
		t.Error("out-of-range id reported as present")
	}
}
