// Package sparse provides a sparse counter for tallying small subsets of a
// large, dense id space.
//
// A sparse counter supports O(1) increment and membership testing while keeping
// a dense list of the ids it has seen. Clearing is O(1), which makes a single
// counter reusable across many rows: the tokenizer keeps one per worker, sized
// to the vocabulary, and clears it between documents.
package sparse

import "slices"

// Counter counts occurrences of uint32 ids drawn from [0, capacity).
// It maintains both a sparse array (for membership testing) and a dense array
// (for iteration). The sparse array maps ids to indices in the dense array.
//
// A Counter is not safe for concurrent use.
type Counter struct {
	sparse []uint32 // Maps id -> index in dense
	dense  []uint32 // Ids in first-seen order
	counts []int64  // counts[i] belongs to dense[i]
	size   uint32   // Current number of distinct ids
}

// NewCounter creates a counter for ids in [0, capacity).
func NewCounter(capacity uint32) *Counter {
	return &Counter{
		sparse: make([]uint32, capacity),
		dense:  make([]uint32, 0, 64),
		counts: make([]int64, 0, 64),
	}
}

// Add increments the count for id and returns the new count.
// Panics if id >= capacity.
func (c *Counter) Add(id uint32) int64 {
	if idx, ok := c.index(id); ok {
		c.counts[idx]++
		return c.counts[idx]
	}

	c.dense = append(c.dense, id)
	c.counts = append(c.counts, 1)
	c.sparse[id] = c.size
	c.size++
	return 1
}

// Count returns the current count for id (zero when absent).
func (c *Counter) Count(id uint32) int64 {
	if idx, ok := c.index(id); ok {
		return c.counts[idx]
	}
	return 0
}

// Contains returns true if id has been added since the last Clear.
func (c *Counter) Contains(id uint32) bool {
	_, ok := c.index(id)
	return ok
}

func (c *Counter) index(id uint32) (uint32, bool) {
	// Check for potential overflow when converting len to uint32
	if len(c.sparse) > 0x7FFFFFFF {
		return 0, false
	}
	//nolint:gosec // G115: len is checked above for safe conversion to uint32
	if id >= uint32(len(c.sparse)) {
		return 0, false
	}
	idx := c.sparse[id]
	return idx, idx < c.size && c.dense[idx] == id
}

// Clear removes all ids in O(1) time.
func (c *Counter) Clear() {
	c.size = 0
	c.dense = c.dense[:0]
	c.counts = c.counts[:0]
}

// Len returns the number of distinct ids.
func (c *Counter) Len() int {
	return int(c.size)
}

// IsEmpty returns true if the counter holds no ids.
func (c *Counter) IsEmpty() bool {
	return c.size == 0
}

// Ids returns the distinct ids in first-seen order.
// The returned slice is valid until the next mutation.
func (c *Counter) Ids() []uint32 {
	return c.dense[:c.size]
}

// AppendSorted appends the (id, count) pairs in ascending id order to ids and
// counts, converting ids with conv. It does not modify the counter.
func (c *Counter) AppendSorted(ids []int32, counts []int64, conv func(uint32) int32) ([]int32, []int64) {
	order := make([]uint32, c.size)
	copy(order, c.dense[:c.size])
	slices.Sort(order)
	for _, id := range order {
		ids = append(ids, conv(id))
		counts = append(counts, c.counts[c.sparse[id]])
	}
	return ids, counts
}
