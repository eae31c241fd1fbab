// Package queue provides the bounded top-k candidate heap used by query.
package queue

import "container/heap"

// Compile time check to ensure TopK satisfies the heap interface.
var _ heap.Interface = (*TopK)(nil)

// Item is a ranked candidate: a collection position and its similarity.
type Item struct {
	Position   int     // Position of the record in the collection.
	Similarity float32 // Similarity is the priority of the item.
}

// TopK is a bounded min-heap holding the k best candidates seen so far.
// The root is always the current worst candidate: lowest similarity, with
// the higher position losing on ties. Keeping the worst at the root makes
// replacement O(log k) while scanning.
type TopK struct {
	k     int
	items []Item
}

// NewTopK creates a heap that retains at most k candidates.
func NewTopK(k int) *TopK {
	return &TopK{
		k:     k,
		items: make([]Item, 0, k),
	}
}

// Len returns the number of retained candidates.
func (q *TopK) Len() int { return len(q.items) }

// Less reports whether the element with index i should sort before the element with index j.
func (q *TopK) Less(i, j int) bool {
	a, b := q.items[i], q.items[j]
	if a.Similarity != b.Similarity {
		return a.Similarity < b.Similarity
	}
	return a.Position > b.Position
}

// Swap swaps the elements with indexes i and j.
func (q *TopK) Swap(i, j int) {
	q.items[i], q.items[j] = q.items[j], q.items[i]
}

// Push adds x to the heap. Use Offer instead; Push is part of heap.Interface.
func (q *TopK) Push(x any) {
	item, _ := x.(Item)
	q.items = append(q.items, item)
}

// Pop removes and returns the worst retained candidate.
func (q *TopK) Pop() any {
	old := q.items
	n := len(old)
	item := old[n-1]
	q.items = old[:n-1]
	return item
}

// Offer considers a candidate for the top k. Candidates beyond capacity
// replace the current worst only if they rank strictly better.
func (q *TopK) Offer(it Item) {
	if q.k <= 0 {
		return
	}
	if len(q.items) < q.k {
		heap.Push(q, it)
		return
	}

	worst := q.items[0]
	if it.Similarity > worst.Similarity ||
		(it.Similarity == worst.Similarity && it.Position < worst.Position) {
		heap.Pop(q)
		heap.Push(q, it)
	}
}

// Results drains the heap and returns the retained candidates ranked best
// first: descending similarity, ties by ascending position.
func (q *TopK) Results() []Item {
	out := make([]Item, len(q.items))
	for i := len(q.items) - 1; i >= 0; i-- {
		out[i], _ = heap.Pop(q).(Item)
	}
	return out
}
