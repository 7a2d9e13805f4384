// Package heap provides a bounded max-heap for k-nearest tracking.
package heap

import "math"

// MaxHeap keeps the K smallest (distance, index) pairs pushed into it.
// The largest retained pair is always at the root (index 0). Pairs are
// ordered by distance, then by index, so selection is deterministic.
type MaxHeap struct {
	Indices   []int
	Distances []float64
	Size      int
	K         int
}

// New creates a new max-heap with capacity k.
func New(k int) *MaxHeap {
	h := &MaxHeap{
		Indices:   make([]int, k),
		Distances: make([]float64, k),
		K:         k,
	}
	h.Reset()
	return h
}

// MaxDist returns the largest retained distance, or +Inf while the heap is
// not full.
func (h *MaxHeap) MaxDist() float64 {
	if h.K == 0 {
		return math.Inf(-1)
	}
	return h.Distances[0]
}

// Push attempts to add a neighbor. It returns true if the neighbor was kept.
func (h *MaxHeap) Push(idx int, dist float64) bool {
	if h.K == 0 || !h.less(dist, idx, 0) {
		return false
	}

	h.Distances[0] = dist
	h.Indices[0] = idx
	h.siftDown(0, h.K)

	if h.Size < h.K {
		h.Size++
	}
	return true
}

// less reports whether (dist, idx) orders before the pair at slot i.
func (h *MaxHeap) less(dist float64, idx, i int) bool {
	if dist != h.Distances[i] {
		return dist < h.Distances[i]
	}
	return h.Indices[i] < 0 || idx < h.Indices[i]
}

// greater reports whether slot a orders after slot b.
func (h *MaxHeap) greater(a, b int) bool {
	if h.Distances[a] != h.Distances[b] {
		return h.Distances[a] > h.Distances[b]
	}
	return h.Indices[a] > h.Indices[b]
}

// siftDown restores the heap property below i within the first n slots.
func (h *MaxHeap) siftDown(i, n int) {
	for {
		left := 2*i + 1
		right := 2*i + 2

		if left >= n {
			break
		}

		swap := i
		if h.greater(left, swap) {
			swap = left
		}
		if right < n && h.greater(right, swap) {
			swap = right
		}

		if swap == i {
			break
		}

		h.Distances[i], h.Distances[swap] = h.Distances[swap], h.Distances[i]
		h.Indices[i], h.Indices[swap] = h.Indices[swap], h.Indices[i]
		i = swap
	}
}

// Sort converts the heap to ascending order and trims the unused sentinel
// slots. After sorting, the heap property is no longer maintained.
func (h *MaxHeap) Sort() {
	for i := h.K - 1; i > 0; i-- {
		h.Distances[0], h.Distances[i] = h.Distances[i], h.Distances[0]
		h.Indices[0], h.Indices[i] = h.Indices[i], h.Indices[0]
		h.siftDown(0, i)
	}
	// Sentinels sort last; drop them.
	h.Indices = h.Indices[:h.Size]
	h.Distances = h.Distances[:h.Size]
	h.K = h.Size
}

// Reset clears the heap.
func (h *MaxHeap) Reset() {
	for i := range h.K {
		h.Indices[i] = -1
		h.Distances[i] = math.Inf(1)
	}
	h.Size = 0
}
