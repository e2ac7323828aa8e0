package queryengine

import "github.com/ivfflat/ivfflat/internal/queue"

// item is a (id, distance) pair kept in a boundedMaxHeap.
type item struct {
	id   int32
	dist float32
}

// boundedMaxHeap keeps the `capacity` smallest-distance items seen via
// tryInsert, evicting the current worst (largest-distance) item only on
// strict improvement. Ties never displace an existing resident, so arrival
// order - not id - decides which of several equidistant candidates is kept.
//
// It is built on queue.PriorityQueue's max-heap mode rather than
// reimplementing sift-up/down: tryInsert adds the capacity-bound eviction
// rule the plain queue doesn't have.
type boundedMaxHeap struct {
	capacity int
	pq       *queue.PriorityQueue
}

func newBoundedMaxHeap(capacity int) *boundedMaxHeap {
	return &boundedMaxHeap{capacity: capacity, pq: queue.NewMax(capacity)}
}

func (h *boundedMaxHeap) len() int { return h.pq.Len() }

// probed returns the items currently held, in heap order.
func (h *boundedMaxHeap) probed() []queue.PriorityQueueItem {
	return h.pq.Items()
}

// tryInsert pushes it if the heap has room, else replaces the current
// maximum only if it.dist is strictly smaller - the spec's "strict
// improvement only" rule.
func (h *boundedMaxHeap) tryInsert(it item) {
	qi := queue.PriorityQueueItem{Node: uint32(it.id), Distance: it.dist}
	if h.pq.Len() < h.capacity {
		h.pq.PushItem(qi)
		return
	}
	if h.capacity == 0 {
		return
	}
	top, _ := h.pq.TopItem()
	if it.dist < top.Distance {
		h.pq.PopItem()
		h.pq.PushItem(qi)
	}
}

// drainAscending pops every item from largest to smallest distance,
// writing into a result slice back-to-front so the final array is sorted
// by ascending distance. The heap is empty after this call.
func (h *boundedMaxHeap) drainAscending() []item {
	n := h.pq.Len()
	out := make([]item, n)
	for i := n - 1; i >= 0; i-- {
		top, _ := h.pq.PopItem()
		out[i] = item{id: int32(top.Node), dist: top.Distance}
	}
	return out
}
