package scheduler

import "container/heap"

// elapseHeap implements container/heap.Interface for ElapseEvent,
// sorted by TriggerAt (earliest first, min-heap).
type elapseHeap []ElapseEvent

func (h elapseHeap) Len() int           { return len(h) }
func (h elapseHeap) Less(i, j int) bool { return h[i].TriggerAt.Before(h[j].TriggerAt) }
func (h elapseHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *elapseHeap) Push(x any) {
	*h = append(*h, x.(ElapseEvent))
}

func (h *elapseHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// heapPush adds an ElapseEvent to the heap, maintaining the heap invariant.
func heapPush(h *elapseHeap, e ElapseEvent) {
	heap.Push(h, e)
}

// heapPop removes and returns the ElapseEvent with the earliest TriggerAt.
// Panics if the heap is empty.
func heapPop(h *elapseHeap) ElapseEvent {
	return heap.Pop(h).(ElapseEvent)
}

// heapRemoveByHash removes the first ElapseEvent with the given hash.
// Returns true if the event was found and removed, false otherwise.
func heapRemoveByHash(h *elapseHeap, hash string) bool {
	for i, e := range *h {
		if e.Hash == hash {
			heap.Remove(h, i)
			return true
		}
	}
	return false
}
