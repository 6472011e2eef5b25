package sim

import "container/heap"

// An EventQueue is a queue of events ordered by event time.
type EventQueue interface {
	Push(evt Event)
	Pop() Event
	Peek() Event
	Len() int
}

// NewEventQueue creates a heap-based event queue. Events that share the same
// time are popped in the order they were pushed.
func NewEventQueue() EventQueue {
	q := &eventQueue{}
	heap.Init(&q.events)
	return q
}

type eventQueue struct {
	events  eventHeap
	nextSeq uint64
}

func (q *eventQueue) Push(evt Event) {
	q.nextSeq++
	heap.Push(&q.events, queuedEvent{evt, q.nextSeq})
}

func (q *eventQueue) Pop() Event {
	return heap.Pop(&q.events).(queuedEvent).evt
}

func (q *eventQueue) Peek() Event {
	return q.events[0].evt
}

func (q *eventQueue) Len() int {
	return q.events.Len()
}

type queuedEvent struct {
	evt Event
	seq uint64
}

type eventHeap []queuedEvent

func (h eventHeap) Len() int {
	return len(h)
}

func (h eventHeap) Less(i, j int) bool {
	if h[i].evt.Time() != h[j].evt.Time() {
		return h[i].evt.Time() < h[j].evt.Time()
	}
	return h[i].seq < h[j].seq
}

func (h eventHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
}

func (h *eventHeap) Push(x interface{}) {
	*h = append(*h, x.(queuedEvent))
}

func (h *eventHeap) Pop() interface{} {
	old := *h
	n := len(old)
	evt := old[n-1]
	*h = old[:n-1]
	return evt
}
