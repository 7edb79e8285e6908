package net

// queue is a FIFO of units waiting to fire. A unit already pending is not
// enqueued a second time and NoUnit is dropped.
type queue struct {
	items   []UnitID
	head    int
	pending map[UnitID]struct{}
}

func newQueue() *queue {
	return &queue{pending: make(map[UnitID]struct{})}
}

func (q *queue) push(id UnitID) {
	if id == NoUnit {
		return
	}
	if _, ok := q.pending[id]; ok {
		return
	}
	q.pending[id] = struct{}{}
	q.items = append(q.items, id)
}

func (q *queue) pop() (UnitID, bool) {
	if q.head == len(q.items) {
		return NoUnit, false
	}
	id := q.items[q.head]
	q.head++
	if q.head == len(q.items) {
		q.items = q.items[:0]
		q.head = 0
	}
	delete(q.pending, id)
	return id, true
}

func (q *queue) len() int {
	return len(q.items) - q.head
}
