package tcp

import (
	"container/list"
	"sync"
)

// requestQueue carries duration requests, in milliseconds, from a
// connection's reader to its sender. It is unbounded so push never waits on
// the sender; pop hands requests out strictly in push order.
type requestQueue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	items  *list.List
	closed bool
}

func newRequestQueue() *requestQueue {
	q := &requestQueue{items: list.New()}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// push reports false once the queue is closed.
func (q *requestQueue) push(ms uint64) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return false
	}
	q.items.PushBack(ms)
	q.cond.Signal()
	return true
}

// pop blocks for the next request. ok is false once the queue is closed;
// requests still pending at that point are dropped.
func (q *requestQueue) pop() (ms uint64, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for q.items.Len() == 0 && !q.closed {
		q.cond.Wait()
	}
	if q.closed {
		return 0, false
	}
	return q.items.Remove(q.items.Front()).(uint64), true
}

func (q *requestQueue) close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.items.Init()
	q.cond.Broadcast()
}

func (q *requestQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.items.Len()
}
