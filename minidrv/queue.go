package minidrv

import (
	"context"
	"sync"
)

// Request is one outstanding read-report request. It moves Received ->
// Queued -> Completed; completion happens at most once and only with
// data. A request the driver never completes stays pending until the
// caller's context is cancelled (the host's cancellation machinery, which
// is outside this component).
type Request struct {
	done chan []byte
	once sync.Once
}

func newRequest() *Request {
	return &Request{done: make(chan []byte, 1)}
}

// Wait blocks until the request is completed with a report or ctx ends.
func (r *Request) Wait(ctx context.Context) ([]byte, error) {
	select {
	case report := <-r.done:
		return report, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (r *Request) complete(report []byte) {
	r.once.Do(func() { r.done <- report })
}

// queue is the manual-dispatch FIFO holding pending read requests.
// Admission order is completion order.
type queue struct {
	mu      sync.Mutex
	pending []*Request
}

func (q *queue) push(r *Request) {
	q.mu.Lock()
	q.pending = append(q.pending, r)
	q.mu.Unlock()
}

// pop removes and returns the head-of-queue request, or nil when empty.
func (q *queue) pop() *Request {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.pending) == 0 {
		return nil
	}
	r := q.pending[0]
	q.pending = q.pending[1:]
	return r
}

func (q *queue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
