// Implements the AvailableQueue, which holds applicants waiting for their next proposal.
// Every applicant is enqueued at load order; rejected and evicted applicants
// rejoin at the back.

package match

import (
	"strings"
)

// AvailableQueue represents a FIFO queue of applicants that may still propose.
type AvailableQueue struct {
	queue []*Applicant
}

// NewAvailableQueue returns a queue holding applicants in the given order.
func NewAvailableQueue(applicants []*Applicant) *AvailableQueue {
	q := &AvailableQueue{queue: make([]*Applicant, 0, len(applicants))}
	q.queue = append(q.queue, applicants...)
	return q
}

// Enqueue adds an applicant to the back of the queue.
func (q *AvailableQueue) Enqueue(a *Applicant) {
	if a == nil {
		panic("Enqueue: applicant must not be nil")
	}
	q.queue = append(q.queue, a)
}

// Dequeue removes and returns the applicant at the front of the queue.
// Returns nil if the queue is empty.
func (q *AvailableQueue) Dequeue() *Applicant {
	if len(q.queue) == 0 {
		return nil
	}
	a := q.queue[0]
	q.queue[0] = nil
	q.queue = q.queue[1:]
	return a
}

// Len returns the number of applicants in the queue.
func (q *AvailableQueue) Len() int {
	return len(q.queue)
}

// Stalled reports whether no queued applicant can make further progress,
// i.e. every one has proposed to its full preference list. An empty queue is
// not stalled; callers check emptiness separately.
func (q *AvailableQueue) Stalled() bool {
	if len(q.queue) == 0 {
		return false
	}
	for _, a := range q.queue {
		if a.CanPropose() {
			return false
		}
	}
	return true
}

// IDs returns the queued applicant identifiers, front first.
func (q *AvailableQueue) IDs() []string {
	ids := make([]string, len(q.queue))
	for i, a := range q.queue {
		ids[i] = a.ID
	}
	return ids
}

// String renders the queued identifiers front first, e.g. "[A2 A7]".
func (q *AvailableQueue) String() string {
	return "[" + strings.Join(q.IDs(), " ") + "]"
}
