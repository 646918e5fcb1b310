package sim

import "container/heap"

// timedEntry is one scheduled resumption: process p must be advanced
// once simulation time reaches at. seq breaks ties between entries
// scheduled for the same time, since container/heap is not otherwise
// stable — spec.md §4.3 requires "ties go after: stable append among
// equal times", i.e. FIFO order among events due at the same instant.
type timedEntry struct {
	at  int
	seq int
	p   *Process
}

// timedQueue is a (time, seq) min-heap of pending process resumptions,
// grounded on the teacher's timerHeap in eventloop/loop.go, extended
// with the sequence tiebreak the teacher's single-consumer timer list
// didn't need.
type timedQueue struct {
	items []timedEntry
	seq   int
}

func (q *timedQueue) Len() int { return len(q.items) }

func (q *timedQueue) Less(i, j int) bool {
	if q.items[i].at != q.items[j].at {
		return q.items[i].at < q.items[j].at
	}
	return q.items[i].seq < q.items[j].seq
}

func (q *timedQueue) Swap(i, j int) { q.items[i], q.items[j] = q.items[j], q.items[i] }

func (q *timedQueue) Push(x any) { q.items = append(q.items, x.(timedEntry)) }

func (q *timedQueue) Pop() any {
	old := q.items
	n := len(old)
	item := old[n-1]
	q.items = old[:n-1]
	return item
}

// schedule enqueues p to resume at time at, preserving submission order
// among equal times.
func (q *timedQueue) schedule(at int, p *Process) {
	heap.Push(q, timedEntry{at: at, seq: q.seq, p: p})
	q.seq++
}

// empty reports whether the queue holds no pending entries.
func (q *timedQueue) empty() bool { return len(q.items) == 0 }

// nextTime returns the time of the earliest pending entry. Only valid
// when !empty().
func (q *timedQueue) nextTime() int { return q.items[0].at }

// popDue removes and returns every entry scheduled at exactly `at`, in
// FIFO order, leaving any later entries in the heap.
func (q *timedQueue) popDue(at int) []*Process {
	var due []*Process
	for !q.empty() && q.nextTime() == at {
		e := heap.Pop(q).(timedEntry)
		due = append(due, e.p)
	}
	return due
}
