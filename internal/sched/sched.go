// Package sched is a logical-time queue of timed commands.
//
// Entries are ordered by due time, then by insertion order. Nothing in this
// package reads the wall clock: time only moves when Advance is called, which
// lets callers drive it from a real ticker or step it in tests.
package sched

import (
	"cmp"
	"container/heap"
	"slices"
	"time"
)

// Token identifies a scheduled entry so it can be cancelled.
type Token uint64

type entry struct {
	due   time.Duration
	seq   uint64
	token Token
	name  string
	fn    func()
	index int
}

type entryHeap []*entry

func (h entryHeap) Len() int { return len(h) }

func (h entryHeap) Less(i, j int) bool {
	if h[i].due != h[j].due {
		return h[i].due < h[j].due
	}
	return h[i].seq < h[j].seq
}

func (h entryHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *entryHeap) Push(x any) {
	e := x.(*entry)
	e.index = len(*h)
	*h = append(*h, e)
}

func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*h = old[:n-1]
	return e
}

// Queue holds pending entries and the current logical time.
// It is not safe for concurrent use.
type Queue struct {
	now   time.Duration
	seq   uint64
	heap  entryHeap
	byTok map[Token]*entry
}

// New returns an empty Queue at logical time zero.
func New() *Queue {
	return &Queue{byTok: make(map[Token]*entry)}
}

// Now reports the current logical time.
func (q *Queue) Now() time.Duration { return q.now }

// Len reports the number of pending entries.
func (q *Queue) Len() int { return q.heap.Len() }

// After schedules fn to run once logical time reaches Now()+d.
// The name is informational and shows up in Pending.
func (q *Queue) After(d time.Duration, name string, fn func()) Token {
	if d < 0 {
		d = 0
	}
	q.seq++
	e := &entry{
		due:   q.now + d,
		seq:   q.seq,
		token: Token(q.seq),
		name:  name,
		fn:    fn,
	}
	heap.Push(&q.heap, e)
	q.byTok[e.token] = e
	return e.token
}

// Cancel removes a pending entry. It reports whether the entry was pending.
func (q *Queue) Cancel(tok Token) bool {
	e, ok := q.byTok[tok]
	if !ok {
		return false
	}
	heap.Remove(&q.heap, e.index)
	delete(q.byTok, tok)
	return true
}

// CancelAll drops every pending entry. Logical time is kept.
func (q *Queue) CancelAll() {
	q.heap = q.heap[:0]
	clear(q.byTok)
}

// Advance moves logical time forward by d, running every entry that falls
// due on the way in order. While an entry runs, Now reports its due time, so
// entries scheduled from inside a callback are placed relative to it and run
// in the same call if they also fall within the window.
// It returns the number of entries that ran.
func (q *Queue) Advance(d time.Duration) int {
	if d < 0 {
		d = 0
	}
	target := q.now + d
	ran := 0
	for q.heap.Len() > 0 && q.heap[0].due <= target {
		e := heap.Pop(&q.heap).(*entry)
		delete(q.byTok, e.token)
		q.now = e.due
		e.fn()
		ran++
	}
	q.now = target
	return ran
}

// Pending lists the names of pending entries in due order.
func (q *Queue) Pending() []string {
	cp := slices.Clone(q.heap)
	slices.SortFunc(cp, func(a, b *entry) int {
		if a.due != b.due {
			return cmp.Compare(a.due, b.due)
		}
		return cmp.Compare(a.seq, b.seq)
	})
	out := make([]string, len(cp))
	for i, e := range cp {
		out[i] = e.name
	}
	return out
}
