// Package scheduler holds actions whose execution is deliberately delayed,
// such as chat replies waiting out a typing delay or reciprocal buffs.
package scheduler

import (
	"container/heap"
	"sync"
	"time"

	"github.com/openrune/botcore/internal/entities"
	"github.com/openrune/botcore/internal/pkg/clock"
)

type entry struct {
	due    time.Time
	seq    int
	action entities.Action
}

type entryQueue []*entry

func (q entryQueue) Len() int { return len(q) }

func (q entryQueue) Less(i, j int) bool {
	if !q[i].due.Equal(q[j].due) {
		return q[i].due.Before(q[j].due)
	}
	return q[i].seq < q[j].seq
}

func (q entryQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *entryQueue) Push(x any) { *q = append(*q, x.(*entry)) }

func (q *entryQueue) Pop() any {
	old := *q
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return e
}

// Scheduler is a time-ordered queue of deferred actions. Safe for
// concurrent use.
type Scheduler struct {
	mu    sync.Mutex
	clock clock.Clock
	queue entryQueue
	seq   int
}

// New creates a scheduler using the given clock
func New(clk clock.Clock) *Scheduler {
	if clk == nil {
		clk = clock.New()
	}
	return &Scheduler{clock: clk}
}

// ScheduleAfter queues the action to become due after the delay
func (s *Scheduler) ScheduleAfter(delay time.Duration, action entities.Action) {
	s.ScheduleAt(s.clock.Now().Add(delay), action)
}

// ScheduleAt queues the action to become due at the given time
func (s *Scheduler) ScheduleAt(due time.Time, action entities.Action) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	heap.Push(&s.queue, &entry{due: due, seq: s.seq, action: action})
}

// Due removes and returns every action whose deadline has passed, in due
// order. Actions scheduled for the same instant come out in the order
// they were queued.
func (s *Scheduler) Due() []entities.Action {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	var ready []entities.Action
	for len(s.queue) > 0 && !s.queue[0].due.After(now) {
		e := heap.Pop(&s.queue).(*entry)
		ready = append(ready, e.action)
	}
	return ready
}

// Len reports how many actions are still queued
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}
