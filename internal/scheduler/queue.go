package scheduler

import (
	"container/heap"
	"time"
)

// entry is one eligible task, keyed by (due, hours, seq).
type entry struct {
	index int // position in the input slice
	due   time.Time
	hours float64
	seq   int // order of arrival into the eligible set
}

// eligibleSet is a min-heap of entries. seq makes the ordering total, which
// yields the same sequence as stably re-sorting a list after every insertion.
type eligibleSet struct {
	entries []entry
	next    int
}

func newEligibleSet(capacity int) *eligibleSet {
	return &eligibleSet{entries: make([]entry, 0, capacity)}
}

func (s *eligibleSet) Len() int { return len(s.entries) }

func (s *eligibleSet) Less(i, j int) bool {
	a, b := s.entries[i], s.entries[j]
	if !a.due.Equal(b.due) {
		return a.due.Before(b.due)
	}
	if a.hours != b.hours {
		return a.hours < b.hours
	}
	return a.seq < b.seq
}

func (s *eligibleSet) Swap(i, j int) { s.entries[i], s.entries[j] = s.entries[j], s.entries[i] }

func (s *eligibleSet) Push(x any) { s.entries = append(s.entries, x.(entry)) }

func (s *eligibleSet) Pop() any {
	last := len(s.entries) - 1
	e := s.entries[last]
	s.entries = s.entries[:last]
	return e
}

// add inserts the task at input position index.
func (s *eligibleSet) add(index int, due time.Time, hours float64) {
	heap.Push(s, entry{index: index, due: due, hours: hours, seq: s.next})
	s.next++
}

// take removes and returns the input position of the smallest entry.
func (s *eligibleSet) take() int {
	return heap.Pop(s).(entry).index
}
