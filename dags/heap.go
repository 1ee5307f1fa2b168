// Package dags implements the System-Level Scheduler (§4.3): a
// priority-queue-driven placement of operators onto hardware units that
// respects dependency and per-unit exclusivity constraints while greedily
// minimizing makespan under a two-term heuristic (Dependency-Aware Greedy
// Scheduling).
package dags

import "container/heap"

// readyItem is one entry in the ready priority queue: a node id, its
// precomputed score, and the tie-break inputs (§4.3 step 1).
type readyItem struct {
	id             string
	score          float64
	hwAvailableAt  int64
	index          int
}

// readyQueue is a container/heap.Interface max-heap ordered by score, with
// deterministic tie-breaking: lower hw_available_at first, then smaller
// node id lexicographically. This mirrors the teacher's event-heap pattern
// (an ordered priority queue keyed on a composite Less) applied to DAGS's
// own scoring rule instead of event timestamps.
type readyQueue []*readyItem

func (q readyQueue) Len() int { return len(q) }

func (q readyQueue) Less(i, j int) bool {
	if q[i].score != q[j].score {
		return q[i].score > q[j].score // max-heap: higher score first
	}
	if q[i].hwAvailableAt != q[j].hwAvailableAt {
		return q[i].hwAvailableAt < q[j].hwAvailableAt
	}
	return q[i].id < q[j].id
}

func (q readyQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *readyQueue) Push(x any) {
	item := x.(*readyItem)
	item.index = len(*q)
	*q = append(*q, item)
}

func (q *readyQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*q = old[:n-1]
	return item
}

var _ heap.Interface = (*readyQueue)(nil)
