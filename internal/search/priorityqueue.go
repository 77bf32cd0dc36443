package search

import "github.com/routee-compass/compass-core/internal/label"

// queueItem is one open-set entry. Grounded on the teacher's
// routing.searchPath/PriorityQueue: fScore drives pop order, seq breaks
// ties by insertion order (spec.md §5's deterministic tie-break policy),
// and index records the item's current heap position, kept up to date by
// Swap/Push/Pop (Pop only ever removes the last element, as
// container/heap expects).
type queueItem struct {
	label  label.Label
	gScore float64
	fScore float64
	seq    int
	index  int
}

// priorityQueue implements heap.Interface over queueItem, ordered by
// fScore then insertion sequence.
type priorityQueue []*queueItem

func (pq priorityQueue) Len() int { return len(pq) }

func (pq priorityQueue) Less(i, j int) bool {
	if pq[i].fScore != pq[j].fScore {
		return pq[i].fScore < pq[j].fScore
	}
	return pq[i].seq < pq[j].seq
}

func (pq priorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *priorityQueue) Push(x interface{}) {
	item := x.(*queueItem)
	item.index = len(*pq)
	*pq = append(*pq, item)
}

func (pq *priorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*pq = old[:n-1]
	return item
}
