package radixgraph

import (
	"container/heap"
	"math"
)

// SSSP computes single-source shortest-path distances from srcID using
// an eager Dijkstra variant: a min-heap of tentative distances, with
// stale heap entries tolerated by re-checking the popped distance
// against the best known one rather than supporting heap decrease-key.
// Weights are treated as non-negative float64s. Returns a slice indexed
// by dense offset; unreachable vertices hold math.Inf(1).
func (g *Graph) SSSP(srcID uint64) ([]float64, error) {
	if !g.enableQuery {
		return nil, ErrQueryDisabled
	}
	rec, ok := g.trie.Retrieve(srcID, false)
	if !ok {
		return nil, ErrSourceNotFound
	}

	n := g.table.Len()
	dist := make([]float64, n)
	for i := range dist {
		dist[i] = math.Inf(1)
	}
	dist[rec.Offset()] = 0

	pq := &distHeap{{offset: rec.Offset(), dist: 0}}
	heap.Init(pq)

	for pq.Len() > 0 {
		top := heap.Pop(pq).(distItem)
		if top.dist > dist[top.offset] {
			continue // stale entry superseded by a better path found since it was pushed
		}

		neighbours, ok := g.GetNeighboursByOffset(top.offset, -1)
		if !ok {
			continue
		}
		for _, nb := range neighbours {
			cand := dist[top.offset] + float64(nb.Weight)
			if cand < dist[nb.DestOffset] {
				dist[nb.DestOffset] = cand
				heap.Push(pq, distItem{offset: nb.DestOffset, dist: cand})
			}
		}
	}

	return dist, nil
}

type distItem struct {
	offset int32
	dist   float64
}

// distHeap implements heap.Interface as a min-heap on dist, so Pop
// always returns the smallest tentative distance.
type distHeap []distItem

func (h distHeap) Len() int            { return len(h) }
func (h distHeap) Less(i, j int) bool  { return h[i].dist < h[j].dist }
func (h distHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *distHeap) Push(x interface{}) { *h = append(*h, x.(distItem)) }
func (h *distHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
