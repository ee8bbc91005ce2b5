package radixgraph

import "github.com/forwardstar/radixgraph/internal/bitset"

// BFS performs a single-threaded breadth-first traversal starting at
// srcID and returns every reachable external vertex ID, in visitation
// order (srcID first). Returns ErrSourceNotFound if srcID does not
// exist, or ErrQueryDisabled if the Graph was built with
// enableQuery=false.
func (g *Graph) BFS(srcID uint64) ([]uint64, error) {
	if !g.enableQuery {
		return nil, ErrQueryDisabled
	}
	rec, ok := g.trie.Retrieve(srcID, false)
	if !ok {
		return nil, ErrSourceNotFound
	}

	visited := bitset.NewSeenSet(g.table.Len())
	srcOffset := rec.Offset()

	queue := []int32{srcOffset}
	visited.Set(int(srcOffset))
	order := []uint64{rec.ExternalID}

	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]

		neighbours, ok := g.GetNeighboursByOffset(u, -1)
		if !ok {
			continue
		}
		for _, n := range neighbours {
			if visited.Test(int(n.DestOffset)) {
				continue
			}
			visited.Set(int(n.DestOffset))
			queue = append(queue, n.DestOffset)
			order = append(order, g.table.At(n.DestOffset).ExternalID)
		}
	}

	return order, nil
}
