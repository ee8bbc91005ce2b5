package trie

import "github.com/forwardstar/radixgraph/internal/vertex"

func newTable() *vertex.DenseTable {
	return vertex.NewDenseTable()
}
