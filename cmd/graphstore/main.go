// Command graphstore drives a radixgraph.Graph under a randomized
// concurrent workload: a fixed population of writer goroutines insert
// and delete edges over a shared vertex ID space while a reader
// goroutine runs BFS and DeltaStep from a random source on a timer. It exists to exercise the store the way a load test would,
// not as a benchmark harness.
package main

import (
	"log"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/forwardstar/radixgraph"
)

const (
	numVertices = 50_000
	numWriters  = 8
	runFor      = 10 * time.Second
)

func main() {
	log.SetFlags(log.Lmicroseconds)

	g, err := radixgraph.New(
		4, []int{16, 16, 16, 16},
		true,
		radixgraph.WithMaxThreads(16),
		radixgraph.WithCapacityHint(numVertices*2),
		radixgraph.WithLogger(log.Default()),
	)
	if err != nil {
		log.Fatalf("radixgraph.New: %v", err)
	}

	prng := rand.New(rand.NewPCG(7, 7))
	seedEdges(g, prng, numVertices*4)

	stop := make(chan struct{})
	var wg sync.WaitGroup

	for w := 0; w < numWriters; w++ {
		wg.Add(1)
		go func(seed uint64) {
			defer wg.Done()
			writer(g, rand.New(rand.NewPCG(seed, seed^0x9e3779b9)), stop)
		}(uint64(w) + 1)
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		reader(g, prng, stop)
	}()

	time.Sleep(runFor)
	close(stop)
	wg.Wait()

	log.Printf("final vertex count: %d", g.NumVertices())
}

func seedEdges(g *radixgraph.Graph, prng *rand.Rand, n int) {
	for i := 0; i < n; i++ {
		src := randVertexID(prng)
		dest := randVertexID(prng)
		weight := prng.Float32()*10 + 0.01
		g.InsertEdge(src, dest, weight)
	}
	log.Printf("seeded %d edges", n)
}

func writer(g *radixgraph.Graph, prng *rand.Rand, stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return
		default:
		}
		src := randVertexID(prng)
		dest := randVertexID(prng)
		if prng.Float64() < 0.1 {
			g.DeleteEdge(src, dest)
		} else {
			g.InsertEdge(src, dest, prng.Float32()*10+0.01)
		}
	}
}

func reader(g *radixgraph.Graph, prng *rand.Rand, stop <-chan struct{}) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			src := randVertexID(prng)
			order, err := g.BFS(src)
			if err != nil {
				log.Printf("BFS(%d): %v", src, err)
				continue
			}
			log.Printf("BFS(%d): reached %d vertices", src, len(order))

			dist, err := g.DeltaStep(src, 1.0)
			if err != nil {
				log.Printf("DeltaStep(%d): %v", src, err)
				continue
			}
			reachable := 0
			for _, d := range dist {
				if !math.IsInf(d, 1) {
					reachable++
				}
			}
			log.Printf("DeltaStep(%d): %d reachable", src, reachable)
		}
	}
}

func randVertexID(prng *rand.Rand) uint64 {
	return prng.Uint64N(numVertices)
}
