package trie

import (
	"sync"
	"testing"
)

func newTestTrie(t *testing.T) *Trie {
	t.Helper()
	tbl := newTable()
	tr, err := New(4, []int{15, 6, 6, 5}, tbl)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return tr
}

func TestRetrieveAbsentNoInsert(t *testing.T) {
	tr := newTestTrie(t)
	_, ok := tr.Retrieve(42, false)
	if ok {
		t.Fatalf("expected absent")
	}
}

func TestRetrieveInsertIsIdempotent(t *testing.T) {
	tr := newTestTrie(t)
	rec1, ok1 := tr.Retrieve(123456, true)
	rec2, ok2 := tr.Retrieve(123456, true)
	if !ok1 || !ok2 {
		t.Fatalf("expected both inserts to succeed")
	}
	if rec1 != rec2 {
		t.Fatalf("expected same record for repeated insert of the same id")
	}
	if rec1.Offset() != rec2.Offset() {
		t.Fatalf("offsets differ: %d vs %d", rec1.Offset(), rec2.Offset())
	}
}

func TestDistinctIDsGetDistinctOffsets(t *testing.T) {
	tr := newTestTrie(t)
	a, _ := tr.Retrieve(1, true)
	b, _ := tr.Retrieve(2, true)
	if a.Offset() == b.Offset() {
		t.Fatalf("expected distinct offsets, both got %d", a.Offset())
	}
}

func TestDeleteThenRetrieveWithoutInsertFails(t *testing.T) {
	tr := newTestTrie(t)
	tr.Retrieve(7, true)
	if !tr.Delete(7) {
		t.Fatalf("expected delete to succeed")
	}
	if _, ok := tr.Retrieve(7, false); ok {
		t.Fatalf("expected vertex to be absent after delete")
	}
}

func TestDeleteAbsentReturnsFalse(t *testing.T) {
	tr := newTestTrie(t)
	if tr.Delete(999) {
		t.Fatalf("expected delete of absent vertex to return false")
	}
}

func TestReviveAfterDeleteGetsFreshOffset(t *testing.T) {
	tr := newTestTrie(t)
	first, _ := tr.Retrieve(7, true)
	tr.Delete(7)
	second, ok := tr.Retrieve(7, true)
	if !ok {
		t.Fatalf("expected revival to succeed")
	}
	if second.Offset() == first.Offset() {
		t.Fatalf("expected a fresh offset on revival, both are %d", first.Offset())
	}
}

func TestConcurrentInsertSameIDConverges(t *testing.T) {
	tr := newTestTrie(t)
	const n = 200
	offsets := make([]int32, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rec, _ := tr.Retrieve(0xABCDEF, true)
			offsets[i] = rec.Offset()
		}(i)
	}
	wg.Wait()
	for i := 1; i < n; i++ {
		if offsets[i] != offsets[0] {
			t.Fatalf("offsets diverged: %d vs %d", offsets[i], offsets[0])
		}
	}
}

func TestConcurrentInsertDistinctIDsAllDistinctOffsets(t *testing.T) {
	tr := newTestTrie(t)
	const n = 500
	offsets := make([]int32, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rec, _ := tr.Retrieve(uint64(i), true)
			offsets[i] = rec.Offset()
		}(i)
	}
	wg.Wait()

	seen := make(map[int32]bool, n)
	for _, o := range offsets {
		if seen[o] {
			t.Fatalf("offset %d assigned more than once", o)
		}
		seen[o] = true
	}
}

func TestSizeIsACapacityCensus(t *testing.T) {
	tr := newTestTrie(t)
	before := tr.Size()
	tr.Retrieve(1, true)
	after := tr.Size()
	if after <= before {
		t.Fatalf("expected size to grow after first insertion: before=%d after=%d", before, after)
	}
}
