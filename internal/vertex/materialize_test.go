package vertex

import (
	"sort"
	"testing"

	"github.com/forwardstar/radixgraph/internal/bitset"
)

func neighborSet(ns []Neighbor) map[int32]float32 {
	m := make(map[int32]float32, len(ns))
	for _, n := range ns {
		m[n.DestOffset] = n.Weight
	}
	return m
}

func TestMaterializeInsertOnly(t *testing.T) {
	src := NewRecord(1, 0)
	src.AppendInsertOrUpdate(2, 0.5, true)
	src.AppendInsertOrUpdate(3, 0.25, true)

	seen := bitset.NewSeenSet(16)
	got, ok := Materialize(src, nil, seen, -1)
	if !ok {
		t.Fatalf("expected ok")
	}
	want := map[int32]float32{2: 0.5, 3: 0.25}
	if m := neighborSet(got); len(m) != len(want) || m[2] != 0.5 || m[3] != 0.25 {
		t.Fatalf("got %v, want %v", m, want)
	}
	if src.Degree() != 2 {
		t.Fatalf("deg = %d, want 2", src.Degree())
	}
}

func TestMaterializeUpdateKeepsLatestWeight(t *testing.T) {
	src := NewRecord(7, 0)
	src.AppendInsertOrUpdate(8, 1.0, true)
	src.AppendInsertOrUpdate(8, 2.0, false)

	seen := bitset.NewSeenSet(16)
	got, ok := Materialize(src, nil, seen, -1)
	if !ok {
		t.Fatalf("expected ok")
	}
	if len(got) != 1 || got[0].DestOffset != 8 || got[0].Weight != 2.0 {
		t.Fatalf("got %+v, want [{8 2.0}]", got)
	}
	if src.Degree() != 1 {
		t.Fatalf("deg = %d, want 1", src.Degree())
	}
}

func TestMaterializeDeleteRemovesEdge(t *testing.T) {
	src := NewRecord(5, 0)
	src.AppendInsertOrUpdate(6, 0.5, true)
	src.AppendDelete(6)

	seen := bitset.NewSeenSet(16)
	got, ok := Materialize(src, nil, seen, -1)
	if !ok {
		t.Fatalf("expected ok")
	}
	if len(got) != 0 {
		t.Fatalf("got %+v, want empty", got)
	}
	if src.Degree() != 0 {
		t.Fatalf("deg = %d, want 0", src.Degree())
	}
}

func TestMaterializeDeleteOfNeverInsertedIsBenign(t *testing.T) {
	src := NewRecord(9, 0)
	src.AppendDelete(99)

	seen := bitset.NewSeenSet(16)
	got, ok := Materialize(src, nil, seen, -1)
	if !ok || len(got) != 0 {
		t.Fatalf("got %+v ok=%v, want empty/true", got, ok)
	}
}

func TestMaterializeTimestampZeroIsEmpty(t *testing.T) {
	src := NewRecord(1, 0)
	src.AppendInsertOrUpdate(2, 1, true)

	seen := bitset.NewSeenSet(16)
	got, ok := Materialize(src, nil, seen, 0)
	if !ok || len(got) != 0 {
		t.Fatalf("got %+v ok=%v, want empty/true", got, ok)
	}
}

func TestMaterializeOnTombstonedVertexFails(t *testing.T) {
	src := NewRecord(1, 0)
	src.Tombstone()

	seen := bitset.NewSeenSet(16)
	_, ok := Materialize(src, nil, seen, -1)
	if ok {
		t.Fatalf("expected !ok for tombstoned vertex")
	}
}

func TestMaterializeSeenSetReusable(t *testing.T) {
	a := NewRecord(1, 0)
	a.AppendInsertOrUpdate(2, 1, true)
	a.AppendInsertOrUpdate(3, 1, true)

	b := NewRecord(4, 1)
	b.AppendInsertOrUpdate(2, 1, true)

	seen := bitset.NewSeenSet(16)
	got1, _ := Materialize(a, nil, seen, -1)
	got2, _ := Materialize(b, nil, seen, -1)

	dests1 := make([]int, 0, len(got1))
	for _, n := range got1 {
		dests1 = append(dests1, int(n.DestOffset))
	}
	sort.Ints(dests1)
	if len(dests1) != 2 || dests1[0] != 2 || dests1[1] != 3 {
		t.Fatalf("got1 dests = %v", dests1)
	}
	if len(got2) != 1 || got2[0].DestOffset != 2 {
		t.Fatalf("got2 = %+v, want dest 2 (stale bit from prior call must have been cleared)", got2)
	}
}
