package vertex

import "github.com/forwardstar/radixgraph/internal/bitset"

// Neighbor is one live out-edge as reconstructed by Materialize.
type Neighbor struct {
	DestOffset int32
	Weight     float32
}

// Materialize reconstructs src's current neighbor set by folding its
// edge log newest-to-oldest, using seen to remember which destinations
// have already been resolved. timestamp selects the log prefix to
// replay: -1 means "the latest snapshot, as of the moment the log
// length was read"; any other non-negative value replays exactly that
// many leading log entries (0 yields an empty neighbor list regardless
// of what the log holds).
//
// Materialize returns false only when src is nil or has been
// logically deleted; every other outcome, including an empty result,
// is success.
func Materialize(src *Record, table *DenseTable, seen *bitset.SeenSet, timestamp int) ([]Neighbor, bool) {
	if src == nil || !src.IsLive() {
		return nil, false
	}

	logLen := src.Log.Len()
	cnt := logLen
	if timestamp != -1 {
		cnt = timestamp
	}
	if cnt > logLen {
		cnt = logLen
	}
	if cnt < 0 {
		cnt = 0
	}

	deg := int(src.Degree())
	out := make([]Neighbor, 0, max(deg, 0))
	touched := make([]int32, 0, cnt)

	for i := cnt - 1; i >= 0; i-- {
		e := *src.Log.At(i)
		dest := e.DestOffset

		if !seen.Test(int(dest)) {
			if !e.IsDeletion() {
				out = append(out, Neighbor{DestOffset: dest, Weight: e.Weight})
			}
			seen.Set(int(dest))
			touched = append(touched, dest)
		}

		// Every live destination discovered so far accounts for one
		// of deg; once len(out) == deg-i, the unscanned prefix
		// [0, i) is finished in a tail loop. deg counts every insert,
		// including re-inserts of an edge that is already live, so
		// the prefix can still hold superseded entries for
		// destinations resolved above; the tail loop therefore still
		// goes through seen/touched and emits at most one entry per
		// destination.
		if len(out) == deg-i {
			for j := i - 1; j >= 0; j-- {
				e := *src.Log.At(j)
				if seen.Test(int(e.DestOffset)) {
					continue
				}
				if !e.IsDeletion() {
					out = append(out, Neighbor{DestOffset: e.DestOffset, Weight: e.Weight})
				}
				seen.Set(int(e.DestOffset))
				touched = append(touched, e.DestOffset)
			}
			break
		}
	}

	for _, dest := range touched {
		seen.Clear(int(dest))
	}

	return out, true
}
