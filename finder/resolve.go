package finder

import (
	"fmt"

	"github.com/ic-timon/gapscan/scan"
)

// resolver runs the recursive range classification for one call (or one
// parallel task). It owns its buffers and output; nothing is shared.
type resolver struct {
	cfg   *Config
	bufs  *frameBufs
	out   []int64
	stats Stats
}

// resolve appends the missing values of [lo, hi] to r.out in ascending order.
// count is the number of elements of work inside the range, already known from
// the parent's counting pass.
func (r *resolver) resolve(lo, hi int64, work []int64, count int64, depth int) error {
	if depth > r.stats.MaxDepth {
		r.stats.MaxDepth = depth
	}
	expected := hi - lo + 1
	switch {
	case count > expected:
		return integrityFault(lo, hi, count, "more values than the range holds")
	case count == expected:
		r.stats.FullRanges++
		return nil
	case count == 0:
		r.stats.EmptyRanges++
		for i := int64(0); i < expected; i++ {
			r.out = append(r.out, lo+i)
		}
		return nil
	case count == expected-1 && r.cfg.Recovery != RecoveryNone:
		return r.recoverSingle(lo, hi, work, count)
	case expected <= int64(r.cfg.BitmapThreshold):
		return r.resolveByBitmap(lo, hi, work, count)
	default:
		return r.subdivide(lo, hi, work, count, depth)
	}
}

// recoverSingle derives the only missing value of [lo, hi] from a checksum.
func (r *resolver) recoverSingle(lo, hi int64, work []int64, count int64) error {
	r.stats.ChecksumRecoveries++
	r.stats.ElementsScanned += int64(len(work))

	var missing int64
	if r.cfg.Verify {
		m := scan.MomentsInRange(work, lo, hi)
		if r.cfg.Recovery == RecoveryXor {
			missing = int64(rangeXor(lo, hi) ^ m.Xor)
		} else {
			missing = int64(rangeSum(lo, hi) - m.Sum)
		}
		if missing < lo || missing > hi ||
			rangeSum(lo, hi)-m.Sum != uint64(missing) ||
			rangeSquares(lo, hi)-m.SumSq != uint64(missing)*uint64(missing) {
			return integrityFault(lo, hi, count, "checksums do not describe a single missing value")
		}
	} else {
		if r.cfg.Recovery == RecoveryXor {
			missing = int64(rangeXor(lo, hi) ^ scan.XorInRange(work, lo, hi))
		} else {
			missing = int64(rangeSum(lo, hi) - scan.SumInRange(work, lo, hi))
		}
		if missing < lo || missing > hi {
			return integrityFault(lo, hi, count, fmt.Sprintf("recovered value %d outside the range", missing))
		}
	}
	r.out = append(r.out, missing)
	return nil
}

// resolveByBitmap marks every element of the range in the reusable bitmap and
// emits the unmarked positions.
func (r *resolver) resolveByBitmap(lo, hi int64, work []int64, count int64) error {
	r.stats.BitmapResolves++
	r.stats.ElementsScanned += int64(len(work))

	n := hi - lo + 1
	bm := r.bufs.bitmap
	bm.reset(n)
	span := uint64(hi) - uint64(lo)
	for _, x := range work {
		d := uint64(x) - uint64(lo)
		if d > span {
			continue
		}
		if bm.set(int64(d)) && r.cfg.Verify {
			return integrityFault(lo, hi, count, fmt.Sprintf("value %d present more than once", x))
		}
	}
	before := len(r.out)
	r.out = bm.appendUnset(r.out, lo, n)
	if found := int64(len(r.out) - before); found != n-count {
		return integrityFault(lo, hi, count, fmt.Sprintf("bitmap found %d missing values, counts imply %d", found, n-count))
	}
	return nil
}

// subdivide splits the range, counts every child in one pass over work, and
// recurses left to right so the output stays ascending.
func (r *resolver) subdivide(lo, hi int64, work []int64, count int64, depth int) error {
	r.stats.Subdivisions++
	if limit := int64(r.cfg.FilterLimit); limit > 0 && count <= limit && count < int64(len(work)) {
		work = r.gather(lo, hi, work, count, depth)
	}

	sp := newSplit(lo, hi, r.cfg.fanoutFor(hi-lo+1-count))
	counts := r.bufs.countsAt(depth, sp.n)
	span := uint64(hi) - uint64(lo)
	for _, x := range work {
		if d := uint64(x) - uint64(lo); d <= span {
			counts[sp.indexOf(d)]++
		}
	}
	r.stats.ElementsScanned += int64(len(work))

	for i := 0; i < sp.n; i++ {
		from, to := sp.child(i)
		if err := r.resolve(from, to, work, counts[i], depth+1); err != nil {
			return err
		}
	}
	return nil
}

// gather copies the elements of work inside [lo, hi] into the depth's subset buffer.
func (r *resolver) gather(lo, hi int64, work []int64, count int64, depth int) []int64 {
	sub := r.bufs.subsetAt(depth, int(count))
	span := uint64(hi) - uint64(lo)
	for _, x := range work {
		if uint64(x)-uint64(lo) <= span {
			sub = append(sub, x)
		}
	}
	r.bufs.subsets[depth] = sub
	r.stats.ElementsScanned += int64(len(work))
	r.stats.Gathers++
	return sub
}
