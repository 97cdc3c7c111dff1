package finder

import (
	"fmt"
	"sync"
	"time"

	"github.com/ic-timon/gapscan/scan"
)

// Finder resolves missing values with a fixed configuration. It is safe for
// concurrent use; every call borrows its own buffers.
type Finder struct {
	cfg  *Config
	bufs sync.Pool // *frameBufs sized to cfg.BitmapThreshold
}

// New creates a Finder. Uses default config if cfg is nil.
func New(cfg *Config) *Finder {
	cfg = cfg.OrDefault()
	f := &Finder{cfg: cfg}
	f.bufs.New = func() interface{} { return newFrameBufs(cfg.BitmapThreshold) }
	return f
}

var defaultFinder = New(nil)

// FindMissing returns, in ascending order, the values of [0, n) absent from
// present, using the default configuration. present must not contain duplicates
// or values outside the domain; such input yields an error wrapping
// ErrInputIntegrity rather than a wrong result.
func FindMissing(n int64, present []int64) ([]int64, error) {
	return defaultFinder.Find(n, present)
}

// Config returns the current configuration.
func (f *Finder) Config() *Config {
	return f.cfg
}

// Find returns the ascending values of [0, n) absent from present.
func (f *Finder) Find(n int64, present []int64) ([]int64, error) {
	out, _, err := f.FindWithStats(n, present)
	return out, err
}

// FindWithStats is Find that also reports the work performed.
func (f *Finder) FindWithStats(n int64, present []int64) ([]int64, Stats, error) {
	start := time.Now()
	out, stats, err := f.find(n, present)
	stats.Duration = time.Since(start)
	publish(stats, stats.Duration, err)
	if l := f.cfg.Logger; l != nil {
		if err != nil {
			l.Debug("find failed", "n", n, "present", len(present), "error", err)
		} else {
			l.Debug("find",
				"n", n,
				"missing", len(out),
				"ranges", stats.Ranges(),
				"scanned", stats.ElementsScanned,
				"max_depth", stats.MaxDepth,
				"workers", stats.Workers,
				"scan_impl", scan.Desc(),
				"duration", stats.Duration,
			)
		}
	}
	if err != nil {
		return nil, stats, err
	}
	return out, stats, nil
}

// checkDomain validates n and returns the number of missing values.
func checkDomain(n int64, present []int64) (int64, error) {
	if n < 1 {
		return 0, fmt.Errorf("%w: domain size %d", ErrInvalidDomain, n)
	}
	k := n - int64(len(present))
	if k < 0 {
		return 0, fmt.Errorf("%w: %d present values exceed domain size %d", ErrInvalidDomain, len(present), n)
	}
	return k, nil
}

// totals carries the global sums of the present array for the final check.
type totals struct {
	sum, sumSq uint64
}

func (f *Finder) find(n int64, present []int64) ([]int64, Stats, error) {
	k, err := checkDomain(n, present)
	if err != nil {
		return nil, Stats{}, err
	}
	var (
		out   []int64
		stats Stats
		tot   totals
	)
	if f.cfg.BucketCount > 0 && n > int64(f.cfg.BitmapThreshold) {
		out, stats, tot, err = f.findBucketed(n, present, k)
	} else {
		out, stats, tot, err = f.findDirect(n, present, k)
	}
	if stats.BitmapResolves > 0 {
		// one bitmap per resolver, one resolver per worker
		stats.BitmapBytes = (f.cfg.BitmapThreshold + 63) / 64 * 8 * max(stats.Workers, 1)
	}
	if err != nil {
		return nil, stats, err
	}
	if int64(len(out)) != k {
		return nil, stats, integrityFault(0, n-1, int64(len(present)),
			fmt.Sprintf("resolved %d missing values, expected %d", len(out), k))
	}
	if f.cfg.Verify {
		if err := verifyTotals(n, tot, out); err != nil {
			return nil, stats, err
		}
	}
	return out, stats, nil
}

// findDirect counts the whole domain as the root range and recurses.
func (f *Finder) findDirect(n int64, present []int64, k int64) ([]int64, Stats, totals, error) {
	r := f.acquire(k)
	defer f.release(r)

	var (
		count int64
		tot   totals
	)
	if f.cfg.Verify {
		m := scan.MomentsInRange(present, 0, n-1)
		count, tot = int64(m.Count), totals{sum: m.Sum, sumSq: m.SumSq}
	} else {
		count = int64(scan.CountInRange(present, 0, n-1))
	}
	r.stats.ElementsScanned += int64(len(present))
	if outside := int64(len(present)) - count; outside > 0 {
		return nil, r.stats, tot, integrityFault(0, n-1, count, fmt.Sprintf("%d values outside the domain", outside))
	}
	if err := r.resolve(0, n-1, present, count, 0); err != nil {
		return nil, r.stats, tot, err
	}
	return r.out, r.stats, tot, nil
}

// findBucketed counts every bucket in one global pass, then resolves only the
// buckets that are short of values.
func (f *Finder) findBucketed(n int64, present []int64, k int64) ([]int64, Stats, totals, error) {
	plan := newSplit(0, n-1, int64(f.cfg.BucketCount))
	counts := make([]int64, plan.n)
	var (
		outside int64
		tot     totals
	)
	span := uint64(n - 1)
	if f.cfg.Verify {
		for _, x := range present {
			d := uint64(x)
			if d > span {
				outside++
				continue
			}
			counts[plan.indexOf(d)]++
			tot.sum += d
			tot.sumSq += d * d
		}
	} else {
		for _, x := range present {
			d := uint64(x)
			if d > span {
				outside++
				continue
			}
			counts[plan.indexOf(d)]++
		}
	}
	base := Stats{Buckets: plan.n, ElementsScanned: int64(len(present))}
	if outside > 0 {
		return nil, base, tot, integrityFault(0, n-1, int64(len(present))-outside,
			fmt.Sprintf("%d values outside the domain", outside))
	}

	if f.cfg.Workers > 1 {
		out, stats, err := f.resolveBucketsParallel(plan, counts, present, k)
		stats.merge(base)
		stats.Buckets = plan.n
		return out, stats, tot, err
	}

	r := f.acquire(k)
	defer f.release(r)
	r.stats = base
	for i := 0; i < plan.n; i++ {
		from, to := plan.child(i)
		if err := r.resolve(from, to, present, counts[i], 1); err != nil {
			return nil, r.stats, tot, err
		}
	}
	r.stats.Workers = 1
	return r.out, r.stats, tot, nil
}

// verifyTotals checks that the result accounts for the whole gap between the
// domain's checksums and the present array's.
func verifyTotals(n int64, tot totals, out []int64) error {
	var sum, sumSq uint64
	for _, m := range out {
		sum += uint64(m)
		sumSq += uint64(m) * uint64(m)
	}
	if rangeSum(0, n-1)-tot.sum != sum || rangeSquares(0, n-1)-tot.sumSq != sumSq {
		return integrityFault(0, n-1, n-int64(len(out)), "result checksums disagree with the input")
	}
	return nil
}

func (f *Finder) acquire(capHint int64) *resolver {
	return &resolver{
		cfg:  f.cfg,
		bufs: f.bufs.Get().(*frameBufs),
		out:  make([]int64, 0, max(capHint, 0)),
	}
}

func (f *Finder) release(r *resolver) {
	f.bufs.Put(r.bufs)
	r.bufs = nil
}
