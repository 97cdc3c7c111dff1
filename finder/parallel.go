package finder

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// bucketTask is one deficient bucket handed to a worker.
type bucketTask struct {
	from, to int64
	count    int64
}

// resolveBucketsParallel resolves deficient buckets on up to cfg.Workers
// goroutines. Each task borrows its own buffers and writes its own result
// slot; the join concatenates slots in bucket order, never sorting by value.
func (f *Finder) resolveBucketsParallel(plan split, counts []int64, present []int64, k int64) ([]int64, Stats, error) {
	var tasks []bucketTask
	var full int64
	for i := 0; i < plan.n; i++ {
		from, to := plan.child(i)
		switch width := to - from + 1; {
		case counts[i] > width:
			return nil, Stats{}, integrityFault(from, to, counts[i], "more values than the range holds")
		case counts[i] == width:
			full++
			continue
		}
		tasks = append(tasks, bucketTask{from: from, to: to, count: counts[i]})
	}

	results := make([][]int64, len(tasks))
	stats := make([]Stats, len(tasks))

	g, gCtx := errgroup.WithContext(context.Background())
	g.SetLimit(f.cfg.Workers)
	for i, t := range tasks {
		i, t := i, t
		g.Go(func() error {
			// 已有任务失败时不再启动新任务
			if err := gCtx.Err(); err != nil {
				return err
			}
			r := f.acquire(t.to - t.from + 1 - t.count)
			defer f.release(r)
			if err := r.resolve(t.from, t.to, present, t.count, 1); err != nil {
				return err
			}
			results[i] = r.out
			stats[i] = r.stats
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, Stats{Workers: f.cfg.Workers}, err
	}

	out := make([]int64, 0, k)
	merged := Stats{FullRanges: full, Workers: min(f.cfg.Workers, max(len(tasks), 1))}
	for i := range results {
		out = append(out, results[i]...)
		merged.merge(stats[i])
	}
	return out, merged, nil
}
