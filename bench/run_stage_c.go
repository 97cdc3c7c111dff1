package main

import (
	"fmt"
	"runtime"

	"github.com/ic-timon/gapscan/bench/gen"
	"github.com/ic-timon/gapscan/bench/metrics"
	"github.com/ic-timon/gapscan/finder"
)

func runStageC(o stageOpts) error {
	n, k := int64(50_000_000), int64(5_000)
	if o.quick {
		n, k = 1_000_000, 500
	}
	workerList := []int{1, 2, 4, 8, 16}
	if c := runtime.NumCPU(); c > 16 {
		workerList = append(workerList, c)
	}

	present, missing := gen.Dataset(n, k, o.seed)

	var rows []metrics.ParallelRow
	var baseline float64
	for _, w := range workerList {
		fmt.Printf("阶段 C: Workers=%d N=%d K=%d\n", w, n, k)
		cfg := finder.DefaultConfig()
		cfg.BucketCount = 4096
		cfg.Workers = w
		f := finder.New(cfg)

		metrics.GC()
		durations, err := timeRuns(o.runs, missing, func() ([]int64, error) { return f.Find(n, present) })
		if err != nil {
			return fmt.Errorf("workers=%d: %w", w, err)
		}
		lat := metrics.LatencyStatsFromDurations(durations)
		if baseline == 0 {
			baseline = lat.MeanMs
		}
		speedup := 1.0
		if lat.MeanMs > 0 {
			speedup = baseline / lat.MeanMs
		}
		snap := metrics.Take()
		rows = append(rows, metrics.ParallelRow{
			Workers:      w,
			N:            n,
			K:            k,
			MeanMs:       lat.MeanMs,
			P99Ms:        lat.P99Ms,
			Speedup:      speedup,
			NumGoroutine: snap.NumGoroutine,
		})
		fmt.Printf("  Mean=%.2fms P99=%.2fms Speedup=%.2fx Goroutines=%d\n", lat.MeanMs, lat.P99Ms, speedup, snap.NumGoroutine)
	}

	path, err := reportPaths(o, "parallel")
	if err != nil {
		return err
	}
	if err := metrics.WriteParallelCSV(rows, path); err != nil {
		return err
	}
	fmt.Printf("报告已写入 %s\n", path)
	return nil
}
