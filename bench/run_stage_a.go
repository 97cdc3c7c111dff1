package main

import (
	"fmt"

	"github.com/ic-timon/gapscan/bench/gen"
	"github.com/ic-timon/gapscan/bench/metrics"
	"github.com/ic-timon/gapscan/finder"
)

func runStageA(o stageOpts) error {
	n, k := int64(10_000_000), int64(100)
	if o.quick {
		n = 200_000
	}
	fanouts := []int{2, 4, 16, 64, 128, 1024}
	thresholds := []int{1, 32, 1024, 8192}

	present, missing := gen.Dataset(n, k, o.seed)

	var rows []metrics.SweepRow
	sweep := func(cfg *finder.Config) error {
		f := finder.New(cfg)
		fmt.Printf("阶段 A: Fanout=%d Threshold=%d Adaptive=%v\n", cfg.Fanout, cfg.BitmapThreshold, cfg.AdaptiveFanout)

		_, stats, err := f.FindWithStats(n, present)
		if err != nil {
			return err
		}

		metrics.GC()
		before := metrics.Take()
		durations, err := timeRuns(o.runs, missing, func() ([]int64, error) { return f.Find(n, present) })
		if err != nil {
			return fmt.Errorf("fanout=%d threshold=%d: %w", cfg.Fanout, cfg.BitmapThreshold, err)
		}
		delta := metrics.Diff(before, metrics.Take())
		lat := metrics.LatencyStatsFromDurations(durations)

		rows = append(rows, metrics.SweepRow{
			Fanout:    cfg.Fanout,
			Threshold: cfg.BitmapThreshold,
			Adaptive:  cfg.AdaptiveFanout,
			N:         n,
			K:         k,
			MeanMs:    lat.MeanMs,
			P99Ms:     lat.P99Ms,
			Ranges:    stats.Ranges(),
			Scanned:   stats.ElementsScanned,
			MaxDepth:  stats.MaxDepth,
			AllocKB:   float64(delta.AllocBytes) / 1024 / float64(o.runs),
		})
		fmt.Printf("  Mean=%.2fms P99=%.2fms Ranges=%d Scanned=%d Depth=%d\n",
			lat.MeanMs, lat.P99Ms, stats.Ranges(), stats.ElementsScanned, stats.MaxDepth)
		return nil
	}

	for _, fo := range fanouts {
		for _, t := range thresholds {
			// 小 fanout 且无过滤子集时每层都要扫全量数组，Threshold=1 代价过高
			if fo <= 4 && t == 1 && !o.quick {
				continue
			}
			cfg := &finder.Config{
				Fanout:          fo,
				BitmapThreshold: t,
				Recovery:        finder.RecoverySum,
				FilterLimit:     1 << 16,
				Verify:          true,
			}
			if err := sweep(cfg); err != nil {
				return err
			}
		}
	}
	// 自适应 fanout 对照
	for _, t := range thresholds {
		cfg := finder.DefaultConfig()
		cfg.BucketCount = 0
		cfg.BitmapThreshold = t
		if err := sweep(cfg); err != nil {
			return err
		}
	}

	path, err := reportPaths(o, "sweep")
	if err != nil {
		return err
	}
	if err := metrics.WriteSweepCSV(rows, path); err != nil {
		return err
	}
	fmt.Printf("报告已写入 %s\n", path)
	return nil
}
