package main

import (
	"fmt"

	"github.com/ic-timon/gapscan/bench/gen"
	"github.com/ic-timon/gapscan/bench/metrics"
	"github.com/ic-timon/gapscan/finder"
)

func runStageB(o stageOpts) error {
	scales := []int64{1_000_000, 10_000_000, 100_000_000}
	if o.quick {
		scales = []int64{10_000, 100_000}
	}
	ks := []int64{5, 10, 100, 250}
	strategies := finder.Strategies()

	var rows []metrics.ScaleRow
	for _, n := range scales {
		for _, k := range ks {
			fmt.Printf("阶段 B: N=%d K=%d\n", n, k)
			present, missing := gen.Dataset(n, k, o.seed+n+k)
			metrics.GC()

			for _, s := range strategies {
				row := metrics.ScaleRow{Strategy: s.Name, N: n, K: k}
				// 超出 N*K 预算的策略只记录为跳过
				if !s.Allowed(n, k) || (s.Name == "reference" && n > 10_000_000) {
					row.Skipped = true
					rows = append(rows, row)
					continue
				}
				durations, err := timeRuns(o.runs, missing, func() ([]int64, error) { return s.Find(n, present) })
				if err != nil {
					return fmt.Errorf("%s n=%d k=%d: %w", s.Name, n, k, err)
				}
				lat := metrics.LatencyStatsFromDurations(durations)
				row.MeanMs, row.MedianMs, row.P95Ms = lat.MeanMs, lat.MedianMs, lat.P95Ms
				rows = append(rows, row)
				fmt.Printf("  %-10s Mean=%.3fms Median=%.3fms P95=%.3fms\n", s.Name, lat.MeanMs, lat.MedianMs, lat.P95Ms)
			}
		}
	}

	path, err := reportPaths(o, "scale")
	if err != nil {
		return err
	}
	if err := metrics.WriteScaleCSV(rows, path); err != nil {
		return err
	}
	fmt.Printf("报告已写入 %s\n", path)
	return nil
}
