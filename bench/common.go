package main

import (
	"fmt"
	"path/filepath"
	"slices"
	"time"

	"github.com/ic-timon/gapscan/bench/metrics"
	"github.com/ic-timon/gapscan/scan"
)

// timeRuns 执行 runs 次 find 并返回每次耗时；结果与 want 不一致时报错
func timeRuns(runs int, want []int64, find func() ([]int64, error)) ([]time.Duration, error) {
	durations := make([]time.Duration, runs)
	for i := range durations {
		t0 := time.Now()
		out, err := find()
		durations[i] = time.Since(t0)
		if err != nil {
			return nil, err
		}
		if !slices.Equal(out, want) {
			return nil, fmt.Errorf("wrong result: got %d values, want %d", len(out), len(want))
		}
	}
	return durations, nil
}

// reportPaths 返回本阶段 CSV 路径并写出运行元信息
func reportPaths(o stageOpts, stage string) (string, error) {
	metrics.ReportDir = o.dir
	info := metrics.NewRunInfo(stage, scan.Desc(), o.seed, o.runs)
	csvPath := metrics.ReportPath("bench_report_"+stage+"_", ".csv")
	jsonPath := filepath.Join(o.dir, "bench_run_"+stage+"_"+info.ID+".json")
	if err := metrics.WriteJSON(info, jsonPath); err != nil {
		return "", err
	}
	fmt.Printf("运行 ID %s，SIMD=%s\n", info.ID, info.ScanImpl)
	return csvPath, nil
}

func ms(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / 1e6
}
