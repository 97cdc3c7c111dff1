// 阶段 D: 对比堆内解码 vs mmap 加载数据集后的查找性能
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ic-timon/gapscan/bench/gen"
	"github.com/ic-timon/gapscan/bench/metrics"
	"github.com/ic-timon/gapscan/finder"
	"github.com/ic-timon/gapscan/finder/store"
)

func runStageD(o stageOpts) error {
	scales := []int64{10_000_000, 100_000_000}
	if o.quick {
		scales = []int64{1_000_000}
	}
	const k = 100

	f := finder.New(nil)
	var rows []metrics.StorageRow
	for _, n := range scales {
		present, missing := gen.Dataset(n, k, o.seed)
		tmp := filepath.Join(os.TempDir(), fmt.Sprintf("gapscan-stage-d-%d.gpsc", n))
		if err := store.WriteFileAtomic(tmp, store.Header{N: n, Missing: k, Seed: o.seed}, present); err != nil {
			return err
		}
		present = nil

		loaders := []struct {
			mode string
			open func(string) (store.Dataset, error)
		}{
			{"heap", store.ReadFile},
			{"mmap", func(p string) (store.Dataset, error) { return store.OpenMmap(p) }},
		}
		for _, l := range loaders {
			fmt.Printf("阶段 D: %s N=%d\n", l.mode, n)
			metrics.GC()

			t0 := time.Now()
			ds, err := l.open(tmp)
			if err != nil {
				return err
			}
			loadDur := time.Since(t0)

			durations, err := timeRuns(o.runs, missing, func() ([]int64, error) { return f.Find(ds.Header().N, ds.Values()) })
			snap := metrics.Take()
			if cerr := ds.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				return fmt.Errorf("%s n=%d: %w", l.mode, n, err)
			}
			lat := metrics.LatencyStatsFromDurations(durations)
			rows = append(rows, metrics.StorageRow{
				Mode:        l.mode,
				N:           n,
				K:           k,
				LoadMs:      ms(loadDur),
				FindMeanMs:  lat.MeanMs,
				FindP99Ms:   lat.P99Ms,
				HeapAllocMB: float64(snap.HeapAlloc) / 1024 / 1024,
			})
			fmt.Printf("  Load=%.1fms FindMean=%.2fms P99=%.2fms Heap=%.1fMB\n", ms(loadDur), lat.MeanMs, lat.P99Ms, rows[len(rows)-1].HeapAllocMB)
		}
		_ = os.Remove(tmp)
	}

	path, err := reportPaths(o, "storage")
	if err != nil {
		return err
	}
	if err := metrics.WriteStorageCSV(rows, path); err != nil {
		return err
	}
	fmt.Printf("报告已写入 %s\n", path)
	return nil
}
