package metrics

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// LatencyStats 延迟统计
type LatencyStats struct {
	MinMs    float64
	MaxMs    float64
	MeanMs   float64
	MedianMs float64
	P95Ms    float64
	P99Ms    float64
	N        int
}

// SweepRow 阶段 A（F × T 参数寻优）单行数据
type SweepRow struct {
	Fanout      int
	Threshold   int
	Adaptive    bool
	N           int64
	K           int64
	MeanMs      float64
	P99Ms       float64
	Ranges      int64
	Scanned     int64
	MaxDepth    int
	AllocKB     float64 // 每次调用的平均分配量
}

// ScaleRow 阶段 B（策略 × N × K）单行数据
type ScaleRow struct {
	Strategy string
	N        int64
	K        int64
	MeanMs   float64
	MedianMs float64
	P95Ms    float64
	Skipped  bool // 超出该策略的 N*K 预算
}

// ParallelRow 阶段 C（并发桶解析）单行数据
type ParallelRow struct {
	Workers      int
	N            int64
	K            int64
	MeanMs       float64
	P99Ms        float64
	Speedup      float64
	NumGoroutine int
}

// StorageRow 阶段 D（堆内存 vs mmap）单行数据
type StorageRow struct {
	Mode        string
	N           int64
	K           int64
	LoadMs      float64
	FindMeanMs  float64
	FindP99Ms   float64
	HeapAllocMB float64
}

// RunInfo 单次压测运行的元信息，随 CSV 一起写出
type RunInfo struct {
	ID        string    `json:"id"`
	Stage     string    `json:"stage"`
	Started   time.Time `json:"started"`
	GoVersion string    `json:"go_version"`
	GOARCH    string    `json:"goarch"`
	NumCPU    int       `json:"num_cpu"`
	ScanImpl  string    `json:"scan_impl"`
	Seed      int64     `json:"seed"`
	Runs      int       `json:"runs"`
}

// NewRunInfo 生成带唯一 ID 的运行元信息
func NewRunInfo(stage, scanImpl string, seed int64, runs int) RunInfo {
	return RunInfo{
		ID:        uuid.NewString(),
		Stage:     stage,
		Started:   time.Now(),
		GoVersion: runtime.Version(),
		GOARCH:    runtime.GOARCH,
		NumCPU:    runtime.NumCPU(),
		ScanImpl:  scanImpl,
		Seed:      seed,
		Runs:      runs,
	}
}

// Percentile 计算切片中第 p 百分位（0-100），输入需已排序
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[len(sorted)-1]
	}
	idx := int(float64(len(sorted)-1) * p / 100)
	if idx < 0 {
		idx = 0
	}
	return sorted[idx]
}

// Median 计算已排序切片的中位数，偶数长度取中间两数均值
func Median(sorted []float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// LatencyStatsFromDurations 从耗时列表计算 min/max/mean/median/P95/P99
func LatencyStatsFromDurations(durations []time.Duration) LatencyStats {
	if len(durations) == 0 {
		return LatencyStats{}
	}
	ms := make([]float64, len(durations))
	var sum float64
	for i, d := range durations {
		ms[i] = float64(d.Nanoseconds()) / 1e6
		sum += ms[i]
	}
	sort.Float64s(ms)
	return LatencyStats{
		MinMs:    ms[0],
		MaxMs:    ms[len(ms)-1],
		MeanMs:   sum / float64(len(ms)),
		MedianMs: Median(ms),
		P95Ms:    Percentile(ms, 95),
		P99Ms:    Percentile(ms, 99),
		N:        len(ms),
	}
}

func f2(v float64) string { return strconv.FormatFloat(v, 'f', 3, 64) }
func i64(v int64) string  { return strconv.FormatInt(v, 10) }

// writeCSV 写入表头与数据行，自动创建目录
func writeCSV(path string, header []string, records [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	if err := w.WriteAll(records); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// WriteSweepCSV 写入阶段 A 报告
func WriteSweepCSV(rows []SweepRow, path string) error {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			strconv.Itoa(r.Fanout),
			strconv.Itoa(r.Threshold),
			strconv.FormatBool(r.Adaptive),
			i64(r.N),
			i64(r.K),
			f2(r.MeanMs),
			f2(r.P99Ms),
			i64(r.Ranges),
			i64(r.Scanned),
			strconv.Itoa(r.MaxDepth),
			f2(r.AllocKB),
		})
	}
	return writeCSV(path, []string{"Fanout", "Threshold", "Adaptive", "N", "K", "MeanMs", "P99Ms", "Ranges", "Scanned", "MaxDepth", "AllocKB"}, records)
}

// WriteScaleCSV 写入阶段 B 报告
func WriteScaleCSV(rows []ScaleRow, path string) error {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			r.Strategy,
			i64(r.N),
			i64(r.K),
			f2(r.MeanMs),
			f2(r.MedianMs),
			f2(r.P95Ms),
			strconv.FormatBool(r.Skipped),
		})
	}
	return writeCSV(path, []string{"Strategy", "N", "K", "MeanMs", "MedianMs", "P95Ms", "Skipped"}, records)
}

// WriteParallelCSV 写入阶段 C 报告
func WriteParallelCSV(rows []ParallelRow, path string) error {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			strconv.Itoa(r.Workers),
			i64(r.N),
			i64(r.K),
			f2(r.MeanMs),
			f2(r.P99Ms),
			f2(r.Speedup),
			strconv.Itoa(r.NumGoroutine),
		})
	}
	return writeCSV(path, []string{"Workers", "N", "K", "MeanMs", "P99Ms", "Speedup", "NumGoroutine"}, records)
}

// WriteStorageCSV 写入阶段 D 报告
func WriteStorageCSV(rows []StorageRow, path string) error {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			r.Mode,
			i64(r.N),
			i64(r.K),
			f2(r.LoadMs),
			f2(r.FindMeanMs),
			f2(r.FindP99Ms),
			f2(r.HeapAllocMB),
		})
	}
	return writeCSV(path, []string{"Mode", "N", "K", "LoadMs", "FindMeanMs", "FindP99Ms", "HeapAllocMB"}, records)
}

// ReportDir 报告输出目录
var ReportDir = "report"

// ReportPath 生成 report/ 目录下带日期的报告路径
func ReportPath(prefix, ext string) string {
	return filepath.Join(ReportDir, prefix+time.Now().Format("20060102")+ext)
}

// WriteJSON 写入 JSON 报告（通用）
func WriteJSON(v any, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
