// Package metrics 提供运行时指标采集与压测报告
package metrics

import (
	"runtime"
	"runtime/debug"
	"time"
)

// Snapshot 运行时指标快照
type Snapshot struct {
	TS           time.Time
	HeapAlloc    uint64
	HeapSys      uint64
	TotalAlloc   uint64
	Mallocs      uint64
	NumGC        uint32
	NumGoroutine int
}

// Take 采集当前运行时指标
func Take() Snapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return Snapshot{
		TS:           time.Now(),
		HeapAlloc:    m.HeapAlloc,
		HeapSys:      m.HeapSys,
		TotalAlloc:   m.TotalAlloc,
		Mallocs:      m.Mallocs,
		NumGC:        m.NumGC,
		NumGoroutine: runtime.NumGoroutine(),
	}
}

// GC 触发 GC 并释放回 OS
func GC() {
	runtime.GC()
	debug.FreeOSMemory()
}

// Delta 两次快照之间的分配量
type Delta struct {
	AllocBytes uint64
	Mallocs    uint64
	GCs        uint32
}

// Diff 计算两次快照间的累计分配字节数、分配次数和 GC 次数差
func Diff(before, after Snapshot) Delta {
	var d Delta
	if after.TotalAlloc >= before.TotalAlloc {
		d.AllocBytes = after.TotalAlloc - before.TotalAlloc
	}
	if after.Mallocs >= before.Mallocs {
		d.Mallocs = after.Mallocs - before.Mallocs
	}
	if after.NumGC >= before.NumGC {
		d.GCs = after.NumGC - before.NumGC
	}
	return d
}
