package logger

import "runtime"

// LogMemStatsOnce 记录一次内存使用统计
func LogMemStatsOnce() {
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)

	Info("内存使用统计",
		"alloc_mb", stats.Alloc/1024/1024,
		"sys_mb", stats.Sys/1024/1024,
		"heap_alloc_mb", stats.HeapAlloc/1024/1024,
		"heap_sys_mb", stats.HeapSys/1024/1024,
		"num_gc", stats.NumGC)
}
