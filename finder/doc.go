// Package finder locates the values missing from an almost complete integer domain.
//
// Given [0, N) and an array holding every value of the domain except K of them,
// the finder returns the K missing values in ascending order. It partitions the
// domain recursively, counting elements per sub-range, recovers a lone missing
// value from an arithmetic checksum, and falls back to a small reusable bitmap
// (at most BitmapThreshold bits) for residual ranges. Extra memory stays
// independent of N.
//
// Quick start:
//
//	missing, err := finder.FindMissing(n, present)
//
//	cfg := finder.DefaultConfig()
//	cfg.Workers = runtime.NumCPU()
//	missing, stats, err := finder.New(cfg).FindWithStats(n, present)
//
// Presets (HalvingConfig, QuadConfig, WideConfig, BucketedConfig) reproduce the
// classic variants of the algorithm; FindReference, FindBruteForce and
// FindHashAssisted are the non-recursive baselines.
package finder
