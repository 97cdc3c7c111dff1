package finder

import (
	"fmt"
	"log/slog"
)

// Recovery selects how a range with exactly one missing value is resolved.
type Recovery int

const (
	// RecoverySum derives the missing value from expected minus observed sum.
	RecoverySum Recovery = iota
	// RecoveryXor derives it from the xor of the range and the observed values.
	RecoveryXor
	// RecoveryNone disables checksum recovery (pure bisection down to the bitmap).
	RecoveryNone
)

func (r Recovery) String() string {
	switch r {
	case RecoverySum:
		return "sum"
	case RecoveryXor:
		return "xor"
	case RecoveryNone:
		return "none"
	default:
		return fmt.Sprintf("unknown(%d)", int(r))
	}
}

// ParseRecovery maps "sum", "xor" or "none" to a Recovery.
func ParseRecovery(s string) (Recovery, error) {
	switch s {
	case "sum", "":
		return RecoverySum, nil
	case "xor":
		return RecoveryXor, nil
	case "none":
		return RecoveryNone, nil
	}
	return RecoverySum, fmt.Errorf("unknown recovery %q", s)
}

const (
	// MaxFanout caps the number of sub-ranges per split.
	MaxFanout = 1 << 16
	// MaxBitmapThreshold caps the bitmap size (bits) a resolver may hold.
	MaxBitmapThreshold = 1 << 24
)

// Config holds finder parameters.
type Config struct {
	Fanout          int          // sub-ranges per split, default 128
	AdaptiveFanout  bool         // fanout = d + d/2 for a range missing d values, clamped to [2, MaxFanout]
	BitmapThreshold int          // ranges of at most this many values are resolved by bitmap, default 1024
	BucketCount     int          // buckets in the global counting pre-pass, 0 disables
	Recovery        Recovery     // single-miss recovery, default RecoverySum
	FilterLimit     int          // gather a range's elements into a subset when it holds at most this many, 0 disables
	Workers         int          // when >1, deficient buckets are resolved concurrently
	Verify          bool         // moment checks on recovery and result, double-mark checks in bitmaps; duplicates matching the misses in count, sum and sum of squares still pass
	Logger          *slog.Logger // optional, one debug line per call
}

// DefaultConfig returns the bucketed hybrid: one global counting pass, adaptive
// fanout inside deficient buckets, sum recovery and a 1024-bit bitmap.
func DefaultConfig() *Config {
	return &Config{
		Fanout:          128,
		AdaptiveFanout:  true,
		BitmapThreshold: 1024,
		BucketCount:     1024,
		Recovery:        RecoverySum,
		FilterLimit:     1 << 16,
		Verify:          true,
	}
}

// HalvingConfig is plain bisection: no pre-pass, no checksum, single-value bitmaps.
func HalvingConfig() *Config {
	return &Config{
		Fanout:          2,
		BitmapThreshold: 1,
		Recovery:        RecoveryNone,
		Verify:          true,
	}
}

// BisectConfig is bisection with sum recovery for single-miss ranges.
func BisectConfig() *Config {
	return &Config{
		Fanout:          2,
		BitmapThreshold: 1,
		Recovery:        RecoverySum,
		Verify:          true,
	}
}

// QuadConfig splits into quarters and resolves ranges of up to 32 values by bitmap.
func QuadConfig() *Config {
	return &Config{
		Fanout:          4,
		BitmapThreshold: 32,
		Recovery:        RecoverySum,
		Verify:          true,
	}
}

// WideConfig splits into 128 sub-ranges counted in one pass, with a 1024-bit bitmap.
func WideConfig() *Config {
	return &Config{
		Fanout:          128,
		BitmapThreshold: 1024,
		Recovery:        RecoverySum,
		Verify:          true,
	}
}

// BucketedConfig is the flat bucket scheme: one counting pass over 1000 buckets,
// sum recovery for single misses, and the bitmap sized to hold a whole bucket of n.
func BucketedConfig(n int64) *Config {
	const buckets = 1000
	t := (n + buckets - 1) / buckets
	if t < 1 {
		t = 1
	}
	if t > MaxBitmapThreshold {
		t = MaxBitmapThreshold
	}
	return &Config{
		Fanout:          128,
		BitmapThreshold: int(t),
		BucketCount:     buckets,
		Recovery:        RecoverySum,
		Verify:          true,
	}
}

// OrDefault returns DefaultConfig if c is nil, otherwise normalizes c.
func (c *Config) OrDefault() *Config {
	if c == nil {
		return DefaultConfig()
	}
	if c.Fanout < 2 {
		c.Fanout = 128
	}
	if c.Fanout > MaxFanout {
		c.Fanout = MaxFanout
	}
	if c.BitmapThreshold <= 0 {
		c.BitmapThreshold = 1024
	}
	if c.BitmapThreshold > MaxBitmapThreshold {
		c.BitmapThreshold = MaxBitmapThreshold
	}
	if c.BucketCount < 0 {
		c.BucketCount = 0
	}
	if c.FilterLimit < 0 {
		c.FilterLimit = 0
	}
	if c.Workers < 0 {
		c.Workers = 0
	}
	if c.Recovery < RecoverySum || c.Recovery > RecoveryNone {
		c.Recovery = RecoverySum
	}
	return c
}

// fanoutFor returns the split width for a range missing deficit values.
func (c *Config) fanoutFor(deficit int64) int64 {
	if !c.AdaptiveFanout {
		return int64(c.Fanout)
	}
	f := deficit + deficit/2
	if f < 2 {
		f = 2
	}
	if f > MaxFanout {
		f = MaxFanout
	}
	return f
}
