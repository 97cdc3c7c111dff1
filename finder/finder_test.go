package finder

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// instance builds a shuffled present array for [0, n) with k distinct values
// removed, and returns it with the sorted missing values.
func instance(n, k int64, seed int64) (present, missing []int64) {
	rng := rand.New(rand.NewSource(seed))
	gone := make(map[int64]struct{}, k)
	for int64(len(gone)) < k {
		gone[rng.Int63n(n)] = struct{}{}
	}
	present = make([]int64, 0, n-k)
	missing = make([]int64, 0, k)
	for i := int64(0); i < n; i++ {
		if _, ok := gone[i]; ok {
			missing = append(missing, i)
			continue
		}
		present = append(present, i)
	}
	rng.Shuffle(len(present), func(i, j int) { present[i], present[j] = present[j], present[i] })
	return present, missing
}

func without(n int64, gone ...int64) []int64 {
	out := make([]int64, 0, n)
	for i := int64(0); i < n; i++ {
		if !slices.Contains(gone, i) {
			out = append(out, i)
		}
	}
	return out
}

type namedConfig struct {
	name string
	cfg  func() *Config
}

func presets() []namedConfig {
	return []namedConfig{
		{"default", DefaultConfig},
		{"halving", HalvingConfig},
		{"bisect", BisectConfig},
		{"quad", QuadConfig},
		{"wide", WideConfig},
		{"bucketed", func() *Config { return BucketedConfig(20000) }},
		{"xor", func() *Config {
			c := DefaultConfig()
			c.Recovery = RecoveryXor
			return c
		}},
		{"no-recovery", func() *Config {
			c := DefaultConfig()
			c.Recovery = RecoveryNone
			return c
		}},
		{"no-verify", func() *Config {
			c := DefaultConfig()
			c.Verify = false
			return c
		}},
		{"fixed-fanout", func() *Config {
			c := DefaultConfig()
			c.AdaptiveFanout = false
			c.Fanout = 3
			c.BitmapThreshold = 8
			return c
		}},
		{"no-filter", func() *Config {
			c := WideConfig()
			c.FilterLimit = 0
			return c
		}},
		{"workers", func() *Config {
			c := DefaultConfig()
			c.BucketCount = 64
			c.BitmapThreshold = 16
			c.Workers = 4
			return c
		}},
	}
}

func TestFindMissing_SingleMissByChecksum(t *testing.T) {
	out, err := FindMissing(10, []int64{0, 1, 2, 3, 5, 6, 7, 8, 9})
	require.NoError(t, err)
	assert.Equal(t, []int64{4}, out)
}

func TestFindMissing_SmallRangeBitmap(t *testing.T) {
	present := without(20, 2, 7, 11, 16, 19)
	rand.New(rand.NewSource(1)).Shuffle(len(present), func(i, j int) { present[i], present[j] = present[j], present[i] })
	for _, p := range presets() {
		t.Run(p.name, func(t *testing.T) {
			out, err := New(p.cfg()).Find(20, present)
			require.NoError(t, err)
			assert.Equal(t, []int64{2, 7, 11, 16, 19}, out)
		})
	}
}

func TestFindMissing_Boundaries(t *testing.T) {
	for _, p := range presets() {
		t.Run(p.name, func(t *testing.T) {
			f := New(p.cfg())

			out, err := f.Find(1000, without(1000))
			require.NoError(t, err)
			assert.Empty(t, out, "K=0")

			out, err = f.Find(300, nil)
			require.NoError(t, err)
			require.Len(t, out, 300, "K=N")
			for i, v := range out {
				assert.Equal(t, int64(i), v)
			}

			out, err = f.Find(1, []int64{})
			require.NoError(t, err)
			assert.Equal(t, []int64{0}, out, "N=1 K=1")

			out, err = f.Find(1, []int64{0})
			require.NoError(t, err)
			assert.Empty(t, out, "N=1 K=0")

			out, err = f.Find(5000, without(5000, 0, 4999))
			require.NoError(t, err)
			assert.Equal(t, []int64{0, 4999}, out, "domain edges")
		})
	}
}

func TestFindMissing_AgreesWithReference(t *testing.T) {
	cases := []struct {
		n, k int64
	}{
		{2, 1}, {64, 3}, {1000, 1}, {1000, 999}, {5000, 5}, {5000, 100}, {5000, 2500}, {20000, 10}, {20000, 250},
	}
	for _, p := range presets() {
		t.Run(p.name, func(t *testing.T) {
			f := New(p.cfg())
			for i, c := range cases {
				present, missing := instance(c.n, c.k, int64(i)+100)
				ref, err := FindReference(c.n, present)
				require.NoError(t, err)
				require.Equal(t, missing, ref)

				out, err := f.Find(c.n, present)
				require.NoError(t, err, "n=%d k=%d", c.n, c.k)
				assert.Equal(t, ref, out, "n=%d k=%d", c.n, c.k)
			}
		})
	}
}

func TestFindMissing_LargeSparse(t *testing.T) {
	present, missing := instance(1_000_000, 250, 9)
	for _, workers := range []int{0, 1, 4} {
		cfg := DefaultConfig()
		cfg.Workers = workers
		out, stats, err := New(cfg).FindWithStats(1_000_000, present)
		require.NoError(t, err)
		assert.Equal(t, missing, out)
		assert.Equal(t, 1024, stats.Buckets)
		assert.Positive(t, stats.FullRanges)
		assert.Positive(t, stats.ElementsScanned)
	}
}

func TestFindMissing_Idempotent(t *testing.T) {
	present, _ := instance(50000, 40, 3)
	before := slices.Clone(present)
	f := New(nil)
	a, err := f.Find(50000, present)
	require.NoError(t, err)
	b, err := f.Find(50000, present)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, before, present, "present must not be modified")
	assert.True(t, slices.IsSorted(a))
}

func TestFindMissing_InvalidDomain(t *testing.T) {
	_, err := FindMissing(0, nil)
	assert.ErrorIs(t, err, ErrInvalidDomain)
	_, err = FindMissing(-5, nil)
	assert.ErrorIs(t, err, ErrInvalidDomain)
	_, err = FindMissing(2, []int64{0, 1, 1})
	assert.ErrorIs(t, err, ErrInvalidDomain)
	_, err = FindReference(0, nil)
	assert.ErrorIs(t, err, ErrInvalidDomain)
}

func TestFindMissing_Duplicate(t *testing.T) {
	// 1 and 9 are absent but 0 appears twice, so the counts claim one miss
	present := []int64{0, 0, 2, 3, 4, 5, 6, 7, 8}
	for _, p := range presets() {
		t.Run(p.name, func(t *testing.T) {
			cfg := p.cfg()
			cfg.Verify = true
			_, err := New(cfg).Find(10, present)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInputIntegrity)
			var re *RangeError
			assert.True(t, errors.As(err, &re))
		})
	}
	_, err := FindReference(10, present)
	assert.ErrorIs(t, err, ErrInputIntegrity)
}

func TestFindMissing_DuplicateInLargeDomain(t *testing.T) {
	present, _ := instance(100000, 20, 5)
	present[10] = present[11]
	for _, p := range presets() {
		t.Run(p.name, func(t *testing.T) {
			cfg := p.cfg()
			cfg.Verify = true
			_, err := New(cfg).Find(100000, present)
			assert.ErrorIs(t, err, ErrInputIntegrity)
		})
	}
}

func TestFindMissing_OverfullBucket(t *testing.T) {
	// 7 doubled in a bucket with no misses, the misses sit elsewhere
	present := append(without(10000, 5000, 5001), 7)
	check := func(t *testing.T, cfg *Config) {
		cfg.Verify = true
		_, err := New(cfg).Find(10000, present)
		require.ErrorIs(t, err, ErrInputIntegrity)
		var re *RangeError
		require.ErrorAs(t, err, &re)
		assert.LessOrEqual(t, re.Lo, int64(7))
		assert.GreaterOrEqual(t, re.Hi, int64(7))
	}
	for _, p := range presets() {
		t.Run(p.name, func(t *testing.T) { check(t, p.cfg()) })
	}
	for _, workers := range []int{2, 4, 8} {
		t.Run(fmt.Sprintf("default-workers-%d", workers), func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Workers = workers
			check(t, cfg)
		})
		t.Run(fmt.Sprintf("no-verify-workers-%d", workers), func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Workers = workers
			cfg.Verify = false
			_, err := New(cfg).Find(10000, present)
			assert.ErrorIs(t, err, ErrInputIntegrity)
		})
	}
}

func TestFindMissing_BalancedDuplicates(t *testing.T) {
	// 1, 5 and 6 absent; 2, 3 and 7 doubled: count, sum and sum of squares all match
	present := []int64{0, 2, 2, 3, 3, 4, 7, 7, 8, 9}
	out, err := FindMissing(10, present)
	require.NoError(t, err)
	assert.Empty(t, out)

	_, err = FindReference(10, present)
	assert.ErrorIs(t, err, ErrInputIntegrity)
}

func TestFindMissing_OutOfRange(t *testing.T) {
	for _, bad := range []int64{10, 1 << 40, -1} {
		present := append(without(10, 3, 4), bad)
		for _, p := range presets() {
			_, err := New(p.cfg()).Find(10, present)
			assert.ErrorIs(t, err, ErrInputIntegrity, "%s value %d", p.name, bad)
		}
		_, err := FindReference(10, present)
		assert.ErrorIs(t, err, ErrInputIntegrity)
	}

	// bucketed pre-pass
	cfg := DefaultConfig()
	cfg.BucketCount = 8
	cfg.BitmapThreshold = 16
	present := append(without(1000, 1, 2, 3), 5000)
	_, err := New(cfg).Find(1000, present)
	assert.ErrorIs(t, err, ErrInputIntegrity)
}

func TestFindMissing_CountExceedsRange(t *testing.T) {
	// 5 repeated, 9 and 10 absent: [0, 5] holds 7 values
	present := []int64{0, 1, 2, 3, 4, 5, 5, 6, 7, 8}
	cfg := HalvingConfig()
	_, err := New(cfg).Find(11, present)
	require.ErrorIs(t, err, ErrInputIntegrity)
	var re *RangeError
	require.ErrorAs(t, err, &re)
	assert.LessOrEqual(t, re.Lo, int64(5))
	assert.GreaterOrEqual(t, re.Hi, int64(5))
}

func TestFindWithStats_Outcomes(t *testing.T) {
	// 7 is the only miss; the root recovers it by checksum
	_, stats, err := New(WideConfig()).FindWithStats(100000, without(100000, 7))
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.ChecksumRecoveries)
	assert.Equal(t, int64(0), stats.Subdivisions)

	// two misses far apart: one split, two recoveries, the rest full
	_, stats, err = New(WideConfig()).FindWithStats(100000, without(100000, 7, 99999))
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Subdivisions)
	assert.Equal(t, int64(2), stats.ChecksumRecoveries)
	assert.Equal(t, int64(126), stats.FullRanges)
	assert.Equal(t, 1, stats.MaxDepth)
	assert.Equal(t, int64(129), stats.Ranges())
	assert.Equal(t, 0, stats.BitmapBytes, "no range used the bitmap")

	// fits under the threshold: one bitmap of 1024 bits
	_, stats, err = New(WideConfig()).FindWithStats(1000, without(1000, 3, 500))
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.BitmapResolves)
	assert.Equal(t, 128, stats.BitmapBytes)
}

func TestFindWithStats_BitmapBytesPerWorker(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BucketCount = 64
	cfg.BitmapThreshold = 16
	cfg.Workers = 4
	out, stats, err := New(cfg).FindWithStats(1000, without(1000, 3, 4, 100, 200, 300, 400, 500))
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 4, 100, 200, 300, 400, 500}, out)
	require.Positive(t, stats.BitmapResolves)
	assert.Equal(t, 4, stats.Workers)
	assert.Equal(t, 4*8, stats.BitmapBytes)
}

func TestFindWithStats_Gather(t *testing.T) {
	present, missing := instance(200000, 300, 11)
	cfg := WideConfig()
	cfg.FilterLimit = 5000
	out, stats, err := New(cfg).FindWithStats(200000, present)
	require.NoError(t, err)
	assert.Equal(t, missing, out)
	assert.Positive(t, stats.Gathers)
}
