package scan

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

type naiveResult struct {
	count int
	sum   uint64
	sumSq uint64
	xor   uint64
}

func naive(data []int64, lo, hi int64) naiveResult {
	var r naiveResult
	for _, x := range data {
		if lo <= x && x <= hi {
			r.count++
			r.sum += uint64(x)
			r.sumSq += uint64(x) * uint64(x)
			r.xor ^= uint64(x)
		}
	}
	return r
}

func randomInts(n int, limit int64, seed int64) []int64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]int64, n)
	for i := range out {
		out[i] = rng.Int63n(limit)
	}
	return out
}

func TestScan_MatchesNaive(t *testing.T) {
	for n := 0; n <= 37; n++ {
		data := randomInts(n, 100, int64(n))
		for _, r := range [][2]int64{{0, 99}, {10, 20}, {50, 50}, {-5, 3}, {98, 200}, {101, 300}} {
			want := naive(data, r[0], r[1])
			require.Equal(t, want.count, CountInRange(data, r[0], r[1]), "count n=%d range=%v", n, r)
			require.Equal(t, want.sum, SumInRange(data, r[0], r[1]), "sum n=%d range=%v", n, r)
			require.Equal(t, want.xor, XorInRange(data, r[0], r[1]), "xor n=%d range=%v", n, r)

			m := MomentsInRange(data, r[0], r[1])
			require.Equal(t, want.count, m.Count)
			require.Equal(t, want.sum, m.Sum)
			require.Equal(t, want.sumSq, m.SumSq)
			require.Equal(t, want.xor, m.Xor)
		}
	}
}

func TestScan_DispatchMatchesGo(t *testing.T) {
	data := randomInts(10_003, 1_000_000, 42)
	for i := 0; i < 50; i++ {
		lo := data[i]
		hi := lo + int64(i*i*37)
		require.Equal(t, countGo(data, lo, hi), CountInRange(data, lo, hi))
		require.Equal(t, sumGo(data, lo, hi), SumInRange(data, lo, hi))
		require.Equal(t, xorGo(data, lo, hi), XorInRange(data, lo, hi))
	}
}

func TestScan_ExtremeValues(t *testing.T) {
	data := []int64{math.MinInt64, -1, 0, 1, math.MaxInt64 - 1, math.MaxInt64, 7, 8, 9}
	cases := [][2]int64{
		{math.MinInt64, math.MaxInt64},
		{0, math.MaxInt64},
		{math.MaxInt64 - 1, math.MaxInt64},
		{math.MinInt64, -1},
		{-1, 1},
	}
	for _, r := range cases {
		want := naive(data, r[0], r[1])
		require.Equal(t, want.count, CountInRange(data, r[0], r[1]), "range=%v", r)
		require.Equal(t, want.sum, SumInRange(data, r[0], r[1]), "range=%v", r)
		require.Equal(t, want.xor, XorInRange(data, r[0], r[1]), "range=%v", r)
	}
}

func TestScan_EmptyRange(t *testing.T) {
	data := []int64{1, 2, 3}
	require.Zero(t, CountInRange(data, 3, 2))
	require.Zero(t, SumInRange(data, 3, 2))
	require.Zero(t, XorInRange(data, 3, 2))
	require.Zero(t, MomentsInRange(data, 3, 2).Count)
	require.Zero(t, CountInRange(nil, 0, 10))
}

func TestDesc(t *testing.T) {
	require.NotEmpty(t, Desc())
	t.Logf("scan implementation: %s", Desc())
}
