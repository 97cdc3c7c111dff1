// Package scan provides AVX2 and NEON accelerated range scans over int64 slices:
// counting, summing and xor-folding the elements that fall inside [lo, hi].
// Automatically selects the best implementation based on GOARCH and CGO availability.
//
// Sums and xors are accumulated in uint64 and wrap modulo 2^64.
package scan

var (
	countImpl func(data []int64, lo, hi int64) int
	sumImpl   func(data []int64, lo, hi int64) uint64
	xorImpl   func(data []int64, lo, hi int64) uint64
	implDesc  string
)

func init() {
	// Default; dispatch files override in init() based on GOARCH and CGO.
	if countImpl == nil {
		countImpl = countGo
		sumImpl = sumGo
		xorImpl = xorGo
		implDesc = "Go"
	}
}

// CountInRange returns how many elements of data satisfy lo <= x <= hi.
// Returns 0 when lo > hi.
func CountInRange(data []int64, lo, hi int64) int {
	if lo > hi || len(data) == 0 {
		return 0
	}
	return countImpl(data, lo, hi)
}

// SumInRange returns the sum, modulo 2^64, of the elements of data inside [lo, hi].
func SumInRange(data []int64, lo, hi int64) uint64 {
	if lo > hi || len(data) == 0 {
		return 0
	}
	return sumImpl(data, lo, hi)
}

// XorInRange returns the xor of the elements of data inside [lo, hi].
func XorInRange(data []int64, lo, hi int64) uint64 {
	if lo > hi || len(data) == 0 {
		return 0
	}
	return xorImpl(data, lo, hi)
}

// Desc returns a description of the selected implementation (for logging).
func Desc() string {
	if implDesc != "" {
		return implDesc
	}
	return "Go"
}

// inRange is the single-compare range test: x in [lo, hi] iff x-lo <= hi-lo as unsigned.
func inRange(x, lo int64, span uint64) bool {
	return uint64(x)-uint64(lo) <= span
}

// countGo is the pure Go implementation (4-way unroll, independent accumulators).
func countGo(data []int64, lo, hi int64) int {
	span := uint64(hi) - uint64(lo)
	var c0, c1, c2, c3 int
	i := 0
	for ; i+4 <= len(data); i += 4 {
		if inRange(data[i+0], lo, span) {
			c0++
		}
		if inRange(data[i+1], lo, span) {
			c1++
		}
		if inRange(data[i+2], lo, span) {
			c2++
		}
		if inRange(data[i+3], lo, span) {
			c3++
		}
	}
	for ; i < len(data); i++ {
		if inRange(data[i], lo, span) {
			c0++
		}
	}
	return c0 + c1 + c2 + c3
}

func sumGo(data []int64, lo, hi int64) uint64 {
	span := uint64(hi) - uint64(lo)
	var sum uint64
	for _, x := range data {
		if inRange(x, lo, span) {
			sum += uint64(x)
		}
	}
	return sum
}

func xorGo(data []int64, lo, hi int64) uint64 {
	span := uint64(hi) - uint64(lo)
	var acc uint64
	for _, x := range data {
		if inRange(x, lo, span) {
			acc ^= uint64(x)
		}
	}
	return acc
}
