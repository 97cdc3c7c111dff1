package scan

// Moments holds the power sums of the elements inside a range, all modulo 2^64.
type Moments struct {
	Count int
	Sum   uint64
	SumSq uint64
	Xor   uint64
}

// MomentsInRange computes count, sum, sum of squares and xor of the elements of
// data inside [lo, hi] in a single pass. Pure Go: 64-bit lane multiplies need
// AVX-512DQ, which the dispatch does not target.
func MomentsInRange(data []int64, lo, hi int64) Moments {
	var m Moments
	if lo > hi {
		return m
	}
	span := uint64(hi) - uint64(lo)
	for _, x := range data {
		if !inRange(x, lo, span) {
			continue
		}
		u := uint64(x)
		m.Count++
		m.Sum += u
		m.SumSq += u * u
		m.Xor ^= u
	}
	return m
}
