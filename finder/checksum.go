package finder

// Checksums are kept modulo 2^64. A recovered value lies in [lo, hi], which fits
// in int64, so expected-minus-observed is exact whatever the width of the sums.

// rangeSum returns lo + (lo+1) + ... + hi modulo 2^64, for 0 <= lo <= hi.
func rangeSum(lo, hi int64) uint64 {
	n := uint64(hi) - uint64(lo) + 1
	s := uint64(lo) + uint64(hi)
	// n odd implies hi-lo even, so lo+hi is even
	if n%2 == 0 {
		return (n / 2) * s
	}
	return n * (s / 2)
}

// squaresTo returns 0² + 1² + ... + n² = n(n+1)(2n+1)/6 modulo 2^64, for n >= 0.
func squaresTo(n int64) uint64 {
	if n <= 0 {
		return 0
	}
	a, b, c := uint64(n), uint64(n)+1, 2*uint64(n)+1
	if a%2 == 0 {
		a /= 2
	} else {
		b /= 2
	}
	switch {
	case a%3 == 0:
		a /= 3
	case b%3 == 0:
		b /= 3
	default:
		c /= 3
	}
	return a * b * c
}

// rangeSquares returns lo² + ... + hi² modulo 2^64.
func rangeSquares(lo, hi int64) uint64 {
	return squaresTo(hi) - squaresTo(lo-1)
}

// xorTo returns 0 ^ 1 ^ ... ^ n, using the period-4 identity. xorTo(-1) == 0.
func xorTo(n int64) uint64 {
	if n < 0 {
		return 0
	}
	u := uint64(n)
	switch u % 4 {
	case 0:
		return u
	case 1:
		return 1
	case 2:
		return u + 1
	default:
		return 0
	}
}

// rangeXor returns lo ^ (lo+1) ^ ... ^ hi.
func rangeXor(lo, hi int64) uint64 {
	return xorTo(hi) ^ xorTo(lo-1)
}
