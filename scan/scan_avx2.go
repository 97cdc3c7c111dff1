//go:build amd64 && cgo

package scan

/*
#cgo CFLAGS: -mavx2 -O3
#include <immintrin.h>
#include <stdint.h>
#include <stddef.h>

#define SIGN_BIT 0x8000000000000000ULL

// out_of_range returns all-ones lanes where v is outside [lo, lo+span].
// AVX2 only has a signed 64-bit compare, so both sides get their sign bit flipped.
static inline __m256i out_of_range(__m256i v, __m256i vlo, __m256i vspan, __m256i sign) {
	__m256i d = _mm256_xor_si256(_mm256_sub_epi64(v, vlo), sign);
	return _mm256_cmpgt_epi64(d, vspan);
}

static uint64_t hsum_epi64(__m256i v) {
	uint64_t t[4];
	_mm256_storeu_si256((__m256i*)t, v);
	return t[0] + t[1] + t[2] + t[3];
}

static uint64_t hxor_epi64(__m256i v) {
	uint64_t t[4];
	_mm256_storeu_si256((__m256i*)t, v);
	return t[0] ^ t[1] ^ t[2] ^ t[3];
}

static int64_t CountInRangeAVX2(const uint64_t* p, size_t n, uint64_t lo, uint64_t hi) {
	const uint64_t span = hi - lo;
	const __m256i sign = _mm256_set1_epi64x((long long)SIGN_BIT);
	const __m256i vlo = _mm256_set1_epi64x((long long)lo);
	const __m256i vspan = _mm256_set1_epi64x((long long)(span ^ SIGN_BIT));
	__m256i outs = _mm256_setzero_si256();
	size_t i = 0;
	for (; i + 4 <= n; i += 4) {
		__m256i v = _mm256_loadu_si256((const __m256i*)(p + i));
		outs = _mm256_sub_epi64(outs, out_of_range(v, vlo, vspan, sign));
	}
	int64_t c = (int64_t)i - (int64_t)hsum_epi64(outs);
	for (; i < n; i++) {
		if (p[i] - lo <= span) c++;
	}
	return c;
}

static uint64_t SumInRangeAVX2(const uint64_t* p, size_t n, uint64_t lo, uint64_t hi) {
	const uint64_t span = hi - lo;
	const __m256i sign = _mm256_set1_epi64x((long long)SIGN_BIT);
	const __m256i vlo = _mm256_set1_epi64x((long long)lo);
	const __m256i vspan = _mm256_set1_epi64x((long long)(span ^ SIGN_BIT));
	__m256i acc = _mm256_setzero_si256();
	size_t i = 0;
	for (; i + 4 <= n; i += 4) {
		__m256i v = _mm256_loadu_si256((const __m256i*)(p + i));
		acc = _mm256_add_epi64(acc, _mm256_andnot_si256(out_of_range(v, vlo, vspan, sign), v));
	}
	uint64_t s = hsum_epi64(acc);
	for (; i < n; i++) {
		if (p[i] - lo <= span) s += p[i];
	}
	return s;
}

static uint64_t XorInRangeAVX2(const uint64_t* p, size_t n, uint64_t lo, uint64_t hi) {
	const uint64_t span = hi - lo;
	const __m256i sign = _mm256_set1_epi64x((long long)SIGN_BIT);
	const __m256i vlo = _mm256_set1_epi64x((long long)lo);
	const __m256i vspan = _mm256_set1_epi64x((long long)(span ^ SIGN_BIT));
	__m256i acc = _mm256_setzero_si256();
	size_t i = 0;
	for (; i + 4 <= n; i += 4) {
		__m256i v = _mm256_loadu_si256((const __m256i*)(p + i));
		acc = _mm256_xor_si256(acc, _mm256_andnot_si256(out_of_range(v, vlo, vspan, sign), v));
	}
	uint64_t x = hxor_epi64(acc);
	for (; i < n; i++) {
		if (p[i] - lo <= span) x ^= p[i];
	}
	return x;
}
*/
import "C"

import "unsafe"

func countAVX2(data []int64, lo, hi int64) int {
	n := len(data)
	if n == 0 {
		return 0
	}
	return int(C.CountInRangeAVX2(
		(*C.uint64_t)(unsafe.Pointer(&data[0])),
		C.size_t(n),
		C.uint64_t(uint64(lo)),
		C.uint64_t(uint64(hi)),
	))
}

func sumAVX2(data []int64, lo, hi int64) uint64 {
	n := len(data)
	if n == 0 {
		return 0
	}
	return uint64(C.SumInRangeAVX2(
		(*C.uint64_t)(unsafe.Pointer(&data[0])),
		C.size_t(n),
		C.uint64_t(uint64(lo)),
		C.uint64_t(uint64(hi)),
	))
}

func xorAVX2(data []int64, lo, hi int64) uint64 {
	n := len(data)
	if n == 0 {
		return 0
	}
	return uint64(C.XorInRangeAVX2(
		(*C.uint64_t)(unsafe.Pointer(&data[0])),
		C.size_t(n),
		C.uint64_t(uint64(lo)),
		C.uint64_t(uint64(hi)),
	))
}
