//go:build arm64 && cgo

package scan

/*
#cgo CFLAGS: -O3
#include <arm_neon.h>
#include <stdint.h>
#include <stddef.h>

static int64_t CountInRangeNEON(const uint64_t* p, size_t n, uint64_t lo, uint64_t hi) {
	const uint64_t span = hi - lo;
	const uint64x2_t vlo = vdupq_n_u64(lo);
	const uint64x2_t vspan = vdupq_n_u64(span);
	uint64x2_t acc = vdupq_n_u64(0);
	size_t i = 0;
	for (; i + 2 <= n; i += 2) {
		uint64x2_t v = vld1q_u64(p + i);
		// in-range lanes are all ones, subtracting adds one
		acc = vsubq_u64(acc, vcleq_u64(vsubq_u64(v, vlo), vspan));
	}
	int64_t c = (int64_t)(vgetq_lane_u64(acc, 0) + vgetq_lane_u64(acc, 1));
	for (; i < n; i++) {
		if (p[i] - lo <= span) c++;
	}
	return c;
}

static uint64_t SumInRangeNEON(const uint64_t* p, size_t n, uint64_t lo, uint64_t hi) {
	const uint64_t span = hi - lo;
	const uint64x2_t vlo = vdupq_n_u64(lo);
	const uint64x2_t vspan = vdupq_n_u64(span);
	uint64x2_t acc = vdupq_n_u64(0);
	size_t i = 0;
	for (; i + 2 <= n; i += 2) {
		uint64x2_t v = vld1q_u64(p + i);
		uint64x2_t in = vcleq_u64(vsubq_u64(v, vlo), vspan);
		acc = vaddq_u64(acc, vandq_u64(v, in));
	}
	uint64_t s = vgetq_lane_u64(acc, 0) + vgetq_lane_u64(acc, 1);
	for (; i < n; i++) {
		if (p[i] - lo <= span) s += p[i];
	}
	return s;
}

static uint64_t XorInRangeNEON(const uint64_t* p, size_t n, uint64_t lo, uint64_t hi) {
	const uint64_t span = hi - lo;
	const uint64x2_t vlo = vdupq_n_u64(lo);
	const uint64x2_t vspan = vdupq_n_u64(span);
	uint64x2_t acc = vdupq_n_u64(0);
	size_t i = 0;
	for (; i + 2 <= n; i += 2) {
		uint64x2_t v = vld1q_u64(p + i);
		uint64x2_t in = vcleq_u64(vsubq_u64(v, vlo), vspan);
		acc = veorq_u64(acc, vandq_u64(v, in));
	}
	uint64_t x = vgetq_lane_u64(acc, 0) ^ vgetq_lane_u64(acc, 1);
	for (; i < n; i++) {
		if (p[i] - lo <= span) x ^= p[i];
	}
	return x;
}
*/
import "C"

import "unsafe"

func countNEON(data []int64, lo, hi int64) int {
	n := len(data)
	if n == 0 {
		return 0
	}
	return int(C.CountInRangeNEON(
		(*C.uint64_t)(unsafe.Pointer(&data[0])),
		C.size_t(n),
		C.uint64_t(uint64(lo)),
		C.uint64_t(uint64(hi)),
	))
}

func sumNEON(data []int64, lo, hi int64) uint64 {
	n := len(data)
	if n == 0 {
		return 0
	}
	return uint64(C.SumInRangeNEON(
		(*C.uint64_t)(unsafe.Pointer(&data[0])),
		C.size_t(n),
		C.uint64_t(uint64(lo)),
		C.uint64_t(uint64(hi)),
	))
}

func xorNEON(data []int64, lo, hi int64) uint64 {
	n := len(data)
	if n == 0 {
		return 0
	}
	return uint64(C.XorInRangeNEON(
		(*C.uint64_t)(unsafe.Pointer(&data[0])),
		C.size_t(n),
		C.uint64_t(uint64(lo)),
		C.uint64_t(uint64(hi)),
	))
}
