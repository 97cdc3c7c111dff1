//go:build amd64 && cgo

package scan

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sys/cpu"
)

func TestCountInRange_AVX2(t *testing.T) {
	if !cpu.X86.HasAVX2 {
		t.Skip("AVX2 not available")
	}
	data := randomInts(1023, 500, 7)
	require.Equal(t, countGo(data, 100, 300), countAVX2(data, 100, 300))
	require.Equal(t, sumGo(data, 100, 300), sumAVX2(data, 100, 300))
	require.Equal(t, xorGo(data, 100, 300), xorAVX2(data, 100, 300))
}

func BenchmarkCountInRange_AVX2(b *testing.B) {
	if !cpu.X86.HasAVX2 {
		b.Skip("AVX2 not available")
	}
	data := initBenchData()
	b.SetBytes(benchLen * 8)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = countAVX2(data, benchLen/4, benchLen/2)
	}
}
