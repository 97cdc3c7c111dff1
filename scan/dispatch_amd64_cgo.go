//go:build amd64 && cgo

package scan

import "golang.org/x/sys/cpu"

func init() {
	if cpu.X86.HasAVX2 {
		countImpl = countAVX2
		sumImpl = sumAVX2
		xorImpl = xorAVX2
		implDesc = "AVX2"
	} else {
		countImpl = countGo
		sumImpl = sumGo
		xorImpl = xorGo
		implDesc = "Go"
	}
}
