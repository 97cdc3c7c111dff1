//go:build arm64 && cgo

package scan

import "golang.org/x/sys/cpu"

func init() {
	if cpu.ARM64.HasASIMD {
		countImpl = countNEON
		sumImpl = sumNEON
		xorImpl = xorNEON
		implDesc = "NEON"
	} else {
		countImpl = countGo
		sumImpl = sumGo
		xorImpl = xorGo
		implDesc = "Go"
	}
}
