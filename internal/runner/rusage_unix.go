//go:build !windows

package runner

import (
	"os"
	"runtime"
	"syscall"
)

// peakRSSMegabytes extracts the peak resident set size from the
// process's rusage. Linux reports Maxrss in kilobytes, Darwin in bytes.
func peakRSSMegabytes(state *os.ProcessState) float64 {
	if state == nil {
		return 0
	}
	rusage, ok := state.SysUsage().(*syscall.Rusage)
	if !ok || rusage == nil {
		return 0
	}
	maxrss := float64(rusage.Maxrss)
	if runtime.GOOS == "darwin" {
		return maxrss / (1024 * 1024)
	}
	return maxrss / 1024
}
