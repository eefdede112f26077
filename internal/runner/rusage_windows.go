//go:build windows

package runner

import "os"

// peakRSSMegabytes is unavailable on Windows; measurement reports 0.
func peakRSSMegabytes(state *os.ProcessState) float64 {
	return 0
}
