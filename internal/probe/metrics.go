package probe

import (
	"time"

	"github.com/rileyhilliard/solprobe/internal/rpc"
)

// TPS is numTransactions / samplePeriodSecs. ok is false when the sample
// period is zero.
func TPS(s rpc.PerformanceSample) (tps float64, ok bool) {
	if s.SamplePeriodSecs == 0 {
		return 0, false
	}
	return float64(s.NumTransactions) / float64(s.SamplePeriodSecs), true
}

// AvgBlockTime is samplePeriodSecs / numSlots in seconds. ok is false when
// the sample covers no slots.
func AvgBlockTime(s rpc.PerformanceSample) (secs float64, ok bool) {
	if s.NumSlots == 0 {
		return 0, false
	}
	return float64(s.SamplePeriodSecs) / float64(s.NumSlots), true
}

// VersionMismatch reports whether the node runs something other than the
// expected release. An unknown version is not a mismatch.
func VersionMismatch(reported *string, expected string) bool {
	if reported == nil {
		return false
	}
	return *reported != expected
}

// HighLatency is true when a round trip took strictly longer than threshold.
func HighLatency(elapsed, threshold time.Duration) bool {
	return elapsed > threshold
}

// Congested is true when tps is strictly above threshold.
func Congested(tps, threshold float64) bool {
	return tps > threshold
}

// blockRangeStart returns slot - window, saturating at zero.
func blockRangeStart(slot, window uint64) uint64 {
	if window >= slot {
		return 0
	}
	return slot - window
}
