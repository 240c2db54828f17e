package poolmetrics

import (
	"os"

	"github.com/shirou/gopsutil/v3/process"
)

// SampleRSS reads this process's current resident set size and publishes it
// to ProcessRSS. Intended to be called around pool growth events when
// ObservabilityConfig.EnableRSSSampling is set; cheap enough to call on
// every growth but not on every Take/Put.
func SampleRSS() (uint64, error) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return 0, err
	}

	info, err := proc.MemoryInfo()
	if err != nil {
		return 0, err
	}

	ProcessRSS.Set(float64(info.RSS))
	return info.RSS, nil
}
