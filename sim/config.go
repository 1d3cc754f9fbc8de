package sim

// DefaultMaxSampleRetries bounds the negative-duration resample loop.
const DefaultMaxSampleRetries = 100

// Config groups the run parameters of one playout.
type Config struct {
	// NumCases is the number of synthetic cases to generate.
	NumCases int

	// CaseArrivalRatio is the mean inter-case arrival time: the i-th case
	// starts at StartTime + i * CaseArrivalRatio. Supplied by the caller
	// or estimated externally from a reference log.
	CaseArrivalRatio float64

	// StartTime is the virtual-time offset of the first case.
	StartTime float64

	// Seed is the master seed for the partitioned RNG.
	Seed int64

	// Capacities overrides the per-place capacity (default 1 per place).
	Capacities map[string]int

	// MaxSampleRetries caps consecutive negative duration samples per
	// firing before the run aborts with a DistributionError.
	// 0 means DefaultMaxSampleRetries.
	MaxSampleRetries int

	// SmallScaleFactor is accepted for compatibility with existing run
	// configurations but has no effect on the stepping algorithm.
	SmallScaleFactor float64
}

func (c Config) maxRetries() int {
	if c.MaxSampleRetries > 0 {
		return c.MaxSampleRetries
	}
	return DefaultMaxSampleRetries
}
