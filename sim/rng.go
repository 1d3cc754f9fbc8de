package sim

import (
	"hash/fnv"
	"math/rand"
)

// RNG subsystem names. Each subsystem gets its own deterministic stream so
// adding a consumer to one never perturbs the draws of another.
const (
	// SubsystemDurations feeds the duration samplers.
	SubsystemDurations = "durations"

	// SubsystemChoice feeds the weighted transition pick.
	SubsystemChoice = "choice"
)

// PartitionedRNG provides deterministic, isolated RNG instances per
// subsystem, derived from a single master seed.
//
// Derivation: masterSeed XOR fnv1a64(subsystemName).
// Not safe for concurrent use; the scheduler runs single-threaded.
type PartitionedRNG struct {
	masterSeed int64
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a master seed.
func NewPartitionedRNG(seed int64) *PartitionedRNG {
	return &PartitionedRNG{
		masterSeed: seed,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns the deterministically-seeded RNG for the named
// subsystem. The same name always returns the same cached *rand.Rand.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}
	rng := rand.New(rand.NewSource(p.masterSeed ^ fnv1a64(name)))
	p.subsystems[name] = rng
	return rng
}

// Seed returns the master seed this PartitionedRNG was created with.
func (p *PartitionedRNG) Seed() int64 {
	return p.masterSeed
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
