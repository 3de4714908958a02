package sim

import (
	"hash/fnv"
	"math/rand"
)

// SimulationKey uniquely identifies a reproducible evolutionary run.
// Two runs with the same SimulationKey and identical configuration MUST
// produce bit-for-bit identical populations.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// SubsystemGP is the only RNG subsystem this evolver currently registers:
// every draw made by the GP engine and the evolution driver (initialization,
// mutation, crossover, tournament sampling) shares one stream.
const SubsystemGP = "gp"

// PartitionedRNG provides deterministic, isolated RNG instances per
// subsystem, derived from a single master seed.
//
// Derivation: the first subsystem ever requested uses the master seed
// directly; every other subsystem name XORs the master seed with the
// FNV-1a64 hash of its name. This keeps a single SimulationKey reproducible
// across runs while still letting unrelated subsystems (were more than one
// ever registered) draw from independent streams.
//
// Thread-safety: NOT thread-safe. The GP driver is single-threaded (spec §5).
type PartitionedRNG struct {
	key        SimulationKey
	first      string
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns a deterministically-seeded RNG for the named
// subsystem. The same name always returns the same cached *rand.Rand.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}

	var derivedSeed int64
	if p.first == "" {
		p.first = name
		derivedSeed = int64(p.key)
	} else {
		derivedSeed = int64(p.key) ^ fnv1a64(name)
	}

	rng := rand.New(rand.NewSource(derivedSeed))
	p.subsystems[name] = rng
	return rng
}

// Key returns the SimulationKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
