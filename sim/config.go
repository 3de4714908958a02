package sim

import "fmt"

// EvolutionConfig holds every tunable of the evolutionary loop (spec §4.7,
// §6). Field names track the external interface table verbatim so the
// YAML config file maps onto it directly. No CLI flag sets these fields.
type EvolutionConfig struct {
	Weight        float64 `yaml:"WEIGHT"`
	NumTimeSlot   float64 `yaml:"NUM_TIME_SLOT"`
	NumGen        int     `yaml:"NUM_GEN"`
	PopSize       int     `yaml:"POP_SIZE"`
	MaxDepth      int     `yaml:"MAX_DEPTH"`
	CrossoverRate float64 `yaml:"CROSSOVER_RATE"`
	MutationRate  float64 `yaml:"MUTATION_RATE"`
	ConstRate     float64 `yaml:"CONST_RATE"`
	TrainFactor   float64 `yaml:"TRAIN_FACTOR"`
	StressFactor  float64 `yaml:"STRESS_FACTOR"`
}

// DefaultEvolutionConfig returns the parenthesized defaults of spec §4.7.
func DefaultEvolutionConfig() *EvolutionConfig {
	return &EvolutionConfig{
		Weight:        0.1,
		NumTimeSlot:   50,
		NumGen:        100,
		PopSize:       100,
		MaxDepth:      6,
		CrossoverRate: 0.8,
		MutationRate:  0.1,
		ConstRate:     0.1,
		TrainFactor:   0.2,
		StressFactor:  1.0,
	}
}

// Validate rejects the out-of-range configurations spec §7 calls out at
// driver entry: out-of-range probabilities, MAX_DEPTH < 2, zero POP_SIZE.
func (c *EvolutionConfig) Validate() error {
	if err := probability(c.Weight, "WEIGHT"); err != nil {
		return err
	}
	if err := probability(c.CrossoverRate, "CROSSOVER_RATE"); err != nil {
		return err
	}
	if err := probability(c.MutationRate, "MUTATION_RATE"); err != nil {
		return err
	}
	if err := probability(c.ConstRate, "CONST_RATE"); err != nil {
		return err
	}
	if c.CrossoverRate+c.MutationRate > 1 {
		return fmt.Errorf("config: CROSSOVER_RATE + MUTATION_RATE exceeds 1 (%v + %v)", c.CrossoverRate, c.MutationRate)
	}
	if c.MaxDepth < 2 {
		return fmt.Errorf("config: MAX_DEPTH must be >= 2, got %d", c.MaxDepth)
	}
	if c.PopSize <= 0 {
		return fmt.Errorf("config: POP_SIZE must be > 0, got %d", c.PopSize)
	}
	if c.NumGen <= 0 {
		return fmt.Errorf("config: NUM_GEN must be > 0, got %d", c.NumGen)
	}
	if c.NumTimeSlot <= 0 {
		return fmt.Errorf("config: NUM_TIME_SLOT must be > 0, got %v", c.NumTimeSlot)
	}
	if c.TrainFactor <= 0 || c.TrainFactor > 1 {
		return fmt.Errorf("config: TRAIN_FACTOR must be in (0, 1], got %v", c.TrainFactor)
	}
	if c.StressFactor <= 0 {
		return fmt.Errorf("config: STRESS_FACTOR must be > 0, got %v", c.StressFactor)
	}
	return nil
}

func probability(v float64, name string) error {
	if v < 0 || v > 1 {
		return fmt.Errorf("config: %s must be in [0, 1], got %v", name, v)
	}
	return nil
}
