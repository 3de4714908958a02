package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultEvolutionConfig_IsValid(t *testing.T) {
	assert.NoError(t, DefaultEvolutionConfig().Validate())
}

func TestEvolutionConfig_Validate_RejectsOutOfRangeConfigs(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*EvolutionConfig)
	}{
		{"weight above 1", func(c *EvolutionConfig) { c.Weight = 1.5 }},
		{"negative weight", func(c *EvolutionConfig) { c.Weight = -0.1 }},
		{"max depth below 2", func(c *EvolutionConfig) { c.MaxDepth = 1 }},
		{"zero pop size", func(c *EvolutionConfig) { c.PopSize = 0 }},
		{"negative pop size", func(c *EvolutionConfig) { c.PopSize = -5 }},
		{"crossover above 1", func(c *EvolutionConfig) { c.CrossoverRate = 1.2 }},
		{"crossover plus mutation above 1", func(c *EvolutionConfig) { c.CrossoverRate = 0.9; c.MutationRate = 0.5 }},
		{"zero num gen", func(c *EvolutionConfig) { c.NumGen = 0 }},
		{"zero num time slot", func(c *EvolutionConfig) { c.NumTimeSlot = 0 }},
		{"train factor above 1", func(c *EvolutionConfig) { c.TrainFactor = 1.1 }},
		{"zero stress factor", func(c *EvolutionConfig) { c.StressFactor = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultEvolutionConfig()
			tt.modify(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
