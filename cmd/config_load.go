package cmd

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	sim "github.com/dvrptw-gp/evolver/sim"
)

// loadEvolutionConfig reads an EvolutionConfig from a YAML file, strict on
// unknown fields so a typo'd tunable fails loudly instead of silently
// falling back to its default.
func loadEvolutionConfig(path string) (*sim.EvolutionConfig, error) {
	cfg := sim.DefaultEvolutionConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
