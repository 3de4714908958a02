package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEvolutionConfig_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := loadEvolutionConfig("")
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.PopSize)
	assert.Equal(t, 6, cfg.MaxDepth)
}

func TestLoadEvolutionConfig_OverridesNamedFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("POP_SIZE: 50\nMAX_DEPTH: 4\n"), 0o644))

	cfg, err := loadEvolutionConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.PopSize)
	assert.Equal(t, 4, cfg.MaxDepth)
	// Untouched fields keep their defaults.
	assert.Equal(t, 0.1, cfg.Weight)
}

func TestLoadEvolutionConfig_RejectsUnknownFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("POP_SIZE: 50\nTYPO_FIELD: 1\n"), 0o644))

	_, err := loadEvolutionConfig(path)
	assert.Error(t, err)
}

func TestLoadEvolutionConfig_RejectsInvalidValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("MAX_DEPTH: 1\n"), 0o644))

	_, err := loadEvolutionConfig(path)
	assert.Error(t, err)
}

func TestLoadEvolutionConfig_MissingFile(t *testing.T) {
	_, err := loadEvolutionConfig("/nonexistent/config.yaml")
	assert.Error(t, err)
}
