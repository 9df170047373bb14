package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	// A named config file that does not exist is an error
	require.Error(t, err)

	cfg, err = Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "csv_data", cfg.Data.CSVDir)
	assert.Equal(t, 7.5, cfg.Engine.HighDemandScore)
	assert.Equal(t, 0.92, cfg.Engine.LowDemandCut)
	assert.Equal(t, 1.08, cfg.Engine.LowStockRaise)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
logging:
  level: debug
  format: text
  output: stdout
data:
  csv_dir: /srv/pricing/csv
engine:
  high_demand_score: 8.5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, "/srv/pricing/csv", cfg.Data.CSVDir)
	assert.Equal(t, 8.5, cfg.Engine.HighDemandScore)
	// Values the file leaves out keep their defaults
	assert.Equal(t, 5.0, cfg.Engine.LowDemandScore)
	assert.Equal(t, "exports", cfg.Data.ExportDir)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("engine:\n  high_demand_score: 8.5\n"), 0644))

	t.Setenv("PRICING_ENGINE_HIGH_DEMAND_SCORE", "9.25")
	t.Setenv("PRICING_LOGGING_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9.25, cfg.Engine.HighDemandScore)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		envKey  string
		envVal  string
		wantErr string
	}{
		{"bad log level", "PRICING_LOGGING_LEVEL", "verbose", "Level"},
		{"raise multiplier below one", "PRICING_ENGINE_HIGH_DEMAND_RAISE", "0.9", "HighDemandRaise"},
		{"cut multiplier above one", "PRICING_ENGINE_LOW_DEMAND_CUT", "1.2", "LowDemandCut"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.envKey, tt.envVal)

			_, err := Load("")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
