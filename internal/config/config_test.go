package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/newthinker/veritas/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	assert.Equal(t, 0.01, cfg.Verify.PnLTolerance)
	assert.Equal(t, 10, cfg.Verify.SampleTrades)
	assert.Equal(t, 3, cfg.Verify.DetailTrades)
	assert.Equal(t, 100.0, cfg.Realism.MaxReturnPct)
	assert.Equal(t, 0.20, cfg.Realism.WinRateMin)
	assert.Equal(t, 0.80, cfg.Realism.WinRateMax)
	assert.Equal(t, 50.0, cfg.Realism.MaxDrawdownPct)
	assert.False(t, cfg.Metrics.Enabled)

	require.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "veritas.yaml")
	content := []byte(`
verify:
  pnl_tolerance: 0.05
  sample_trades: 25
realism:
  max_drawdown_pct: 30
llm:
  provider: ollama
  ollama:
    endpoint: http://localhost:11434
    model: qwen2.5:32b
`)
	require.NoError(t, os.WriteFile(path, content, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	// Overridden values
	assert.Equal(t, 0.05, cfg.Verify.PnLTolerance)
	assert.Equal(t, 25, cfg.Verify.SampleTrades)
	assert.Equal(t, 30.0, cfg.Realism.MaxDrawdownPct)
	assert.Equal(t, "ollama", cfg.LLM.Provider)

	// Untouched keys keep their defaults
	assert.Equal(t, 3, cfg.Verify.DetailTrades)
	assert.Equal(t, 0.20, cfg.Realism.WinRateMin)

	require.NoError(t, cfg.Validate())
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("VERITAS_TEST_KEY", "sk-from-env")

	dir := t.TempDir()
	path := filepath.Join(dir, "veritas.yaml")
	content := []byte(`
llm:
  provider: claude
  claude:
    api_key: ${VERITAS_TEST_KEY}
`)
	require.NoError(t, os.WriteFile(path, content, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sk-from-env", cfg.LLM.Claude.APIKey)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr *core.Error
	}{
		{
			name:    "zero tolerance",
			mutate:  func(c *Config) { c.Verify.PnLTolerance = 0 },
			wantErr: core.ErrConfigInvalid,
		},
		{
			name:    "negative sample",
			mutate:  func(c *Config) { c.Verify.SampleTrades = -1 },
			wantErr: core.ErrConfigInvalid,
		},
		{
			name:    "detail exceeds sample",
			mutate:  func(c *Config) { c.Verify.DetailTrades = 11 },
			wantErr: core.ErrConfigInvalid,
		},
		{
			name:    "win rate bounds inverted",
			mutate:  func(c *Config) { c.Realism.WinRateMin = 0.9 },
			wantErr: core.ErrConfigInvalid,
		},
		{
			name:    "win rate above one",
			mutate:  func(c *Config) { c.Realism.WinRateMax = 1.5 },
			wantErr: core.ErrConfigInvalid,
		},
		{
			name:    "claude without key",
			mutate:  func(c *Config) { c.LLM.Provider = "claude" },
			wantErr: core.ErrConfigMissing,
		},
		{
			name:    "unknown provider",
			mutate:  func(c *Config) { c.LLM.Provider = "palm" },
			wantErr: core.ErrConfigInvalid,
		},
		{
			name:    "metrics without textfile",
			mutate:  func(c *Config) { c.Metrics.Enabled = true },
			wantErr: core.ErrConfigMissing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "expected %v, got %v", tt.wantErr, err)
		})
	}
}
