package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/newthinker/veritas/internal/core"
	"github.com/spf13/viper"
)

type Config struct {
	Verify  VerifyConfig  `mapstructure:"verify"`
	Realism RealismConfig `mapstructure:"realism"`
	Input   InputConfig   `mapstructure:"input"`
	LLM     LLMConfig     `mapstructure:"llm"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// VerifyConfig controls the per-trade recomputation pass.
type VerifyConfig struct {
	PnLTolerance float64 `mapstructure:"pnl_tolerance"` // absolute dollars
	SampleTrades int     `mapstructure:"sample_trades"` // trades rechecked for P&L
	DetailTrades int     `mapstructure:"detail_trades"` // trades printed in full
}

// RealismConfig holds the plausibility thresholds.
type RealismConfig struct {
	MaxReturnPct   float64 `mapstructure:"max_return_pct"`
	WinRateMin     float64 `mapstructure:"win_rate_min"` // fraction in [0,1]
	WinRateMax     float64 `mapstructure:"win_rate_max"` // fraction in [0,1]
	MaxDrawdownPct float64 `mapstructure:"max_drawdown_pct"`
}

// InputConfig holds settings for non-stdin input sources.
type InputConfig struct {
	S3 S3Config `mapstructure:"s3"`
}

type S3Config struct {
	Endpoint  string `mapstructure:"endpoint"`
	Region    string `mapstructure:"region"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

type LLMConfig struct {
	Provider string       `mapstructure:"provider"`
	Claude   ClaudeConfig `mapstructure:"claude"`
	OpenAI   OpenAIConfig `mapstructure:"openai"`
	Ollama   OllamaConfig `mapstructure:"ollama"`
}

type ClaudeConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type OpenAIConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type OllamaConfig struct {
	Endpoint string `mapstructure:"endpoint"`
	Model    string `mapstructure:"model"`
}

// MetricsConfig holds the Prometheus textfile exporter settings.
type MetricsConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Textfile string `mapstructure:"textfile"`
}

// Load reads configuration from file
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Support environment variable overrides
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Expand environment variables in string values
	for _, key := range v.AllKeys() {
		val := v.GetString(key)
		if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
			envKey := strings.TrimSuffix(strings.TrimPrefix(val, "${"), "}")
			v.Set(key, os.Getenv(envKey))
		}
	}

	cfg := Defaults()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return cfg, nil
}

// Defaults returns the thresholds the verifier has always shipped with.
func Defaults() *Config {
	return &Config{
		Verify: VerifyConfig{
			PnLTolerance: 0.01,
			SampleTrades: 10,
			DetailTrades: 3,
		},
		Realism: RealismConfig{
			MaxReturnPct:   100,
			WinRateMin:     0.20,
			WinRateMax:     0.80,
			MaxDrawdownPct: 50,
		},
		Metrics: MetricsConfig{
			Enabled: false,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Verify.PnLTolerance <= 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("pnl_tolerance must be positive, got %f", c.Verify.PnLTolerance))
	}
	if c.Verify.SampleTrades < 0 || c.Verify.DetailTrades < 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("sample_trades and detail_trades cannot be negative"))
	}
	if c.Verify.DetailTrades > c.Verify.SampleTrades {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("detail_trades (%d) cannot exceed sample_trades (%d)",
				c.Verify.DetailTrades, c.Verify.SampleTrades))
	}

	if c.Realism.WinRateMin < 0 || c.Realism.WinRateMax > 1 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("win rate bounds must be within [0,1], got [%f,%f]",
				c.Realism.WinRateMin, c.Realism.WinRateMax))
	}
	if c.Realism.WinRateMin > c.Realism.WinRateMax {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("win_rate_min (%f) greater than win_rate_max (%f)",
				c.Realism.WinRateMin, c.Realism.WinRateMax))
	}
	if c.Realism.MaxReturnPct < 0 || c.Realism.MaxDrawdownPct < 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("realism thresholds cannot be negative"))
	}

	// LLM validation - if provider set, check config exists
	if c.LLM.Provider != "" {
		switch c.LLM.Provider {
		case "claude":
			if c.LLM.Claude.APIKey == "" {
				return core.WrapError(core.ErrConfigMissing,
					fmt.Errorf("claude api_key required when provider is claude"))
			}
		case "openai":
			if c.LLM.OpenAI.APIKey == "" {
				return core.WrapError(core.ErrConfigMissing,
					fmt.Errorf("openai api_key required when provider is openai"))
			}
		case "ollama":
			if c.LLM.Ollama.Endpoint == "" {
				return core.WrapError(core.ErrConfigMissing,
					fmt.Errorf("ollama endpoint required when provider is ollama"))
			}
		default:
			return core.WrapError(core.ErrConfigInvalid,
				fmt.Errorf("unknown llm provider: %s", c.LLM.Provider))
		}
	}

	if c.Metrics.Enabled && c.Metrics.Textfile == "" {
		return core.WrapError(core.ErrConfigMissing,
			fmt.Errorf("metrics.textfile required when metrics are enabled"))
	}

	return nil
}
