package config

import (
	"errors"
	"fmt"
	"strings"
	"threes/meta"

	"github.com/spf13/viper"
)

const (
	AgentExpectimax = "expectimax"
	AgentRandom     = "random"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Depth         int    `mapstructure:"depth"`
	SampleCap     int    `mapstructure:"sample_cap"`
	Games         int    `mapstructure:"games"`
	Parallel      int    `mapstructure:"parallel"`
	Seed          uint64 `mapstructure:"seed"` // 0 picks a random seed per game
	MaxMoves      int    `mapstructure:"max_moves"`
	Agent         string `mapstructure:"agent"`
	LogLevel      string `mapstructure:"log_level"`
	BestScorePath string `mapstructure:"best_score_path"`
	OutputDir     string `mapstructure:"output_dir"` // Empty disables CSV output
	Metrics       bool   `mapstructure:"metrics"`
}

// Load reads defaults, then the optional config file at path, then THREES_*
// environment variables.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("depth", meta.SEARCH_DEPTH)
	v.SetDefault("sample_cap", meta.SAMPLE_CAP)
	v.SetDefault("games", 1)
	v.SetDefault("parallel", 1)
	v.SetDefault("seed", 0)
	v.SetDefault("max_moves", meta.MAX_MOVES)
	v.SetDefault("agent", AgentExpectimax)
	v.SetDefault("log_level", "info")
	v.SetDefault("best_score_path", "")
	v.SetDefault("output_dir", "")
	v.SetDefault("metrics", false)

	v.SetEnvPrefix("threes")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) Validate() error {
	switch {
	case c.Depth <= 0:
		return fmt.Errorf("%w: depth must be positive, got %d", ErrInvalidConfig, c.Depth)
	case c.SampleCap <= 0:
		return fmt.Errorf("%w: sample_cap must be positive, got %d", ErrInvalidConfig, c.SampleCap)
	case c.Games <= 0:
		return fmt.Errorf("%w: games must be positive, got %d", ErrInvalidConfig, c.Games)
	case c.Parallel <= 0:
		return fmt.Errorf("%w: parallel must be positive, got %d", ErrInvalidConfig, c.Parallel)
	case c.MaxMoves <= 0:
		return fmt.Errorf("%w: max_moves must be positive, got %d", ErrInvalidConfig, c.MaxMoves)
	case c.Agent != AgentExpectimax && c.Agent != AgentRandom:
		return fmt.Errorf("%w: unknown agent %q", ErrInvalidConfig, c.Agent)
	}
	return nil
}
