package config

import (
	"fmt"
	"strings"
	"time"
	"uct/meta"
	"uct/searcher"

	"github.com/spf13/viper"
)

const EnvPrefix = "UCT"

type Config struct {
	Game        string        `mapstructure:"game"`
	Iterations  int           `mapstructure:"iterations"`
	Exploration float64       `mapstructure:"exploration"`
	Policy      string        `mapstructure:"policy"`
	Seed        uint64        `mapstructure:"seed"`
	Duration    time.Duration `mapstructure:"duration"`
	Games       int           `mapstructure:"games"`
	Workers     int           `mapstructure:"workers"`
	MaxMoves    int           `mapstructure:"max_moves"`
	OutDir      string        `mapstructure:"out_dir"`
	LogLevel    string        `mapstructure:"log_level"`
	Color       bool          `mapstructure:"color"`
}

// Load reads the configuration from defaults, then the file at path if one is
// given, then UCT_* environment variables, each overriding the one before.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("game", meta.GAME)
	v.SetDefault("iterations", meta.ITERATIONS)
	v.SetDefault("exploration", meta.EXPLORATION)
	v.SetDefault("policy", meta.POLICY)
	v.SetDefault("seed", 0)
	v.SetDefault("duration", time.Duration(0))
	v.SetDefault("games", meta.GAMES)
	v.SetDefault("workers", meta.WORKERS)
	v.SetDefault("max_moves", meta.MAX_MOVES)
	v.SetDefault("out_dir", meta.OUT_DIR)
	v.SetDefault("log_level", meta.LOG_LEVEL)
	v.SetDefault("color", true)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch {
	case c.Iterations <= 0:
		return fmt.Errorf("iterations must be positive, got %d", c.Iterations)
	case c.Exploration < 0:
		return fmt.Errorf("exploration must not be negative, got %g", c.Exploration)
	case c.Games <= 0:
		return fmt.Errorf("games must be positive, got %d", c.Games)
	case c.Workers <= 0:
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	_, err := searcher.ParseFinalPolicy(c.Policy)
	return err
}

// SearchOptions turns the search settings into searcher options.
func (c *Config) SearchOptions() ([]searcher.Option, error) {
	policy, err := searcher.ParseFinalPolicy(c.Policy)
	if err != nil {
		return nil, err
	}
	options := []searcher.Option{
		searcher.WithExploration(c.Exploration),
		searcher.WithFinalPolicy(policy),
	}
	if c.Duration > 0 {
		options = append(options, searcher.WithDuration(c.Duration))
	}
	if c.Seed != 0 {
		options = append(options, searcher.WithSeed(c.Seed))
	}
	return options, nil
}
