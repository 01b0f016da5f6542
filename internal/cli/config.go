package cli

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config is the TOML run configuration.
type Config struct {
	Model  ModelConfig  `toml:"model"`
	Chain  ChainConfig  `toml:"chain"`
	Moves  MovesConfig  `toml:"moves"`
	Cache  CacheConfig  `toml:"cache"`
	Store  StoreConfig  `toml:"store"`
	Output OutputConfig `toml:"output"`
}

// ModelConfig describes the variable set and the scoring source.
type ModelConfig struct {
	// Variables names the nodes; the count defines the problem size.
	Variables []string `toml:"variables"`

	// FanIn is the maximum number of parents per node.
	FanIn int `toml:"fan_in"`

	// ScoreFile is a JSON local-score table covering every candidate
	// parent set up to FanIn.
	ScoreFile string `toml:"score_file"`
}

// ChainConfig holds the MCMC chain parameters.
type ChainConfig struct {
	Iterations int    `toml:"iterations"`
	BurnIn     int    `toml:"burn_in"`
	Thin       int    `toml:"thin"`
	Seed       uint64 `toml:"seed"`
}

// MovesConfig weights the proposal move types.
// Zero-valued weights fall back to the defaults.
type MovesConfig struct {
	AddDelete float64 `toml:"add_delete"`
	Reversal  float64 `toml:"reversal"`
}

// CacheConfig controls caching of enumerated parent-set distributions.
type CacheConfig struct {
	// Dir enables a file cache in the given directory when non-empty.
	// Entries are keyed by the score file's content hash, the variable
	// count and the fan-in, so a changed input never hits a stale entry.
	Dir string `toml:"dir"`
}

// StoreConfig selects the run-persistence backend.
type StoreConfig struct {
	// Backend is one of "none", "memory", "file", "redis" or "mongo".
	Backend string `toml:"backend"`

	// Path is the directory for the file backend.
	Path string `toml:"path"`

	// RedisAddr is the host:port for the redis backend.
	RedisAddr string `toml:"redis_addr"`

	// MongoURI and MongoDatabase configure the mongo backend.
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
}

// OutputConfig names optional artifacts written after the run.
type OutputConfig struct {
	// DOT is the path for the best structure in Graphviz DOT format.
	DOT string `toml:"dot"`

	// SVG is the path for a rendered SVG of the best structure.
	SVG string `toml:"svg"`
}

// LoadConfig reads and validates a TOML configuration file.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) validate() error {
	if len(c.Model.Variables) < 1 {
		return errors.New("model.variables must name at least one variable")
	}
	if c.Model.FanIn < 1 {
		return errors.New("model.fan_in must be at least 1")
	}
	if c.Model.ScoreFile == "" {
		return errors.New("model.score_file is required")
	}
	if c.Chain.Iterations < 1 {
		return errors.New("chain.iterations must be at least 1")
	}
	if c.Moves.AddDelete < 0 || c.Moves.Reversal < 0 {
		return errors.New("move weights must not be negative")
	}
	switch c.Store.Backend {
	case "", "none", "memory", "file", "redis", "mongo":
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Chain.Thin < 1 {
		c.Chain.Thin = 1
	}
	if c.Moves.AddDelete == 0 && c.Moves.Reversal == 0 {
		c.Moves.AddDelete = 13.0 / 15.0
		c.Moves.Reversal = 2.0 / 15.0
	}
	if c.Store.Backend == "" {
		c.Store.Backend = "none"
	}
	if c.Store.Backend == "file" && c.Store.Path == "" {
		c.Store.Path = ".structmc/runs"
	}
	if c.Store.Backend == "mongo" && c.Store.MongoDatabase == "" {
		c.Store.MongoDatabase = appName
	}
}
