package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/illarion/locksim/internal/crypto"
	"github.com/illarion/locksim/internal/lock"
	"github.com/illarion/locksim/internal/lockerr"
	"gopkg.in/yaml.v3"
)

// Environment variables read by ApplyEnv
const (
	EnvIterations = "LOCKSIM_ITERATIONS"
	EnvLockType   = "LOCKSIM_LOCK_TYPE"
	EnvJournal    = "LOCKSIM_JOURNAL"
	EnvLogLevel   = "LOCKSIM_LOG_LEVEL"
)

const journalFile = "journal.db"

// Config is the locksim configuration file
type Config struct {
	Lock    LockConfig    `yaml:"lock"`
	Attack  AttackConfig  `yaml:"attack"`
	Journal JournalConfig `yaml:"journal"`
	Log     LogConfig     `yaml:"log"`
}

// LockConfig holds the lock type and the key derivation parameters
type LockConfig struct {
	Type          string `yaml:"type"`
	Iterations    int    `yaml:"iterations"`
	MinIterations int    `yaml:"min_iterations"`
	SaltSize      int    `yaml:"salt_size"`
}

// AttackConfig holds attack defaults
type AttackConfig struct {
	Wordlist string `yaml:"wordlist"`
}

// JournalConfig controls the run journal
type JournalConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// LogConfig controls logger construction
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Lock: LockConfig{
			Type:          string(lock.TypePassword),
			Iterations:    crypto.DefaultIters,
			MinIterations: crypto.MinIters,
			SaltSize:      crypto.SaltSize,
		},
		Journal: JournalConfig{
			Enabled: true,
			Path:    DefaultJournalPath(),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// DefaultJournalPath returns ~/.locksim/journal.db, or a path in the
// working directory when the home directory is unknown.
func DefaultJournalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".locksim", journalFile)
	}
	return filepath.Join(home, ".locksim", journalFile)
}

// Load reads a YAML config file on top of the defaults. An empty path
// returns the defaults. Fields missing from the file keep their defaults.
// A leading ~ in journal.path and attack.wordlist resolves to the home
// directory.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, lockerr.Wrap(lockerr.KindConfig, "config.Load", "failed to parse "+path, err)
	}
	if err := cfg.expandPaths(); err != nil {
		return nil, lockerr.Wrap(lockerr.KindConfig, "config.Load", "failed to expand paths", err)
	}
	return cfg, nil
}

// ApplyEnv overrides fields from environment variables. lookup is
// os.LookupEnv in production.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvIterations); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return lockerr.Wrap(lockerr.KindConfig, "config.ApplyEnv", EnvIterations+" is not an integer", err)
		}
		c.Lock.Iterations = n
	}
	if v, ok := lookup(EnvLockType); ok && v != "" {
		c.Lock.Type = v
	}
	if v, ok := lookup(EnvJournal); ok && v != "" {
		c.Journal.Path = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Log.Level = v
	}
	if err := c.expandPaths(); err != nil {
		return lockerr.Wrap(lockerr.KindConfig, "config.ApplyEnv", "failed to expand paths", err)
	}
	return nil
}

// Validate checks the configuration. All problems are reported at once.
func (c *Config) Validate() error {
	var errs []error

	if _, err := lock.ParseType(c.Lock.Type); err != nil {
		errs = append(errs, err)
	}
	if c.Lock.MinIterations < 1 {
		errs = append(errs, lockerr.Config("config.Validate", "lock.min_iterations must be positive, got %d", c.Lock.MinIterations))
	}
	if c.Lock.Iterations < c.Lock.MinIterations {
		errs = append(errs, lockerr.Config("config.Validate", "lock.iterations %d below work-factor floor %d", c.Lock.Iterations, c.Lock.MinIterations))
	}
	if c.Lock.SaltSize < crypto.MinSaltSize {
		errs = append(errs, lockerr.Config("config.Validate", "lock.salt_size %d below %d bytes", c.Lock.SaltSize, crypto.MinSaltSize))
	}
	if c.Journal.Enabled && strings.TrimSpace(c.Journal.Path) == "" {
		errs = append(errs, lockerr.Config("config.Validate", "journal.path is required when the journal is enabled"))
	}

	return errors.Join(errs...)
}

// LockType returns the parsed lock type
func (c *Config) LockType() (lock.Type, error) {
	return lock.ParseType(c.Lock.Type)
}

// EngineOptions maps the lock section onto hash engine options
func (c *Config) EngineOptions() []crypto.Option {
	return []crypto.Option{
		crypto.WithSaltSize(c.Lock.SaltSize),
		crypto.WithMinIterations(c.Lock.MinIterations),
		crypto.WithDefaultIterations(c.Lock.Iterations),
	}
}

// NewEngine builds a hash engine from the lock section
func (c *Config) NewEngine() (*crypto.Engine, error) {
	return crypto.NewEngine(c.EngineOptions()...)
}
