package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/illarion/locksim/internal/crypto"
	"github.com/illarion/locksim/internal/lock"
	"github.com/illarion/locksim/internal/lockerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "password", cfg.Lock.Type)
	assert.Equal(t, crypto.DefaultIters, cfg.Lock.Iterations)
	assert.Equal(t, crypto.MinIters, cfg.Lock.MinIterations)
	assert.Equal(t, crypto.SaltSize, cfg.Lock.SaltSize)
	assert.True(t, cfg.Journal.Enabled)
	assert.NotEmpty(t, cfg.Journal.Path)
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "locksim.yaml")
	content := `
lock:
  type: pin
  iterations: 50000
attack:
  wordlist: words.txt
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "pin", cfg.Lock.Type)
	assert.Equal(t, 50000, cfg.Lock.Iterations)
	assert.Equal(t, crypto.MinIters, cfg.Lock.MinIterations, "unset fields keep defaults")
	assert.Equal(t, "words.txt", cfg.Attack.Wordlist)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("lock: [unclosed"), 0600))

	_, err := Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, lockerr.ErrConfig)
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv(envMap(map[string]string{
		EnvIterations: "300000",
		EnvLockType:   "pattern",
		EnvJournal:    "/tmp/j.db",
		EnvLogLevel:   "warn",
	}))
	require.NoError(t, err)

	assert.Equal(t, 300000, cfg.Lock.Iterations)
	assert.Equal(t, "pattern", cfg.Lock.Type)
	assert.Equal(t, "/tmp/j.db", cfg.Journal.Path)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestApplyEnvBadIterations(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv(envMap(map[string]string{EnvIterations: "lots"}))
	assert.ErrorIs(t, err, lockerr.ErrConfig)
}

func TestApplyEnvIgnoresEmpty(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.ApplyEnv(envMap(map[string]string{EnvLockType: ""})))
	assert.Equal(t, "password", cfg.Lock.Type)
}

func TestLoadExpandsHomePaths(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "locksim.yaml")
	content := `
attack:
  wordlist: ~/lists/top100.txt
journal:
  enabled: true
  path: ~/.locksim/journal.db
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".locksim", "journal.db"), cfg.Journal.Path)
	assert.Equal(t, filepath.Join(home, "lists", "top100.txt"), cfg.Attack.Wordlist)
	assert.False(t, strings.HasPrefix(cfg.Journal.Path, "~"))
}

func TestApplyEnvExpandsJournalPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv(envMap(map[string]string{EnvJournal: "~/runs.db"})))
	assert.Equal(t, filepath.Join(home, "runs.db"), cfg.Journal.Path)
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("LOCKSIM_TEST_DIR", "/srv/lab")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"tilde only", "~", home},
		{"tilde prefix", "~/data/j.db", filepath.Join(home, "data", "j.db")},
		{"env var", "$LOCKSIM_TEST_DIR/j.db", "/srv/lab/j.db"},
		{"absolute", "/var/lib/locksim/../j.db", "/var/lib/j.db"},
		{"tilde user form untouched", "~other/j.db", "~other/j.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandPath(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown lock type", func(c *Config) { c.Lock.Type = "voice" }},
		{"iterations below floor", func(c *Config) { c.Lock.Iterations = c.Lock.MinIterations - 1 }},
		{"zero floor", func(c *Config) { c.Lock.MinIterations = 0 }},
		{"short salt", func(c *Config) { c.Lock.SaltSize = 8 }},
		{"journal without path", func(c *Config) { c.Journal.Path = " " }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, lockerr.ErrConfig)
		})
	}
}

func TestValidateJournalDisabled(t *testing.T) {
	cfg := Default()
	cfg.Journal.Enabled = false
	cfg.Journal.Path = ""
	assert.NoError(t, cfg.Validate())
}

func TestNewEngineFromConfig(t *testing.T) {
	cfg := Default()
	cfg.Lock.MinIterations = 1
	cfg.Lock.Iterations = 1000

	e, err := cfg.NewEngine()
	require.NoError(t, err)
	assert.Equal(t, 1000, e.DefaultIterations())
	assert.Equal(t, 1, e.MinIterations())

	typ, err := cfg.LockType()
	require.NoError(t, err)
	assert.Equal(t, lock.TypePassword, typ)
}
