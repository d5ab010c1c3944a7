package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath resolves a leading ~ to the user home directory, expands
// $VAR references, and cleans the result. An empty path stays empty.
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		if path == "~" {
			return home, nil
		}
		path = filepath.Join(home, path[2:])
	}

	return filepath.Clean(os.ExpandEnv(path)), nil
}

// expandPaths rewrites the file paths held by the config in place
func (c *Config) expandPaths() error {
	for _, p := range []*string{&c.Journal.Path, &c.Attack.Wordlist} {
		expanded, err := ExpandPath(*p)
		if err != nil {
			return err
		}
		*p = expanded
	}
	return nil
}
