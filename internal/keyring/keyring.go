package keyring

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const serviceName = "locksim"

// ErrNotFound is returned when no secret is stored under a label
var ErrNotFound = errors.New("secret not found in keyring")

// GetSecret retrieves a lab secret from the OS keyring. locksim only reads
// the keyring; secrets are placed there with the platform's own tools.
func GetSecret(label string) (string, error) {
	secret, err := keyring.Get(serviceName, label)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", fmt.Errorf("%w: %s", ErrNotFound, label)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read keyring: %w", err)
	}
	return secret, nil
}

// HasSecret checks if a secret is stored under label
func HasSecret(label string) bool {
	_, err := keyring.Get(serviceName, label)
	return err == nil
}
