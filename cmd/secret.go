package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/illarion/locksim/internal/crypto"
	"github.com/illarion/locksim/internal/keyring"
	"golang.org/x/term"
)

// EnvSecret holds the lab secret for non-interactive runs
const EnvSecret = "LOCKSIM_SECRET"

// readSecret reads a secret from the terminal without echoing
func readSecret(in *os.File, out io.Writer, prompt string) ([]byte, error) {
	fmt.Fprint(out, prompt)

	secret, err := term.ReadPassword(int(in.Fd()))
	fmt.Fprintln(out) // New line after secret

	if err != nil {
		return nil, fmt.Errorf("failed to read secret: %w", err)
	}
	return secret, nil
}

// readSecretConfirm reads a secret twice and ensures they match
func readSecretConfirm(in *os.File, out io.Writer) ([]byte, error) {
	secret1, err := readSecret(in, out, "Enter lab secret: ")
	if err != nil {
		return nil, err
	}
	defer crypto.ClearBytes(secret1)

	secret2, err := readSecret(in, out, "Confirm lab secret: ")
	if err != nil {
		return nil, err
	}
	defer crypto.ClearBytes(secret2)

	if !crypto.ConstantTimeCompare(secret1, secret2) {
		return nil, fmt.Errorf("secrets do not match")
	}

	// Return a copy of the secret
	result := make([]byte, len(secret1))
	copy(result, secret1)
	return result, nil
}

// resolveSecret finds the lab secret: environment first, then the OS
// keyring when a label is given, then an interactive prompt.
// The caller is responsible for calling crypto.ClearBytes on the result.
func (a *app) resolveSecret(keyringLabel string, out io.Writer) ([]byte, error) {
	if v, ok := a.lookup(EnvSecret); ok && v != "" {
		return []byte(v), nil
	}

	if keyringLabel != "" {
		secret, err := keyring.GetSecret(keyringLabel)
		if err != nil {
			return nil, err
		}
		return []byte(secret), nil
	}

	if a.stdin == nil || !term.IsTerminal(int(a.stdin.Fd())) {
		return nil, ErrSecretRequired
	}
	return readSecretConfirm(a.stdin, out)
}
