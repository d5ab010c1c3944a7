package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/illarion/locksim/internal/lockerr"
	"github.com/illarion/locksim/internal/storage"
)

// Exit codes by error kind
const (
	ExitError     = 1
	ExitConfig    = 2
	ExitState     = 3
	ExitPolicy    = 4
	ExitCancelled = 130
)

var (
	ErrSecretRequired = errors.New("secret required")
	ErrNoCandidates   = errors.New("no candidates to try")
)

// HandleError prints err with a hint and returns the exit code for it
func HandleError(w io.Writer, err error) int {
	fmt.Fprintf(w, "Error: %s\n", err)

	switch {
	case errors.Is(err, context.Canceled):
		return ExitCancelled
	case errors.Is(err, ErrSecretRequired):
		fmt.Fprintln(w, "Set LOCKSIM_SECRET, use --keyring <label>, or run from a terminal")
		return ExitError
	case errors.Is(err, ErrNoCandidates):
		fmt.Fprintln(w, "Pass candidates as arguments or use --wordlist <file>")
		return ExitError
	case errors.Is(err, storage.ErrNotInitialized):
		fmt.Fprintln(w, "No journal yet, run 'locksim attack' first")
		return ExitError
	}

	switch lockerr.KindOf(err) {
	case lockerr.KindConfig:
		fmt.Fprintln(w, "Check --config, LOCKSIM_* variables and flags")
		return ExitConfig
	case lockerr.KindState:
		return ExitState
	case lockerr.KindPolicy:
		fmt.Fprintln(w, "Dictionary attacks only run against password locks")
		return ExitPolicy
	default:
		return ExitError
	}
}
