package lock

import (
	"fmt"
	"strings"

	"github.com/illarion/locksim/internal/crypto"
	"github.com/illarion/locksim/internal/lockerr"
)

// Type is the kind of secret a lock is protected by.
type Type string

const (
	TypePIN      Type = "pin"
	TypePassword Type = "password"
	TypePattern  Type = "pattern"
)

// Types lists every supported lock type
var Types = []Type{TypePIN, TypePassword, TypePattern}

// Valid reports whether t is a supported lock type
func (t Type) Valid() bool {
	switch t {
	case TypePIN, TypePassword, TypePattern:
		return true
	}
	return false
}

func (t Type) String() string {
	return string(t)
}

// ParseType parses a lock type name, case-insensitively
func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", lockerr.Config("lock.ParseType", "lock type must be 'pin', 'password', or 'pattern', got %q", s)
	}
	return t, nil
}

// State is the credential state of a lock
type State int

const (
	Uninitialized State = iota
	Armed
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Armed:
		return "armed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Lock wraps a single credential. The plaintext secret is never kept.
type Lock struct {
	lockType   Type
	engine     *crypto.Engine
	credential *crypto.Credential
}

// Option configures a Lock
type Option func(*Lock)

// WithEngine sets the hash engine used to derive and verify the credential
func WithEngine(e *crypto.Engine) Option {
	return func(l *Lock) {
		l.engine = e
	}
}

// New creates an unarmed lock of the given type
func New(lockType Type, opts ...Option) (*Lock, error) {
	if !lockType.Valid() {
		return nil, lockerr.Config("lock.New", "lock type must be 'pin', 'password', or 'pattern', got %q", string(lockType)).
			WithContext("lock_type", string(lockType))
	}

	l := &Lock{lockType: lockType}
	for _, opt := range opts {
		opt(l)
	}
	if l.engine == nil {
		l.engine = crypto.DefaultEngine()
	}
	return l, nil
}

// Type returns the lock type
func (l *Lock) Type() Type {
	return l.lockType
}

// State returns the current credential state
func (l *Lock) State() State {
	if l.credential == nil {
		return Uninitialized
	}
	return Armed
}

// Iterations returns the work factor of the current credential, 0 if unarmed
func (l *Lock) Iterations() int {
	if l.credential == nil {
		return 0
	}
	return l.credential.Iterations()
}

// SetSecret arms the lock with a fresh credential derived from secret.
// Any previous credential is replaced. On error the lock is unchanged.
func (l *Lock) SetSecret(secret string) error {
	cred, err := l.engine.Derive(secret)
	if err != nil {
		return fmt.Errorf("failed to set secret: %w", err)
	}
	l.credential = cred
	return nil
}

// Attempt reports whether guess matches the lock secret
func (l *Lock) Attempt(guess string) (bool, error) {
	if l.credential == nil {
		return false, lockerr.State("lock.Attempt", "secret not set")
	}
	return l.engine.VerifyCredential(guess, l.credential)
}
