package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"fmt"
	"io"

	"github.com/illarion/locksim/internal/lockerr"
	"golang.org/x/crypto/pbkdf2"
)

const (
	SaltSize     = 32     // Default salt size in bytes
	MinSaltSize  = 16     // 128 bits
	KeySize      = 32     // SHA-256 output size
	DefaultIters = 210000 // Default PBKDF2 iterations (OWASP minimum)
	MinIters     = 10000  // Work-factor floor for new credentials
)

// Credential is the derivation state of one secret. It is immutable: the
// accessors hand out copies.
type Credential struct {
	salt       []byte
	derivedKey []byte
	iterations int
}

// Salt returns a copy of the credential salt
func (c *Credential) Salt() []byte {
	return append([]byte(nil), c.salt...)
}

// DerivedKey returns a copy of the derived key
func (c *Credential) DerivedKey() []byte {
	return append([]byte(nil), c.derivedKey...)
}

// Iterations returns the PBKDF2 iteration count
func (c *Credential) Iterations() int {
	return c.iterations
}

// Engine derives and verifies salted PBKDF2-HMAC-SHA256 keys.
type Engine struct {
	rand              io.Reader
	saltSize          int
	minIterations     int
	defaultIterations int
}

// Option configures an Engine
type Option func(*Engine)

// WithRand sets the source salts are read from. Tests pass a fixed reader.
func WithRand(r io.Reader) Option {
	return func(e *Engine) {
		e.rand = r
	}
}

// WithSaltSize sets the salt length in bytes
func WithSaltSize(n int) Option {
	return func(e *Engine) {
		e.saltSize = n
	}
}

// WithMinIterations sets the work-factor floor
func WithMinIterations(n int) Option {
	return func(e *Engine) {
		e.minIterations = n
	}
}

// WithDefaultIterations sets the iteration count used by Derive
func WithDefaultIterations(n int) Option {
	return func(e *Engine) {
		e.defaultIterations = n
	}
}

// NewEngine creates an engine. Without options it reads salts from
// crypto/rand and uses DefaultIters with a MinIters floor.
func NewEngine(opts ...Option) (*Engine, error) {
	e := &Engine{
		rand:              rand.Reader,
		saltSize:          SaltSize,
		minIterations:     MinIters,
		defaultIterations: DefaultIters,
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.rand == nil {
		return nil, lockerr.Config("crypto.NewEngine", "random source is nil")
	}
	if e.saltSize < MinSaltSize {
		return nil, lockerr.Config("crypto.NewEngine", "salt size %d is below %d bytes", e.saltSize, MinSaltSize)
	}
	if e.minIterations < 1 {
		return nil, lockerr.Config("crypto.NewEngine", "iteration floor must be positive, got %d", e.minIterations)
	}
	if e.defaultIterations < e.minIterations {
		return nil, lockerr.Config("crypto.NewEngine", "default iterations %d below floor %d", e.defaultIterations, e.minIterations)
	}
	return e, nil
}

// DefaultEngine returns an engine with the package defaults
func DefaultEngine() *Engine {
	e, err := NewEngine()
	if err != nil {
		// the defaults are constants, this cannot happen
		panic(err)
	}
	return e
}

// MinIterations returns the work-factor floor
func (e *Engine) MinIterations() int {
	return e.minIterations
}

// DefaultIterations returns the iteration count used by Derive
func (e *Engine) DefaultIterations() int {
	return e.defaultIterations
}

// Derive derives a credential from secret with a fresh salt and the
// engine's default iteration count.
func (e *Engine) Derive(secret string) (*Credential, error) {
	return e.DeriveWith(secret, nil, e.defaultIterations)
}

// DeriveWith derives a credential from secret. An empty salt means a fresh
// one is generated. Iteration counts below the engine floor are rejected.
// An empty secret is accepted.
func (e *Engine) DeriveWith(secret string, salt []byte, iterations int) (*Credential, error) {
	if iterations < e.minIterations {
		return nil, lockerr.Config("crypto.Derive", "iterations %d below floor %d", iterations, e.minIterations).
			WithContext("iterations", iterations).
			WithContext("floor", e.minIterations)
	}

	if len(salt) == 0 {
		var err error
		salt, err = GenerateRandom(e.rand, e.saltSize)
		if err != nil {
			return nil, fmt.Errorf("failed to generate salt: %w", err)
		}
	} else {
		salt = append([]byte(nil), salt...)
	}

	password := []byte(secret)
	defer ClearBytes(password)

	return &Credential{
		salt:       salt,
		derivedKey: DeriveKey(password, salt, iterations),
		iterations: iterations,
	}, nil
}

// Verify re-derives a key from secret and compares it with derivedKey in
// constant time. The creation floor is not applied here, only iterations >= 1.
func (e *Engine) Verify(secret string, salt, derivedKey []byte, iterations int) (bool, error) {
	if iterations < 1 {
		return false, lockerr.Value("crypto.Verify", "iterations must be positive, got %d", iterations)
	}
	if len(salt) == 0 {
		return false, lockerr.Value("crypto.Verify", "salt is empty")
	}

	password := []byte(secret)
	defer ClearBytes(password)

	key := DeriveKey(password, salt, iterations)
	defer ClearBytes(key)

	return ConstantTimeCompare(key, derivedKey), nil
}

// VerifyCredential verifies secret against c
func (e *Engine) VerifyCredential(secret string, c *Credential) (bool, error) {
	if c == nil {
		return false, lockerr.Value("crypto.Verify", "credential is nil")
	}
	return e.Verify(secret, c.salt, c.derivedKey, c.iterations)
}

// DeriveKey derives a KeySize key from a password
func DeriveKey(password, salt []byte, iterations int) []byte {
	return pbkdf2.Key(password, salt, iterations, KeySize, sha256.New)
}

// ClearBytes securely clears a byte slice
func ClearBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// ConstantTimeCompare performs a constant-time comparison of two byte slices.
// Slices of different length never match.
func ConstantTimeCompare(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}

// GenerateRandom reads n random bytes from r
func GenerateRandom(r io.Reader, n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return b, nil
}
