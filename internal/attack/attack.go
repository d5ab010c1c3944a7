package attack

import (
	"context"
	"fmt"
	"time"

	"github.com/illarion/locksim/internal/lock"
	"github.com/illarion/locksim/internal/lockerr"
	"github.com/rs/zerolog"
)

// Target is a lock the attacker can try candidates against. *lock.Lock satisfies it.
type Target interface {
	Type() lock.Type
	Attempt(guess string) (bool, error)
}

// Result is the outcome of one dictionary run.
type Result struct {
	// Succeeded is true when a candidate opened the lock.
	Succeeded bool `json:"succeeded"`

	// Matched is the matching candidate, empty when the run failed.
	Matched string `json:"matched,omitempty"`

	// Index is the position of Matched in the input, -1 when the run failed.
	Index int `json:"index"`

	// Attempts is the number of candidates tried, the match included.
	Attempts int `json:"attempts"`

	// Elapsed is the wall time from the first attempt to the last.
	Elapsed time.Duration `json:"elapsed"`
}

// MatchedCandidate returns the matching candidate and whether there was one
func (r *Result) MatchedCandidate() (string, bool) {
	return r.Matched, r.Succeeded
}

// ElapsedSeconds returns Elapsed in seconds
func (r *Result) ElapsedSeconds() float64 {
	return r.Elapsed.Seconds()
}

// Dictionary runs a sequential dictionary attack.
type Dictionary struct {
	now    func() time.Time
	logger zerolog.Logger
}

// Option configures a Dictionary
type Option func(*Dictionary)

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(d *Dictionary) {
		d.now = now
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(d *Dictionary) {
		d.logger = logger
	}
}

// NewDictionary creates a dictionary attacker
func NewDictionary(opts ...Option) *Dictionary {
	d := &Dictionary{
		now:    time.Now,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// CheckLockType returns a PolicyError unless lockType can be attacked with
// a dictionary. Only password locks qualify.
func CheckLockType(lockType lock.Type) error {
	if lockType != lock.TypePassword {
		return lockerr.Policy("attack.Run", "dictionary attack requires a password lock, got %s", lockType).
			WithContext("lock_type", lockType.String())
	}
	return nil
}

// Run tries candidates against target in order and stops at the first match.
// Only password locks can be attacked this way.
func (d *Dictionary) Run(target Target, candidates []string) (*Result, error) {
	return d.RunContext(context.Background(), target, candidates)
}

// RunContext is Run with cancellation. ctx is checked between candidates,
// never during a derivation. On cancellation the partial result is returned
// together with the context error.
func (d *Dictionary) RunContext(ctx context.Context, target Target, candidates []string) (*Result, error) {
	if err := CheckLockType(target.Type()); err != nil {
		return nil, err
	}

	log := d.logger.With().
		Str("mode", "dictionary").
		Int("candidates", len(candidates)).
		Logger()
	log.Info().Msg("attack started")

	start := d.now()
	result := &Result{Index: -1}

	for i, candidate := range candidates {
		if err := ctx.Err(); err != nil {
			result.Elapsed = d.elapsedSince(start)
			log.Warn().Int("attempts", result.Attempts).Msg("attack cancelled")
			return result, fmt.Errorf("attack cancelled after %d attempts: %w", result.Attempts, err)
		}

		ok, err := target.Attempt(candidate)
		result.Attempts++
		if err != nil {
			return nil, fmt.Errorf("attempt %d: %w", i, err)
		}
		log.Trace().Int("index", i).Bool("match", ok).Msg("candidate tried")

		if ok {
			result.Succeeded = true
			result.Matched = candidate
			result.Index = i
			break
		}
	}

	result.Elapsed = d.elapsedSince(start)

	log.Info().
		Bool("succeeded", result.Succeeded).
		Int("attempts", result.Attempts).
		Dur("elapsed", result.Elapsed).
		Msg("attack finished")

	return result, nil
}

// elapsedSince never goes negative, even if the clock steps backwards
func (d *Dictionary) elapsedSince(start time.Time) time.Duration {
	if elapsed := d.now().Sub(start); elapsed > 0 {
		return elapsed
	}
	return 0
}
