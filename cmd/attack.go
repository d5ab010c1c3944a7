package cmd

import (
	"time"

	"github.com/illarion/locksim/internal/attack"
	"github.com/illarion/locksim/internal/crypto"
	"github.com/illarion/locksim/internal/lock"
	"github.com/illarion/locksim/internal/storage"
	"github.com/illarion/locksim/internal/wordlist"
	"github.com/spf13/cobra"
)

type attackOptions struct {
	lockType   string
	wordlist   string
	iterations int
	keyring    string
	noJournal  bool
}

func newAttackCommand(a *app) *cobra.Command {
	opts := &attackOptions{}

	c := &cobra.Command{
		Use:   "attack [candidate...]",
		Short: "Arm a lock with a lab secret and run a dictionary attack on it",
		Long: "Arms a lock with a lab secret and tries candidates in order until one\n" +
			"matches or the list is exhausted.\n\n" +
			"The secret comes from LOCKSIM_SECRET, the OS keyring (--keyring), or an\n" +
			"interactive prompt. Candidates come from --wordlist, then arguments.",
		Example: "  locksim attack --wordlist rockyou-top100.txt\n" +
			"  LOCKSIM_SECRET=S3cr3t! locksim attack 123456 password S3cr3t!\n" +
			"  locksim attack --keyring lab1 --iterations 100000 --wordlist words.txt",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("type") {
				a.cfg.Lock.Type = opts.lockType
			}
			if cmd.Flags().Changed("iterations") {
				a.cfg.Lock.Iterations = opts.iterations
			}
			if opts.wordlist == "" {
				opts.wordlist = a.cfg.Attack.Wordlist
			}

			// Reject the lock type before prompting for a secret or deriving a key
			lockType, err := a.cfg.LockType()
			if err != nil {
				return err
			}
			if err := attack.CheckLockType(lockType); err != nil {
				return err
			}

			candidates, err := gatherCandidates(opts.wordlist, args)
			if err != nil {
				return err
			}

			secret, err := a.resolveSecret(opts.keyring, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer crypto.ClearBytes(secret)

			return a.runDictionary(cmd, secret, candidates, !opts.noJournal)
		},
	}

	c.Flags().StringVar(&opts.lockType, "type", "password", "Lock type (pin, password, pattern)")
	c.Flags().StringVarP(&opts.wordlist, "wordlist", "w", "", "File with one candidate per line")
	c.Flags().IntVar(&opts.iterations, "iterations", crypto.DefaultIters, "PBKDF2 iterations for the lock credential")
	c.Flags().StringVar(&opts.keyring, "keyring", "", "Read the lab secret from the OS keyring under this label")
	c.Flags().BoolVar(&opts.noJournal, "no-journal", false, "Do not record the run in the journal")

	return c
}

// gatherCandidates loads the wordlist file, if any, followed by extra
func gatherCandidates(path string, extra []string) ([]string, error) {
	var candidates []string
	if path != "" {
		words, err := wordlist.Load(path)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, words...)
	}
	candidates = append(candidates, extra...)

	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}
	return candidates, nil
}

// runDictionary arms a lock per the current config and attacks it
func (a *app) runDictionary(cmd *cobra.Command, secret []byte, candidates []string, journal bool) error {
	// Flags may have changed the lock section after setup
	if err := a.cfg.Validate(); err != nil {
		return err
	}
	engine, err := a.cfg.NewEngine()
	if err != nil {
		return err
	}
	lockType, err := a.cfg.LockType()
	if err != nil {
		return err
	}

	l, err := lock.New(lockType, lock.WithEngine(engine))
	if err != nil {
		return err
	}
	if err := l.SetSecret(string(secret)); err != nil {
		return err
	}
	a.logger.Debug().
		Str("lock_type", lockType.String()).
		Int("iterations", l.Iterations()).
		Msg("lock armed")

	started := time.Now()
	res, runErr := attack.NewDictionary(attack.WithLogger(a.logger)).
		RunContext(cmd.Context(), l, candidates)
	if res == nil {
		return runErr
	}

	printResult(cmd.OutOrStdout(), res)

	if journal && a.cfg.Journal.Enabled {
		a.record(&storage.Run{
			Started:    started,
			Mode:       "dictionary",
			LockType:   lockType.String(),
			Iterations: l.Iterations(),
			Candidates: len(candidates),
			Attempts:   res.Attempts,
			Succeeded:  res.Succeeded,
			MatchIndex: res.Index,
			Elapsed:    res.Elapsed,
		})
	}

	return runErr
}

// record appends run to the journal. Journal failures are logged, not fatal.
func (a *app) record(run *storage.Run) {
	db, err := storage.Open(a.cfg.Journal.Path)
	if err != nil {
		a.logger.Warn().Err(err).Str("path", a.cfg.Journal.Path).Msg("journal unavailable")
		return
	}
	defer db.Close()

	if err := db.Initialize(); err != nil {
		a.logger.Warn().Err(err).Msg("journal initialization failed")
		return
	}
	if err := db.AppendRun(run); err != nil {
		a.logger.Warn().Err(err).Msg("failed to record run")
		return
	}
	a.logger.Debug().Str("run_id", run.ID).Str("path", a.cfg.Journal.Path).Msg("run recorded")
}
