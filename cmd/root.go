package cmd

import (
	"context"
	"io"
	"os"

	"github.com/illarion/locksim/internal/config"
	"github.com/illarion/locksim/internal/logging"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// app carries state shared by every subcommand once flags are parsed
type app struct {
	configPath string
	logLevel   string

	cfg    *config.Config
	logger zerolog.Logger
	lookup func(string) (string, bool)
	stdin  *os.File
}

// NewRootCommand builds the locksim command tree
func NewRootCommand() *cobra.Command {
	return newRootCommand(&app{
		logger: zerolog.Nop(),
		lookup: os.LookupEnv,
		stdin:  os.Stdin,
	})
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "locksim",
		Short: "Simulated credential lock and dictionary attack lab",
		Long: "locksim models a PIN, password, or pattern lock protected by salted\n" +
			"PBKDF2-HMAC-SHA256, and runs sequential dictionary attacks against it.\n" +
			"For educational security testing only.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd.ErrOrStderr())
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to a YAML config file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")

	root.AddCommand(
		newDemoCommand(a),
		newAttackCommand(a),
		newHistoryCommand(a),
		newWordlistCommand(a),
	)

	return root
}

// setup loads configuration and builds the logger
func (a *app) setup(logOut io.Writer) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(a.lookup); err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(logOut, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger
	return nil
}

// Execute runs the CLI and returns the process exit code
func Execute(ctx context.Context, args []string) int {
	root := NewRootCommand()
	root.SetArgs(args)

	if err := root.ExecuteContext(ctx); err != nil {
		return HandleError(root.ErrOrStderr(), err)
	}
	return 0
}
