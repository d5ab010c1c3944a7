package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/illarion/locksim/internal/storage"
	"github.com/spf13/cobra"
)

func newHistoryCommand(a *app) *cobra.Command {
	var asJSON bool

	c := &cobra.Command{
		Use:   "history",
		Short: "List recorded attack runs",
		Long: "Lists attack runs recorded in the journal. The journal keeps counts and\n" +
			"timings only, never secrets or candidates.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := a.openJournal()
			if err != nil {
				return err
			}
			if db == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded")
				return nil
			}
			defer db.Close()

			runs, err := db.Runs()
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(runs)
			}
			printRuns(cmd.OutOrStdout(), runs)
			return nil
		},
	}
	c.Flags().BoolVar(&asJSON, "json", false, "Print runs as JSON")

	c.AddCommand(&cobra.Command{
		Use:   "show <run-id>",
		Short: "Show one recorded run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.openJournal()
			if err != nil {
				return err
			}
			if db == nil {
				return storage.ErrNotInitialized
			}
			defer db.Close()

			run, err := db.GetRun(args[0])
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(run)
		},
	})

	c.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete every recorded run and compact the journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := a.openJournal()
			if err != nil {
				return err
			}
			if db == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded")
				return nil
			}
			defer db.Close()

			if err := db.Initialize(); err != nil {
				return err
			}
			if err := db.Clear(); err != nil {
				return err
			}
			if err := db.Compact(); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: compaction failed: %s\n", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Journal cleared")
			return nil
		},
	})

	return c
}

// openJournal opens the journal if it exists. A missing file yields nil, nil.
func (a *app) openJournal() (*storage.Storage, error) {
	if _, err := os.Stat(a.cfg.Journal.Path); errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return storage.Open(a.cfg.Journal.Path)
}
