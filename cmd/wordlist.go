package cmd

import (
	"github.com/illarion/locksim/internal/wordlist"
	"github.com/spf13/cobra"
)

func newWordlistCommand(_ *app) *cobra.Command {
	c := &cobra.Command{
		Use:   "wordlist",
		Short: "Inspect candidate wordlists",
	}

	c.AddCommand(&cobra.Command{
		Use:   "diff <old> <new>",
		Short: "Show candidates added or removed between two wordlists",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := wordlist.Load(args[0])
			if err != nil {
				return err
			}
			b, err := wordlist.Load(args[1])
			if err != nil {
				return err
			}

			printDelta(cmd.OutOrStdout(), wordlist.Diff(a, b))
			return nil
		},
	})

	return c
}
