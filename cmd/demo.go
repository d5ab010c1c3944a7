package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Lab-only fixtures for the demo command
const demoSecret = "S3cr3t!"

var demoCandidates = []string{"123456", "password", "letmein", "S3cr3t!", "admin"}

func newDemoCommand(a *app) *cobra.Command {
	var journal bool

	c := &cobra.Command{
		Use:   "demo",
		Short: "Attack a password lock armed with a fixed lab secret",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// The demo always targets a password lock
			a.cfg.Lock.Type = "password"

			fmt.Fprintln(cmd.OutOrStdout(), "Testing password dictionary attack...")
			return a.runDictionary(cmd, []byte(demoSecret), demoCandidates, journal)
		},
	}

	c.Flags().BoolVar(&journal, "journal", false, "Record the demo run in the journal")
	return c
}
