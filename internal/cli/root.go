// Package cli implements the gavel command-line interface.
package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gavel",
	Short: "Query API over parliamentary proceedings",
	Long: `Gavel serves relevance-ranked listings of parliamentary questions,
motions and bills, plus member and ministry profiles, over an HTTP API
backed by a read-only Postgres corpus.`,
	SilenceUsage: true,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}
