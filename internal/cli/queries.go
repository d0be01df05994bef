// Package cli — queries.go implements the "mxrunner queries" command,
// a named shortcut for the built-in queries playbook. It runs the pair
// query scenes against mainnet with detailed output, reproducing the
// original tutorial script.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/Catenscia/mxops-runner/internal/playbook"
)

// NewQueriesCommand creates the "queries" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewQueriesCommand() *cobra.Command {
	flags := &runFlags{}

	cmd := &cobra.Command{
		Use:   "queries",
		Short: "Run the pair query scenes against mainnet",
		Long: `Run the built-in queries playbook: a single mxops execution against
mainnet in the "queries_tutorial" scenario with the detailed output
flag, covering the single-pair and all-pairs query scenes.

Equivalent to: mxrunner run queries

Examples:
  mxrunner queries
  mxrunner queries --dry-run`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			p, _ := playbook.Builtin("queries")
			return runPlaybook(cmd.Context(), p, flags)
		},
	}

	addRunFlags(cmd, flags)
	return cmd
}
