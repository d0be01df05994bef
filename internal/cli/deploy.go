// Package cli — deploy.go implements the "mxrunner deploy" command,
// a named shortcut for the built-in deploy playbook. It wipes the
// tutorial scenario data on devnet and redeploys the scene, with the
// amount and wait-time variables exported to the tool.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/Catenscia/mxops-runner/internal/playbook"
)

// NewDeployCommand creates the "deploy" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewDeployCommand() *cobra.Command {
	flags := &runFlags{}

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Reset and redeploy the tutorial scenario on devnet",
		Long: `Run the built-in deploy playbook: export AMOUNT and WAIT_TIME, delete
any persisted data of the "mxops_tutorial_enhanced_first_scene"
scenario on devnet, then execute the account setup and deploy scenes.

Unlike the original shell script, a failing data deletion aborts the
run (fail fast); pass --keep-going to continue regardless.

Equivalent to: mxrunner run deploy

Examples:
  mxrunner deploy
  mxrunner deploy --keep-going
  mxrunner deploy --dry-run`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			p, _ := playbook.Builtin("deploy")
			return runPlaybook(cmd.Context(), p, flags)
		},
	}

	addRunFlags(cmd, flags)
	return cmd
}
