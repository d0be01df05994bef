// Package cli — run.go implements the "mxrunner run" command and the
// playbook execution engine shared with the queries and deploy
// commands.
//
// The engine compiles a playbook into invocations, resolves the
// external tool, and runs each invocation sequentially. By default the
// first failing step aborts the run and its exit code becomes the
// process exit code; --keep-going restores the original shell-script
// behavior where every step runs and only the last step's status
// matters.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Catenscia/mxops-runner/internal/config"
	"github.com/Catenscia/mxops-runner/internal/model"
	"github.com/Catenscia/mxops-runner/internal/mxops"
	"github.com/Catenscia/mxops-runner/internal/playbook"
)

// runFlags holds the flag values shared by every playbook-running
// command (run, queries, deploy).
type runFlags struct {
	// tool overrides the external tool path from the settings file.
	tool string

	// dryRun prints the resolved command lines without executing.
	dryRun bool

	// keepGoing continues past failing steps; the run's exit status is
	// then the status of the last step, matching the original scripts.
	keepGoing bool
}

// addRunFlags registers the shared playbook execution flags.
func addRunFlags(cmd *cobra.Command, flags *runFlags) {
	cmd.Flags().StringVar(&flags.tool, "tool", "", "Path or name of the mxops binary (default: settings file, then PATH)")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Print the commands without executing them")
	cmd.Flags().BoolVar(&flags.keepGoing, "keep-going", false, "Do not stop at the first failing step")
}

// NewRunCommand creates the "run" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewRunCommand() *cobra.Command {
	flags := &runFlags{}

	cmd := &cobra.Command{
		Use:   "run <playbook>",
		Short: "Run a playbook file or a built-in playbook",
		Long: `Run a playbook: an ordered sequence of mxops invocations described
in a YAML file, or one of the built-in playbooks (see "mxrunner playbooks").

Examples:
  mxrunner run deploy
  mxrunner run ./playbooks/redeploy.yaml
  mxrunner run ./playbooks/redeploy.yaml --dry-run
  mxrunner run deploy --keep-going`,

		// Exactly one positional argument (playbook name or path).
		Args: cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolvePlaybook(args[0])
			if err != nil {
				return err
			}
			return runPlaybook(cmd.Context(), p, flags)
		},
	}

	addRunFlags(cmd, flags)
	return cmd
}

// resolvePlaybook interprets the argument as a built-in playbook name
// first, then as a file path. Built-ins win so that "mxrunner run
// deploy" always means the compiled-in workflow, even if a file named
// "deploy" exists in the working directory.
func resolvePlaybook(arg string) (*playbook.Playbook, error) {
	if p, ok := playbook.Builtin(arg); ok {
		return p, nil
	}
	if _, err := os.Stat(arg); err != nil {
		return nil, model.NewCLIError(model.ExitPlaybookInvalid,
			fmt.Sprintf("playbook %q is neither a built-in (%s) nor a file",
				arg, strings.Join(playbook.BuiltinNames(), ", ")))
	}
	return playbook.Load(arg)
}

// runPlaybook is the shared execution engine.
func runPlaybook(ctx context.Context, p *playbook.Playbook, flags *runFlags) error {
	settings, err := config.Load()
	if err != nil {
		return err
	}

	tool := flags.tool
	if tool == "" {
		tool = settings.ToolPath
	}
	runner := mxops.NewRunner(tool)

	invocations, err := p.Invocations()
	if err != nil {
		return model.WrapCLIError(model.ExitPlaybookInvalid,
			fmt.Sprintf("invalid playbook %q", p.Name), err)
	}

	if flags.dryRun {
		printDryRun(p, runner, invocations)
		return nil
	}

	// Resolve the tool up front so a missing binary fails before the
	// first step rather than halfway through a partially executed run.
	resolved, err := mxops.ResolveTool(tool)
	if err != nil {
		return err
	}
	logger.Debug("resolved external tool", "tool", tool, "path", resolved)

	// lastErr tracks only the most recent step's outcome. With
	// --keep-going the run's status is the last step's status, exactly
	// like the original shell scripts; without it the first failure
	// returns immediately.
	var lastErr error
	for i, inv := range invocations {
		logger.Info("running step",
			"playbook", p.Name,
			"step", fmt.Sprintf("%d/%d", i+1, len(invocations)),
			"action", inv.Action.String())
		logger.Debug("invoking", "command", runner.CommandLine(inv.Argv))

		lastErr = runner.Run(ctx, inv.Argv, p.Env)
		if lastErr != nil {
			if !flags.keepGoing {
				return lastErr
			}
			logger.Warn("step failed, continuing",
				"step", fmt.Sprintf("%d/%d", i+1, len(invocations)),
				"error", lastErr)
		}
	}
	if lastErr != nil {
		return lastErr
	}

	printRunResult(p.Name, len(invocations))
	return nil
}

// printDryRun outputs the commands a playbook would run, without
// executing anything.
func printDryRun(p *playbook.Playbook, runner *mxops.Runner, invocations []playbook.Invocation) {
	if IsJSONOutput() {
		commands := make([]string, 0, len(invocations))
		for _, inv := range invocations {
			commands = append(commands, runner.CommandLine(inv.Argv))
		}
		result := map[string]any{
			"playbook": p.Name,
			"tool":     runner.Tool(),
			"commands": commands,
		}
		if len(p.Env) > 0 {
			result["env"] = p.Env
		}
		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(data))
		return
	}

	// Text format mirrors what a shell script doing the same work
	// would look like: exports first, then the commands in order.
	for _, entry := range model.FlattenEnv(p.Env) {
		fmt.Printf("export %s\n", entry)
	}
	for _, inv := range invocations {
		fmt.Println(runner.CommandLine(inv.Argv))
	}
}

// printRunResult outputs the run summary in text or JSON format.
func printRunResult(name string, steps int) {
	if IsJSONOutput() {
		result := map[string]any{
			"playbook": name,
			"status":   "completed",
			"steps":    steps,
		}
		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(data))
		return
	}
	fmt.Printf("Playbook %q completed (%d steps)\n", name, steps)
}
