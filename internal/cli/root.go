// Package cli implements the cobra-based CLI commands for mxrunner.
//
// Each subcommand (run, queries, deploy, playbooks, simulator) is
// defined in its own file within this package. This file defines the
// root command that serves as the parent for all subcommands, the
// global flags, and the error-to-exit-code translation.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Catenscia/mxops-runner/internal/model"
)

// Global flag variables shared across all subcommands.
// These are bound to cobra persistent flags on the root command.
var (
	// jsonOutput controls whether command output is formatted as JSON.
	// When false (default), output uses human-readable text format.
	jsonOutput bool

	// verbose raises the log level to debug.
	verbose bool
)

// version, commit, and date are set at build time via ldflags.
// They are injected from the main package.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// logger is the package-wide diagnostic logger. It writes to stderr so
// stdout stays reserved for command output (text or JSON). The level
// is raised to debug by the --verbose flag in NewRootCommand.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix: "mxrunner",
})

// NewRootCommand creates and configures the root cobra command.
// This is the entry point for the entire CLI application.
//
// The root command itself does not perform any action; it only
// provides help text and global flags. Actual functionality is
// provided by the subcommands.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mxrunner",
		Short: "Orchestrate mxops invocations and the local chain simulator",
		Long: `mxrunner wraps the external mxops tool: it runs declarative playbooks
(ordered sequences of mxops invocations sharing a network, a scenario
and an environment) and manages the local chain-simulator Docker stack.

The two tutorial workflows are compiled in: "mxrunner queries" runs the
pair query scenes against mainnet, and "mxrunner deploy" resets and
redeploys the tutorial scenario on devnet.`,

		// SilenceUsage prevents cobra from printing usage on every error.
		SilenceUsage: true,

		// SilenceErrors prevents cobra from printing errors automatically.
		// We format errors ourselves (text or JSON based on --json).
		SilenceErrors: true,

		// Version is displayed when --version flag is used.
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logger.SetLevel(log.DebugLevel)
			}
		},
	}

	// PersistentFlags are inherited by all subcommands.
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	// Register subcommands. Each subcommand is defined in its own file
	// and returns a *cobra.Command.
	rootCmd.AddCommand(NewRunCommand())
	rootCmd.AddCommand(NewQueriesCommand())
	rootCmd.AddCommand(NewDeployCommand())
	rootCmd.AddCommand(NewPlaybooksCommand())
	rootCmd.AddCommand(NewSimulatorCommand())

	return rootCmd
}

// Execute runs the root command and handles exit codes.
// This is the main entry point called from main.go.
//
// CLIError values carry their own exit codes, including verbatim
// pass-through of a failed child process's exit code. Other errors
// default to exit code 1.
func Execute(rootCmd *cobra.Command) {
	// Ctrl-C cancels the context, which kills the current child
	// process and aborts retry loops instead of orphaning them.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		var cliErr *model.CLIError
		if errors.As(err, &cliErr) {
			printError(cliErr.Message, cliErr.Err)
			os.Exit(int(cliErr.Code))
		}

		printError(err.Error(), nil)
		os.Exit(int(model.ExitGeneralError))
	}
}

// printError outputs an error message in the appropriate format
// (JSON or text) based on the --json global flag. Errors always go to
// stderr, even in JSON mode, because stdout is reserved for successful
// command output.
func printError(message string, underlying error) {
	if jsonOutput {
		errObj := map[string]any{
			"error": map[string]any{
				"message": message,
			},
		}
		if underlying != nil {
			if errMap, ok := errObj["error"].(map[string]any); ok {
				errMap["detail"] = underlying.Error()
			}
		}
		data, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		if underlying != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", message, underlying)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %s\n", message)
		}
	}
}

// IsJSONOutput returns whether the --json flag is set.
// Subcommands use this to decide their output format.
func IsJSONOutput() bool {
	return jsonOutput
}
