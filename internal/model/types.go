// types.go defines the networks and step actions accepted by the
// external tool, environment entry validation, and the exit code /
// error plumbing shared by every command.
//
// mxrunner itself holds no persistent state: a playbook is read, turned
// into a sequence of external tool invocations, and executed. These
// types describe that vocabulary.
package model

import (
	"fmt"
	"sort"
	"strings"
)

// Network identifies the blockchain network an invocation targets.
// The value is passed verbatim to the external tool's -n flag, so the
// original spelling is preserved even though validation is
// case-insensitive. mxops historically accepted both the short enum
// names (MAIN, DEV, TEST, LOCAL) and the long forms (mainnet, devnet,
// testnet, localnet, chain-simulator); mxrunner accepts the same set.
type Network string

// knownNetworks maps the lowercased accepted spellings to true.
// Both the legacy short names and the long names are valid because
// scene repositories in the wild use either form.
var knownNetworks = map[string]bool{
	"main":            true,
	"mainnet":         true,
	"dev":             true,
	"devnet":          true,
	"test":            true,
	"testnet":         true,
	"local":           true,
	"localnet":        true,
	"chain-simulator": true,
}

// String returns the network exactly as it was written by the user.
func (n Network) String() string {
	return string(n)
}

// IsValid reports whether the network name is one of the spellings
// accepted by the external tool.
func (n Network) IsValid() bool {
	return knownNetworks[strings.ToLower(string(n))]
}

// ParseNetwork validates a network name and returns it as a Network.
// The original spelling is kept so the value can be forwarded to the
// external tool unchanged.
func ParseNetwork(s string) (Network, error) {
	n := Network(s)
	if !n.IsValid() {
		return "", fmt.Errorf(
			"invalid network %q (valid: mainnet, devnet, testnet, localnet, chain-simulator and the short forms MAIN, DEV, TEST, LOCAL)", s)
	}
	return n, nil
}

// StepAction identifies what a playbook step does. Each action maps to
// one subcommand of the external tool.
type StepAction string

const (
	// ActionExecute runs scene files: `<tool> execute -n ... -s ... <scenes>`.
	ActionExecute StepAction = "execute"

	// ActionDataDelete removes persisted scenario data:
	// `<tool> data delete -n ... -s ...`.
	ActionDataDelete StepAction = "data-delete"
)

// String returns the string representation of the step action.
func (a StepAction) String() string {
	return string(a)
}

// IsValid checks whether the action is one of the supported step kinds.
func (a StepAction) IsValid() bool {
	switch a {
	case ActionExecute, ActionDataDelete:
		return true
	default:
		return false
	}
}

// ParseStepAction converts a string to a StepAction.
// Returns an error if the string does not match any supported action.
func ParseStepAction(s string) (StepAction, error) {
	action := StepAction(strings.ToLower(s))
	if !action.IsValid() {
		return "", fmt.Errorf("invalid step action %q (valid: execute, data-delete)", s)
	}
	return action, nil
}

// ValidateEnv checks that every entry of an environment map can be
// exported to a child process. Keys must be non-empty and must not
// contain '=' (the key/value separator in the process environment) or
// NUL. Values are unrestricted: amounts, wait times and other playbook
// parameters are always plain strings.
func ValidateEnv(env map[string]string) error {
	for k := range env {
		if k == "" {
			return fmt.Errorf("environment variable with empty name")
		}
		if strings.ContainsAny(k, "=\x00") {
			return fmt.Errorf("invalid environment variable name %q", k)
		}
	}
	return nil
}

// FlattenEnv converts an environment map into the KEY=VALUE form
// expected by os/exec, sorted by key so the resulting child environment
// is deterministic.
func FlattenEnv(env map[string]string) []string {
	if len(env) == 0 {
		return nil
	}
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	entries := make([]string, 0, len(keys))
	for _, k := range keys {
		entries = append(entries, k+"="+env[k])
	}
	return entries
}

// ExitCode defines the CLI exit codes. Scripts and CI systems rely on
// these to determine the outcome of a command, so the values are part
// of the tool's contract.
//
// When the external tool exits non-zero, mxrunner exits with that same
// code. The named codes below are only used for failures that happen
// before or outside a child invocation.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitToolNotFound indicates the external mxops binary could not be
	// located via the settings file, the --tool flag, or PATH.
	ExitToolNotFound ExitCode = 2

	// ExitDockerNotRunning indicates the Docker daemon is not
	// accessible (simulator commands only).
	ExitDockerNotRunning ExitCode = 3

	// ExitPlaybookInvalid indicates a playbook file could not be parsed
	// or failed validation.
	ExitPlaybookInvalid ExitCode = 4

	// ExitUserCancelled indicates the user interrupted the run.
	ExitUserCancelled ExitCode = 7
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes, including verbatim pass-through of
// a failed child process's own exit code.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
