// args.go defines the argument vector builders for the external tool's
// subcommands.
//
// The builders are pure functions with a fixed, documented ordering:
// scripts and tests depend on the exact argv produced, so flags are
// never reordered. Flag order follows the upstream tutorial scripts:
// network first, then scenario, then boolean flags, then positional
// scene paths.
package mxops

import (
	"fmt"

	"github.com/Catenscia/mxops-runner/internal/model"
)

// ExecuteArgs describes one `<tool> execute` invocation.
type ExecuteArgs struct {
	// Network is passed verbatim to the -n flag.
	Network model.Network

	// Scenario is the name of the scenario the scenes run in (-s flag).
	Scenario string

	// Debug requests detailed output (-d flag).
	Debug bool

	// Clean deletes the scenario data before the execution (-c flag).
	Clean bool

	// Scenes are the scene file or directory paths, appended as
	// positional arguments in the given order.
	Scenes []string
}

// Argv returns the full argument vector for the execute subcommand:
//
//	execute -n <network> -s <scenario> [-d] [-c] <scene>...
func (a ExecuteArgs) Argv() []string {
	argv := []string{"execute", "-n", a.Network.String(), "-s", a.Scenario}
	if a.Debug {
		argv = append(argv, "-d")
	}
	if a.Clean {
		argv = append(argv, "-c")
	}
	return append(argv, a.Scenes...)
}

// Validate checks that the invocation is complete enough to run.
func (a ExecuteArgs) Validate() error {
	if !a.Network.IsValid() {
		return fmt.Errorf("execute: invalid network %q", a.Network)
	}
	if a.Scenario == "" {
		return fmt.Errorf("execute: scenario name must not be empty")
	}
	if len(a.Scenes) == 0 {
		return fmt.Errorf("execute: at least one scene path is required")
	}
	for _, scene := range a.Scenes {
		if scene == "" {
			return fmt.Errorf("execute: empty scene path")
		}
	}
	return nil
}

// DataDeleteArgs describes one `<tool> data delete` invocation.
type DataDeleteArgs struct {
	// Network is passed verbatim to the -n flag.
	Network model.Network

	// Scenario is the scenario whose data is deleted. Empty is allowed
	// only when All is set.
	Scenario string

	// Checkpoint optionally restricts the deletion to one checkpoint
	// of the scenario (-c flag).
	Checkpoint string

	// All deletes every scenario saved for the network (-a flag).
	All bool

	// Yes skips the tool's interactive confirmation (-y flag).
	// Playbook steps always set this: a run must not block on a prompt.
	Yes bool
}

// Argv returns the full argument vector for the data delete subcommand:
//
//	data delete -n <network> [-s <scenario>] [-c <checkpoint>] [-a] [-y]
func (a DataDeleteArgs) Argv() []string {
	argv := []string{"data", "delete", "-n", a.Network.String()}
	if a.Scenario != "" {
		argv = append(argv, "-s", a.Scenario)
	}
	if a.Checkpoint != "" {
		argv = append(argv, "-c", a.Checkpoint)
	}
	if a.All {
		argv = append(argv, "-a")
	}
	if a.Yes {
		argv = append(argv, "-y")
	}
	return argv
}

// Validate checks that the deletion target is well defined.
func (a DataDeleteArgs) Validate() error {
	if !a.Network.IsValid() {
		return fmt.Errorf("data delete: invalid network %q", a.Network)
	}
	if a.Scenario == "" && !a.All {
		return fmt.Errorf("data delete: a scenario name or the all flag is required")
	}
	if a.Scenario != "" && a.All {
		return fmt.Errorf("data delete: scenario name and all flag are mutually exclusive")
	}
	return nil
}
