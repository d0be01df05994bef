// playbook.go implements loading, validation and compilation of
// playbook YAML files.
//
// Compilation turns a playbook into a flat list of invocations (argv
// vectors) without executing anything, which is what makes --dry-run
// and the argument construction tests possible.
package playbook

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Catenscia/mxops-runner/internal/model"
	"github.com/Catenscia/mxops-runner/internal/mxops"
)

// Playbook describes one runnable workflow: a sequence of external
// tool invocations sharing a network, a scenario and an environment.
type Playbook struct {
	// Name identifies the playbook in logs and listings.
	Name string `yaml:"name"`

	// Description is an optional human-readable summary.
	Description string `yaml:"description,omitempty"`

	// Network is the target network, passed verbatim to every step.
	Network model.Network `yaml:"network"`

	// Scenario is the scenario name shared by every step.
	Scenario string `yaml:"scenario"`

	// Env lists environment variables exported to every step's child
	// process. Values are always strings, even for numeric amounts.
	Env map[string]string `yaml:"env,omitempty"`

	// Steps are executed strictly in order.
	Steps []Step `yaml:"steps"`
}

// Step is one entry in a playbook's step list. Which fields are
// meaningful depends on the action.
type Step struct {
	// Action selects the subcommand: "execute" or "data-delete".
	Action model.StepAction `yaml:"action"`

	// Scenes are the scene file or directory paths for execute steps.
	Scenes []string `yaml:"scenes,omitempty"`

	// Debug requests detailed output (execute steps, -d flag).
	Debug bool `yaml:"debug,omitempty"`

	// Clean deletes scenario data before execution (execute steps, -c flag).
	Clean bool `yaml:"clean,omitempty"`

	// Checkpoint restricts a data-delete step to one checkpoint.
	Checkpoint string `yaml:"checkpoint,omitempty"`

	// All makes a data-delete step remove every scenario of the network.
	All bool `yaml:"all,omitempty"`
}

// Invocation is one compiled external tool invocation.
type Invocation struct {
	// Action is the step action this invocation came from.
	Action model.StepAction

	// Argv is the complete argument vector, starting with the
	// subcommand name.
	Argv []string
}

// Load reads and parses a playbook YAML file, then validates it.
// Unknown YAML fields are rejected so typos (e.g. "scene:" instead of
// "scenes:") fail loudly instead of silently running the wrong thing.
func Load(path string) (*Playbook, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitPlaybookInvalid,
			fmt.Sprintf("failed to read playbook %s", path), err)
	}
	defer func() { _ = f.Close() }()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)

	var p Playbook
	if err := dec.Decode(&p); err != nil {
		return nil, model.WrapCLIError(model.ExitPlaybookInvalid,
			fmt.Sprintf("failed to parse playbook %s", path), err)
	}

	if err := p.Validate(); err != nil {
		return nil, model.WrapCLIError(model.ExitPlaybookInvalid,
			fmt.Sprintf("invalid playbook %s", path), err)
	}

	return &p, nil
}

// Validate checks the playbook for completeness and supported values.
func (p *Playbook) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("playbook name must not be empty")
	}
	if !p.Network.IsValid() {
		return fmt.Errorf("invalid network %q", p.Network)
	}
	if p.Scenario == "" {
		return fmt.Errorf("scenario name must not be empty")
	}
	if len(p.Steps) == 0 {
		return fmt.Errorf("playbook has no steps")
	}
	if err := model.ValidateEnv(p.Env); err != nil {
		return err
	}

	for i, step := range p.Steps {
		if !step.Action.IsValid() {
			return fmt.Errorf("step %d: invalid action %q", i+1, step.Action)
		}
		if _, err := step.compile(p); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return nil
}

// Invocations compiles the playbook into the ordered argument vectors
// to run. The playbook must be valid; Load guarantees that.
func (p *Playbook) Invocations() ([]Invocation, error) {
	invocations := make([]Invocation, 0, len(p.Steps))
	for i, step := range p.Steps {
		argv, err := step.compile(p)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		invocations = append(invocations, Invocation{Action: step.Action, Argv: argv})
	}
	return invocations, nil
}

// compile builds and validates the argument vector for one step,
// filling in the playbook-level network and scenario.
func (s Step) compile(p *Playbook) ([]string, error) {
	switch s.Action {
	case model.ActionExecute:
		args := mxops.ExecuteArgs{
			Network:  p.Network,
			Scenario: p.Scenario,
			Debug:    s.Debug,
			Clean:    s.Clean,
			Scenes:   s.Scenes,
		}
		if err := args.Validate(); err != nil {
			return nil, err
		}
		return args.Argv(), nil

	case model.ActionDataDelete:
		args := mxops.DataDeleteArgs{
			Network:    p.Network,
			Scenario:   p.Scenario,
			Checkpoint: s.Checkpoint,
			All:        s.All,
			// Playbook runs are non-interactive: always skip the
			// tool's confirmation prompt.
			Yes: true,
		}
		if s.All {
			// The all flag replaces the scenario target.
			args.Scenario = ""
		}
		if err := args.Validate(); err != nil {
			return nil, err
		}
		return args.Argv(), nil

	default:
		return nil, fmt.Errorf("invalid action %q", s.Action)
	}
}
