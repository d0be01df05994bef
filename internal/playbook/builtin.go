// builtin.go defines the compiled-in playbooks.
//
// These two playbooks reproduce the original tutorial shell scripts:
// "queries" runs the read-only query scenes against mainnet, "deploy"
// wipes the devnet tutorial scenario and redeploys it. The argument
// vectors they compile to are pinned by tests and must not change.
package playbook

import (
	"sort"

	"github.com/Catenscia/mxops-runner/internal/model"
)

// builtins maps playbook names to factory functions. Factories return
// fresh values so callers can mutate the result (e.g. override env)
// without affecting later lookups.
var builtins = map[string]func() *Playbook{
	"queries": newQueriesPlaybook,
	"deploy":  newDeployPlaybook,
}

// Builtin returns the named built-in playbook, or false when the name
// is not a built-in.
func Builtin(name string) (*Playbook, bool) {
	factory, ok := builtins[name]
	if !ok {
		return nil, false
	}
	return factory(), true
}

// BuiltinNames returns the sorted names of all built-in playbooks.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// newQueriesPlaybook reproduces the query tutorial script:
//
//	mxops execute -n mainnet -s queries_tutorial -d \
//	    mxops_scenes/single_pair_queries.yaml \
//	    mxops_scenes/all_pairs_queries.yaml
func newQueriesPlaybook() *Playbook {
	return &Playbook{
		Name:        "queries",
		Description: "Run the pair query scenes against mainnet with detailed output",
		Network:     "mainnet",
		Scenario:    "queries_tutorial",
		Steps: []Step{
			{
				Action: model.ActionExecute,
				Debug:  true,
				Scenes: []string{
					"mxops_scenes/single_pair_queries.yaml",
					"mxops_scenes/all_pairs_queries.yaml",
				},
			},
		},
	}
}

// newDeployPlaybook reproduces the deploy tutorial script: export the
// deposit amount and wait time, wipe any prior scenario data on
// devnet, then execute the account setup and deploy scenes.
func newDeployPlaybook() *Playbook {
	return &Playbook{
		Name:        "deploy",
		Description: "Reset the tutorial scenario on devnet and deploy the scene",
		Network:     "DEV",
		Scenario:    "mxops_tutorial_enhanced_first_scene",
		Env: map[string]string{
			"AMOUNT":    "1000000000000000000",
			"WAIT_TIME": "1",
		},
		Steps: []Step{
			{Action: model.ActionDataDelete},
			{
				Action: model.ActionExecute,
				Scenes: []string{
					"mxops_scenes/accounts.yaml",
					"mxops_scenes/deploy.yaml",
				},
			},
		},
	}
}
