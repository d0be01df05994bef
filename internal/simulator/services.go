// services.go defines the simulator service catalog and the selection
// logic (whitelist, blacklist, dependency closure).
//
// The dependency map lists LOGICAL dependencies — what a service needs
// to function — which is a superset of the compose file's depends_on
// startup ordering. It must be kept in sync with the embedded compose
// definition in chain_simulator_compose.yaml.
package simulator

import (
	"fmt"
	"sort"
)

// serviceDependencies maps each service to the services it needs to
// function. Keys are the full service catalog.
var serviceDependencies = map[string][]string{
	"redis":           {},
	"postgres":        {},
	"events-notifier": {"redis"},
	"elasticsearch":   {},
	"elastic-indexer": {"elasticsearch"},
	"chain-simulator": {"elasticsearch", "events-notifier"},
	"api":             {"elasticsearch", "redis"},
	"explorer":        {},
	"lite-wallet":     {},
}

// ChainSimulatorService is the name of the core service. Startup
// health polling only applies when this service is selected.
const ChainSimulatorService = "chain-simulator"

// AllServices returns the sorted names of every service in the catalog.
func AllServices() []string {
	names := make([]string, 0, len(serviceDependencies))
	for name := range serviceDependencies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve computes the set of services to run.
//
// Selection rules, applied in order:
//  1. Start from the include whitelist, or the full catalog when the
//     whitelist is nil.
//  2. When autoDeps is true, transitively add every logical dependency
//     of the selected services.
//  3. Remove the excluded services. Exclusion wins over the dependency
//     closure: excluding elasticsearch while including the indexer is
//     the caller's responsibility.
//
// Unknown service names in either list are an error. The result is
// sorted for deterministic compose filtering and logging.
func Resolve(include, exclude []string, autoDeps bool) ([]string, error) {
	if err := validateNames(include); err != nil {
		return nil, err
	}
	if err := validateNames(exclude); err != nil {
		return nil, err
	}

	selected := make(map[string]bool)
	if include == nil {
		for name := range serviceDependencies {
			selected[name] = true
		}
	} else {
		for _, name := range include {
			selected[name] = true
		}
	}

	if autoDeps {
		// Breadth-first closure over the dependency map. The queue
		// starts with the current selection and grows as dependencies
		// are discovered.
		queue := make([]string, 0, len(selected))
		for name := range selected {
			queue = append(queue, name)
		}
		for len(queue) > 0 {
			name := queue[0]
			queue = queue[1:]
			for _, dep := range serviceDependencies[name] {
				if !selected[dep] {
					selected[dep] = true
					queue = append(queue, dep)
				}
			}
		}
	}

	for _, name := range exclude {
		delete(selected, name)
	}

	result := make([]string, 0, len(selected))
	for name := range selected {
		result = append(result, name)
	}
	sort.Strings(result)
	return result, nil
}

// validateNames checks that every name belongs to the service catalog.
func validateNames(names []string) error {
	for _, name := range names {
		if _, ok := serviceDependencies[name]; !ok {
			return fmt.Errorf("unknown service %q (valid services: %v)", name, AllServices())
		}
	}
	return nil
}
