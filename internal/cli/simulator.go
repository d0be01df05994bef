// Package cli — simulator.go implements the "mxrunner simulator"
// command group: start, stop and status for the local chain-simulator
// Docker stack.
//
// start filters the compose definition down to the selected services
// (auto-including logical dependencies unless disabled), writes it
// under the data directory, brings the project up, and waits for the
// chain simulator to accept requests. stop tears the same project
// down. status lists the project's containers via the Docker SDK.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Catenscia/mxops-runner/internal/config"
	"github.com/Catenscia/mxops-runner/internal/model"
	"github.com/Catenscia/mxops-runner/internal/simulator"
)

// simulatorStartFlags holds the flag values for "simulator start".
type simulatorStartFlags struct {
	// services is the whitelist of services to run (default: all).
	services []string

	// exclude is the blacklist applied after dependency resolution.
	exclude []string

	// noAutoDeps disables the automatic inclusion of logical
	// dependencies of the selected services.
	noAutoDeps bool
}

// NewSimulatorCommand creates the "simulator" command group.
// It is called from NewRootCommand to register as a subcommand.
func NewSimulatorCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulator",
		Short: "Manage the local chain-simulator Docker stack",
		Long: `Manage the docker-compose stack the chain-simulator network runs on:
the simulator node itself plus its supporting services (redis,
postgres, events notifier, elasticsearch, indexer, API, explorer,
lite wallet).`,
	}

	cmd.AddCommand(newSimulatorStartCommand())
	cmd.AddCommand(newSimulatorStopCommand())
	cmd.AddCommand(newSimulatorStatusCommand())

	return cmd
}

// newSimulatorStartCommand creates the "simulator start" subcommand.
func newSimulatorStartCommand() *cobra.Command {
	flags := &simulatorStartFlags{}

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start the chain-simulator stack",
		Long: `Start the chain-simulator docker-compose stack and wait until the
simulator accepts requests.

Examples:
  mxrunner simulator start
  mxrunner simulator start --services chain-simulator
  mxrunner simulator start --exclude explorer --exclude lite-wallet
  mxrunner simulator start --services api --no-auto-deps`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulatorStart(cmd.Context(), flags)
		},
	}

	cmd.Flags().StringSliceVar(&flags.services, "services", nil,
		"Services to include (default: all)")
	cmd.Flags().StringSliceVar(&flags.exclude, "exclude", nil,
		"Services to exclude")
	cmd.Flags().BoolVar(&flags.noAutoDeps, "no-auto-deps", false,
		"Don't auto-include service dependencies")

	return cmd
}

// runSimulatorStart is the main logic function for "simulator start".
func runSimulatorStart(ctx context.Context, flags *simulatorStartFlags) error {
	settings, err := config.Load()
	if err != nil {
		return err
	}

	// nil means "no whitelist given"; an explicit empty list would
	// select nothing, which Resolve treats the same as nil.
	var include []string
	if len(flags.services) > 0 {
		include = flags.services
	}

	services, err := simulator.Resolve(include, flags.exclude, !flags.noAutoDeps)
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "invalid service selection", err)
	}
	logger.Info("starting simulator services", "services", services)

	// Fail before touching compose if the daemon is unreachable.
	client, err := simulator.NewClient()
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()
	if err := client.Ping(ctx); err != nil {
		return err
	}
	logger.Debug("connected to Docker daemon")

	content, err := simulator.LoadComposeContent(settings.SimulatorComposePath)
	if err != nil {
		return err
	}
	filtered, err := simulator.FilterCompose(content, services)
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to filter compose file", err)
	}
	// Port preflight: a taken host port would surface as a container
	// crash loop after compose up, so report it before starting.
	taken, err := simulator.CheckPorts(filtered)
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to check host ports", err)
	}
	if len(taken) > 0 {
		descriptions := make([]string, 0, len(taken))
		for _, p := range taken {
			descriptions = append(descriptions, fmt.Sprintf("%d (%s)", p.Port, p.Service))
		}
		return model.NewCLIError(model.ExitGeneralError,
			fmt.Sprintf("host ports already in use: %s", strings.Join(descriptions, ", ")))
	}

	composePath, err := simulator.WriteComposeFile(settings.DataDir, filtered)
	if err != nil {
		return err
	}
	logger.Debug("wrote compose file", "path", composePath)

	if err := simulator.ComposeUp(ctx, composePath); err != nil {
		return err
	}

	// The readiness poll only makes sense when the simulator node
	// itself is part of the selection.
	waited := false
	for _, svc := range services {
		if svc == simulator.ChainSimulatorService {
			waited = true
			logger.Info("waiting for the chain simulator to accept requests",
				"proxy", settings.SimulatorProxyURL)
			checker := &simulator.HealthChecker{ProxyURL: settings.SimulatorProxyURL}
			if err := checker.WaitReady(ctx); err != nil {
				return err
			}
			break
		}
	}

	printSimulatorStartResult(services, waited)
	return nil
}

// printSimulatorStartResult outputs the start summary.
func printSimulatorStartResult(services []string, waited bool) {
	if IsJSONOutput() {
		result := map[string]any{
			"action":   "started",
			"services": services,
			"ready":    waited,
		}
		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(data))
		return
	}
	fmt.Printf("Started chain-simulator stack (%d services)\n", len(services))
}

// newSimulatorStopCommand creates the "simulator stop" subcommand.
func newSimulatorStopCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the chain-simulator stack",
		Long: `Tear down the chain-simulator docker-compose stack started by
"mxrunner simulator start".`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulatorStop(cmd.Context())
		},
	}
}

// runSimulatorStop is the main logic function for "simulator stop".
func runSimulatorStop(ctx context.Context) error {
	settings, err := config.Load()
	if err != nil {
		return err
	}

	composePath := simulator.ComposeFilePath(settings.DataDir)
	logger.Debug("stopping simulator stack", "compose", composePath)

	if err := simulator.ComposeDown(ctx, composePath); err != nil {
		return err
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(map[string]any{"action": "stopped"}, "", "  ")
		fmt.Println(string(data))
	} else {
		fmt.Println("Stopped chain-simulator stack")
	}
	return nil
}

// newSimulatorStatusCommand creates the "simulator status" subcommand.
func newSimulatorStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the state of the chain-simulator containers",
		Long: `List the containers of the chain-simulator compose project and their
Docker status.

Examples:
  mxrunner simulator status
  mxrunner simulator status --json`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulatorStatus(cmd.Context())
		},
	}
}

// runSimulatorStatus is the main logic function for "simulator status".
func runSimulatorStatus(ctx context.Context) error {
	client, err := simulator.NewClient()
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()
	if err := client.Ping(ctx); err != nil {
		return err
	}

	states, err := client.ProjectContainers(ctx, simulator.ProjectName)
	if err != nil {
		return err
	}

	// Sort by service name for stable output.
	sort.Slice(states, func(i, j int) bool {
		return states[i].Service < states[j].Service
	})

	printSimulatorStatus(states)
	return nil
}

// printSimulatorStatus outputs the container listing.
func printSimulatorStatus(states []simulator.ServiceState) {
	if IsJSONOutput() {
		data, _ := json.MarshalIndent(states, "", "  ")
		fmt.Println(string(data))
		return
	}

	if len(states) == 0 {
		fmt.Println("No chain-simulator containers found")
		return
	}
	for _, s := range states {
		fmt.Printf("%-18s %-12s %s\n", s.Service, s.Status, s.ContainerName)
	}
}
