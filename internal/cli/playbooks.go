// Package cli — playbooks.go implements the "mxrunner playbooks"
// command, which lists the built-in playbooks and their descriptions.
package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Catenscia/mxops-runner/internal/playbook"
)

// NewPlaybooksCommand creates the "playbooks" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewPlaybooksCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "playbooks",
		Short: "List the built-in playbooks",
		Long: `List the playbooks compiled into mxrunner. Any of them can be passed
to "mxrunner run" by name; playbook YAML files can be run by path.

Examples:
  mxrunner playbooks
  mxrunner playbooks --json`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			printPlaybooks()
			return nil
		},
	}
}

// playbookSummary is the JSON shape of one listing entry.
type playbookSummary struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Network     string `json:"network"`
	Scenario    string `json:"scenario"`
	Steps       int    `json:"steps"`
}

// printPlaybooks outputs the built-in playbook listing in text or JSON
// format.
func printPlaybooks() {
	summaries := make([]playbookSummary, 0, len(playbook.BuiltinNames()))
	for _, name := range playbook.BuiltinNames() {
		p, _ := playbook.Builtin(name)
		summaries = append(summaries, playbookSummary{
			Name:        p.Name,
			Description: p.Description,
			Network:     p.Network.String(),
			Scenario:    p.Scenario,
			Steps:       len(p.Steps),
		})
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(summaries, "", "  ")
		fmt.Println(string(data))
		return
	}

	for _, s := range summaries {
		fmt.Printf("%-10s %s (network %s, scenario %s, %d steps)\n",
			s.Name, s.Description, s.Network, s.Scenario, s.Steps)
	}
}
