// Package mxops — args_test.go verifies the exact argument vectors
// produced for the external tool. Argument order is part of the
// contract, so these tests compare full vectors, not just membership.
package mxops

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestExecuteArgsArgv verifies the execute subcommand argument vector.
func TestExecuteArgsArgv(t *testing.T) {
	tests := []struct {
		name string
		args ExecuteArgs
		want []string
	}{
		{
			name: "queries tutorial invocation",
			args: ExecuteArgs{
				Network:  "mainnet",
				Scenario: "queries_tutorial",
				Debug:    true,
				Scenes: []string{
					"mxops_scenes/single_pair_queries.yaml",
					"mxops_scenes/all_pairs_queries.yaml",
				},
			},
			want: []string{
				"execute", "-n", "mainnet", "-s", "queries_tutorial", "-d",
				"mxops_scenes/single_pair_queries.yaml",
				"mxops_scenes/all_pairs_queries.yaml",
			},
		},
		{
			name: "deploy invocation without flags",
			args: ExecuteArgs{
				Network:  "DEV",
				Scenario: "mxops_tutorial_enhanced_first_scene",
				Scenes:   []string{"mxops_scenes/accounts.yaml", "mxops_scenes/deploy.yaml"},
			},
			want: []string{
				"execute", "-n", "DEV", "-s", "mxops_tutorial_enhanced_first_scene",
				"mxops_scenes/accounts.yaml", "mxops_scenes/deploy.yaml",
			},
		},
		{
			name: "clean flag after debug flag",
			args: ExecuteArgs{
				Network:  "devnet",
				Scenario: "s",
				Debug:    true,
				Clean:    true,
				Scenes:   []string{"scene.yaml"},
			},
			want: []string{"execute", "-n", "devnet", "-s", "s", "-d", "-c", "scene.yaml"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.args.Argv())
		})
	}
}

// TestExecuteArgsValidate verifies the completeness checks.
func TestExecuteArgsValidate(t *testing.T) {
	valid := ExecuteArgs{Network: "mainnet", Scenario: "s", Scenes: []string{"a.yaml"}}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name string
		args ExecuteArgs
	}{
		{name: "bad network", args: ExecuteArgs{Network: "moonnet", Scenario: "s", Scenes: []string{"a"}}},
		{name: "empty scenario", args: ExecuteArgs{Network: "DEV", Scenes: []string{"a"}}},
		{name: "no scenes", args: ExecuteArgs{Network: "DEV", Scenario: "s"}},
		{name: "empty scene path", args: ExecuteArgs{Network: "DEV", Scenario: "s", Scenes: []string{""}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.args.Validate())
		})
	}
}

// TestDataDeleteArgsArgv verifies the data delete argument vector.
func TestDataDeleteArgsArgv(t *testing.T) {
	tests := []struct {
		name string
		args DataDeleteArgs
		want []string
	}{
		{
			name: "tutorial scenario deletion",
			args: DataDeleteArgs{
				Network:  "DEV",
				Scenario: "mxops_tutorial_enhanced_first_scene",
				Yes:      true,
			},
			want: []string{
				"data", "delete", "-n", "DEV",
				"-s", "mxops_tutorial_enhanced_first_scene", "-y",
			},
		},
		{
			name: "checkpoint deletion",
			args: DataDeleteArgs{Network: "devnet", Scenario: "s", Checkpoint: "before_upgrade"},
			want: []string{"data", "delete", "-n", "devnet", "-s", "s", "-c", "before_upgrade"},
		},
		{
			name: "delete all scenarios",
			args: DataDeleteArgs{Network: "localnet", All: true, Yes: true},
			want: []string{"data", "delete", "-n", "localnet", "-a", "-y"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.args.Argv())
		})
	}
}

// TestDataDeleteArgsValidate verifies the deletion target checks.
func TestDataDeleteArgsValidate(t *testing.T) {
	assert.NoError(t, DataDeleteArgs{Network: "DEV", Scenario: "s"}.Validate())
	assert.NoError(t, DataDeleteArgs{Network: "DEV", All: true}.Validate())

	tests := []struct {
		name string
		args DataDeleteArgs
	}{
		{name: "bad network", args: DataDeleteArgs{Network: "nope", Scenario: "s"}},
		{name: "no target", args: DataDeleteArgs{Network: "DEV"}},
		{name: "scenario and all", args: DataDeleteArgs{Network: "DEV", Scenario: "s", All: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.args.Validate())
		})
	}
}
