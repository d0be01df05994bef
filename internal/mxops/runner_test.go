// Package mxops — runner_test.go verifies child process execution
// against a stub tool script: exit code pass-through, environment
// injection, and output streaming. These tests spawn real processes
// via /bin/sh and are skipped on Windows.
package mxops

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Catenscia/mxops-runner/internal/model"
)

// writeStubTool writes an executable shell script that prints its
// arguments and the AMOUNT/WAIT_TIME variables, then exits with the
// given code. It returns the script path.
func writeStubTool(t *testing.T, exitCode string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("stub tool tests require a POSIX shell")
	}

	script := "#!/bin/sh\n" +
		"echo \"argv:$@\"\n" +
		"echo \"AMOUNT=$AMOUNT WAIT_TIME=$WAIT_TIME\" 1>&2\n" +
		"exit " + exitCode + "\n"

	path := filepath.Join(t.TempDir(), "mxops-stub")
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

// TestRunnerSuccess verifies that a zero-exit child yields no error and
// that arguments and extra environment reach the child unchanged.
func TestRunnerSuccess(t *testing.T) {
	runner := NewRunner(writeStubTool(t, "0"))

	var stdout, stderr bytes.Buffer
	runner.SetOutput(&stdout, &stderr)

	argv := []string{"execute", "-n", "mainnet", "-s", "queries_tutorial", "-d"}
	env := map[string]string{"AMOUNT": "1000000000000000000", "WAIT_TIME": "1"}

	require.NoError(t, runner.Run(context.Background(), argv, env))

	assert.Equal(t, "argv:execute -n mainnet -s queries_tutorial -d\n", stdout.String())
	assert.Equal(t, "AMOUNT=1000000000000000000 WAIT_TIME=1\n", stderr.String())
}

// TestRunnerExitCodePassThrough verifies that the child's non-zero
// exit code is carried back verbatim in the CLIError.
func TestRunnerExitCodePassThrough(t *testing.T) {
	runner := NewRunner(writeStubTool(t, "42"))
	runner.SetOutput(&bytes.Buffer{}, &bytes.Buffer{})

	err := runner.Run(context.Background(), []string{"execute"}, nil)
	require.Error(t, err)

	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitCode(42), cliErr.Code)
}

// TestRunnerToolNotFound verifies the dedicated exit code when the
// binary cannot be started at all.
func TestRunnerToolNotFound(t *testing.T) {
	runner := NewRunner(filepath.Join(t.TempDir(), "does-not-exist"))
	runner.SetOutput(&bytes.Buffer{}, &bytes.Buffer{})

	err := runner.Run(context.Background(), []string{"execute"}, nil)
	require.Error(t, err)

	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.NotEqual(t, model.ExitSuccess, cliErr.Code)
}

// TestRunnerInvalidEnv verifies that a malformed environment map is
// rejected before any process is spawned.
func TestRunnerInvalidEnv(t *testing.T) {
	runner := NewRunner("mxops")

	err := runner.Run(context.Background(), []string{"execute"}, map[string]string{"A=B": "x"})
	require.Error(t, err)

	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitGeneralError, cliErr.Code)
}

// TestRunnerIdempotent verifies that two runs of the same invocation
// are independent and identical (no state carried between runs).
func TestRunnerIdempotent(t *testing.T) {
	runner := NewRunner(writeStubTool(t, "0"))

	argv := []string{"execute", "-n", "mainnet", "-s", "queries_tutorial", "-d",
		"mxops_scenes/single_pair_queries.yaml", "mxops_scenes/all_pairs_queries.yaml"}

	var first, second bytes.Buffer
	runner.SetOutput(&first, &bytes.Buffer{})
	require.NoError(t, runner.Run(context.Background(), argv, nil))
	runner.SetOutput(&second, &bytes.Buffer{})
	require.NoError(t, runner.Run(context.Background(), argv, nil))

	assert.Equal(t, first.String(), second.String())
}

// TestCommandLine verifies the dry-run rendering, including quoting of
// arguments containing whitespace.
func TestCommandLine(t *testing.T) {
	runner := NewRunner("mxops")

	assert.Equal(t,
		"mxops execute -n mainnet -s queries_tutorial -d scene.yaml",
		runner.CommandLine([]string{"execute", "-n", "mainnet", "-s", "queries_tutorial", "-d", "scene.yaml"}))

	assert.Equal(t,
		`mxops execute -n DEV -s demo "my scenes/deploy.yaml"`,
		runner.CommandLine([]string{"execute", "-n", "DEV", "-s", "demo", "my scenes/deploy.yaml"}))
}

// TestResolveTool verifies PATH resolution for existing and missing tools.
func TestResolveTool(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on /bin/sh being present")
	}

	t.Run("existing binary resolves", func(t *testing.T) {
		path, err := ResolveTool("sh")
		require.NoError(t, err)
		assert.NotEmpty(t, path)
	})

	t.Run("missing binary reports tool not found", func(t *testing.T) {
		_, err := ResolveTool("definitely-not-a-real-binary-name")
		require.Error(t, err)

		var cliErr *model.CLIError
		require.True(t, errors.As(err, &cliErr))
		assert.Equal(t, model.ExitToolNotFound, cliErr.Code)
	})
}
