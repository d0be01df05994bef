// runner.go executes the external tool as a synchronous child process.
//
// The runner deliberately stays dumb: it assembles the command, wires
// the standard streams through, waits, and reports the exit status.
// Anything smarter (retries, output parsing, recovery) would change
// the observable behavior of the wrapped tool and is out of scope.
package mxops

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/Catenscia/mxops-runner/internal/model"
)

// Runner invokes the external tool. The zero value is not usable;
// create instances with NewRunner.
type Runner struct {
	// tool is the resolved path or bare name of the external binary.
	tool string

	// stdout and stderr receive the child process output. They default
	// to the runner process's own streams and are overridable for tests.
	stdout io.Writer
	stderr io.Writer
}

// NewRunner creates a Runner for the given tool path or name.
// A bare name (no path separator) is resolved via PATH by os/exec at
// invocation time; ResolveTool can be used beforehand to fail early
// with a dedicated exit code.
func NewRunner(tool string) *Runner {
	return &Runner{
		tool:   tool,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

// SetOutput redirects the child process streams. Used by tests and by
// dry-run rendering; production code keeps the defaults so the tool's
// output reaches the user's terminal untouched.
func (r *Runner) SetOutput(stdout, stderr io.Writer) {
	r.stdout = stdout
	r.stderr = stderr
}

// Tool returns the tool path or name this runner invokes.
func (r *Runner) Tool() string {
	return r.tool
}

// CommandLine renders the command line for the given argument vector,
// for logging and --dry-run display. Arguments containing whitespace
// are quoted so the rendering is copy-pasteable.
func (r *Runner) CommandLine(argv []string) string {
	parts := make([]string, 0, len(argv)+1)
	for _, arg := range append([]string{r.tool}, argv...) {
		if strings.ContainsAny(arg, " \t") {
			parts = append(parts, fmt.Sprintf("%q", arg))
		} else {
			parts = append(parts, arg)
		}
	}
	return strings.Join(parts, " ")
}

// Run invokes the tool with the given argument vector and waits for it
// to terminate. The child inherits the runner's environment plus the
// provided extra variables (sorted, so repeated runs are identical).
// Stdout and stderr stream through unmodified.
//
// On a non-zero exit the returned error is a model.CLIError whose Code
// is the child's own exit code, which the CLI layer passes through to
// os.Exit. A child killed by a signal or a start failure (binary
// missing, not executable) maps to the general error code, except that
// exec.ErrNotFound maps to ExitToolNotFound.
func (r *Runner) Run(ctx context.Context, argv []string, extraEnv map[string]string) error {
	if err := model.ValidateEnv(extraEnv); err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "invalid step environment", err)
	}

	// #nosec G204: argv is built from validated playbook fields, not raw user input
	cmd := exec.CommandContext(ctx, r.tool, argv...)

	// os.Environ returns a copy, so appending does not mutate the
	// runner's own environment. Extra variables come last and therefore
	// win over inherited ones with the same name.
	cmd.Env = append(os.Environ(), model.FlattenEnv(extraEnv)...)
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr

	err := cmd.Run()
	if err == nil {
		return nil
	}

	// Cancelled context: the child was killed because the user
	// interrupted the run, not because the tool failed.
	if ctx.Err() != nil {
		return model.WrapCLIError(model.ExitUserCancelled,
			fmt.Sprintf("%s %s interrupted", r.tool, strings.Join(argv, " ")), ctx.Err())
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		if code > 0 {
			// Pass-through: the wrapper's exit code equals the tool's.
			return model.WrapCLIError(model.ExitCode(code),
				fmt.Sprintf("%s %s failed", r.tool, strings.Join(argv, " ")), err)
		}
		// ExitCode is -1 when the child died from a signal.
		return model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("%s %s terminated abnormally", r.tool, strings.Join(argv, " ")), err)
	}

	if errors.Is(err, exec.ErrNotFound) {
		return model.WrapCLIError(model.ExitToolNotFound,
			fmt.Sprintf("external tool %q not found", r.tool), err)
	}

	return model.WrapCLIError(model.ExitGeneralError,
		fmt.Sprintf("failed to start %s", r.tool), err)
}

// ResolveTool checks that the configured tool can be invoked and
// returns its resolved path. A name without a path separator is looked
// up in PATH; an explicit path is checked directly.
//
// Returns a model.CLIError with ExitToolNotFound when the binary
// cannot be located, so the failure is distinguishable from a tool
// that ran and failed.
func ResolveTool(tool string) (string, error) {
	path, err := exec.LookPath(tool)
	if err != nil {
		return "", model.WrapCLIError(model.ExitToolNotFound,
			fmt.Sprintf("external tool %q not found (is mxops installed and on PATH?)", tool), err)
	}
	return path, nil
}
