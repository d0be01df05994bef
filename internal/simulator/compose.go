// compose.go handles the docker-compose side of the simulator stack:
// loading the compose definition (embedded by default, overridable via
// settings), filtering it down to the selected services, and running
// `docker compose up -d` / `down` as child processes.
//
// Compose is invoked through the docker CLI rather than a library
// because compose ships as a docker plugin and the CLI is its only
// stable interface.
package simulator

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Catenscia/mxops-runner/internal/model"
)

// composeFileName is the name of the filtered compose file written
// under the runner data directory.
const composeFileName = "chain_simulator_docker_compose.yaml"

// ProjectName is the compose project name pinned by the embedded
// definition. Container status queries filter on it.
const ProjectName = "mxops-chain-simulator"

//go:embed chain_simulator_compose.yaml
var embeddedCompose []byte

// ComposeFilePath returns the location of the filtered compose file
// under the given data directory. `simulator stop` uses it to find the
// file a previous `simulator start` wrote.
func ComposeFilePath(dataDir string) string {
	return filepath.Join(dataDir, composeFileName)
}

// LoadComposeContent returns the compose definition to use: the file
// at customPath when set, otherwise the embedded definition.
func LoadComposeContent(customPath string) ([]byte, error) {
	if customPath == "" {
		return embeddedCompose, nil
	}
	data, err := os.ReadFile(customPath)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed to read compose file %s", customPath), err)
	}
	return data, nil
}

// FilterCompose removes every service not in the selection from the
// compose document and prunes depends_on references to the removed
// services. The rest of the document passes through untouched.
//
// depends_on supports two YAML shapes (a plain list and a map with
// conditions); both are handled.
func FilterCompose(content []byte, services []string) ([]byte, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse compose file: %w", err)
	}

	keep := make(map[string]bool, len(services))
	for _, svc := range services {
		keep[svc] = true
	}

	rawServices, ok := doc["services"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("compose file has no services section")
	}

	for name := range rawServices {
		if !keep[name] {
			delete(rawServices, name)
		}
	}

	for _, rawSvc := range rawServices {
		svc, ok := rawSvc.(map[string]any)
		if !ok {
			continue
		}
		switch deps := svc["depends_on"].(type) {
		case []any:
			var kept []any
			for _, dep := range deps {
				if name, ok := dep.(string); ok && keep[name] {
					kept = append(kept, dep)
				}
			}
			if len(kept) == 0 {
				delete(svc, "depends_on")
			} else {
				svc["depends_on"] = kept
			}
		case map[string]any:
			for name := range deps {
				if !keep[name] {
					delete(deps, name)
				}
			}
			if len(deps) == 0 {
				delete(svc, "depends_on")
			}
		}
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize filtered compose file: %w", err)
	}
	return out, nil
}

// WriteComposeFile writes the filtered compose content under the data
// directory and returns the file path. The parent directory is created
// if needed.
func WriteComposeFile(dataDir string, content []byte) (string, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return "", model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed to create data directory %s", dataDir), err)
	}

	path := filepath.Join(dataDir, composeFileName)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed to write compose file %s", path), err)
	}
	return path, nil
}

// ComposeUp starts the stack described by the compose file in detached
// mode and waits for the command to finish.
func ComposeUp(ctx context.Context, composePath string) error {
	return runCompose(ctx, composePath, "up", "-d")
}

// ComposeDown tears the stack down.
func ComposeDown(ctx context.Context, composePath string) error {
	return runCompose(ctx, composePath, "down")
}

// runCompose executes `docker compose -f <file> <action...>` as a
// child process. Output is captured and only surfaced on failure;
// compose progress rendering is noise in the success path.
func runCompose(ctx context.Context, composePath string, action ...string) error {
	args := append([]string{"compose", "-f", composePath}, action...)

	// #nosec G204: the compose path comes from our own data directory or settings
	cmd := exec.CommandContext(ctx, "docker", args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return model.WrapCLIError(model.ExitDockerNotRunning,
			fmt.Sprintf("docker compose %s failed: %s",
				strings.Join(action, " "), strings.TrimSpace(string(output))), err)
	}
	return nil
}
