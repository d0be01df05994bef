// client.go wraps the Docker Engine SDK client for the simulator
// commands: daemon detection, connectivity checks, and container
// status queries scoped to the simulator compose project.
package simulator

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/client"

	"github.com/Catenscia/mxops-runner/internal/model"
)

// pingTimeout bounds the daemon connectivity check. Docker Desktop on
// macOS can take a few seconds to answer after waking up.
const pingTimeout = 5 * time.Second

// composeProjectLabel is the label docker compose stamps on every
// container of a project. Filtering on it scopes status queries to the
// simulator stack.
const composeProjectLabel = "com.docker.compose.project"

// Client wraps the Docker SDK client used by the simulator commands.
type Client struct {
	inner *client.Client
}

// NewClient connects to the Docker daemon. DOCKER_HOST is respected
// when set; otherwise the standard Unix socket locations are probed
// (including the per-user Docker Desktop socket on macOS).
//
// Returns a model.CLIError with ExitDockerNotRunning when no socket is
// found or the client cannot be created.
func NewClient() (*Client, error) {
	opts := []client.Opt{client.WithAPIVersionNegotiation()}

	if os.Getenv("DOCKER_HOST") == "" {
		host, err := detectDockerHost()
		if err != nil {
			return nil, model.WrapCLIError(model.ExitDockerNotRunning,
				"Docker socket not found", err)
		}
		opts = append(opts, client.WithHost(host))
	} else {
		opts = append(opts, client.FromEnv)
	}

	c, err := client.NewClientWithOpts(opts...)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitDockerNotRunning,
			"failed to create Docker client", err)
	}
	return &Client{inner: c}, nil
}

// detectDockerHost probes the known Unix socket paths and returns the
// Docker host URI for the first one that exists. Existence does not
// guarantee a listening daemon; Ping covers that.
func detectDockerHost() (string, error) {
	paths := []string{"/var/run/docker.sock"}
	if runtime.GOOS == "darwin" {
		if home, err := os.UserHomeDir(); err == nil {
			paths = append(paths, home+"/.docker/run/docker.sock")
		}
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return "unix://" + path, nil
		}
	}
	return "", fmt.Errorf("Docker socket not found at any of %v — is Docker running?", paths)
}

// Ping verifies that the Docker daemon is reachable, with a bounded
// timeout so a paused daemon does not hang the command.
func (c *Client) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if _, err := c.inner.Ping(pingCtx); err != nil {
		return model.WrapCLIError(model.ExitDockerNotRunning,
			"Docker daemon is not responding — is Docker running?", err)
	}
	return nil
}

// Close releases the resources held by the Docker client.
func (c *Client) Close() error {
	if c.inner != nil {
		return c.inner.Close()
	}
	return nil
}

// ServiceState describes one container of the simulator stack.
type ServiceState struct {
	// Service is the compose service name.
	Service string `json:"service"`

	// ContainerName is the Docker container name.
	ContainerName string `json:"containerName"`

	// Status is the Docker container status (e.g. "running", "exited").
	Status string `json:"status"`
}

// ProjectContainers lists the containers belonging to the given
// compose project, including stopped ones. Used by `simulator status`.
func (c *Client) ProjectContainers(ctx context.Context, project string) ([]ServiceState, error) {
	filterArgs := filters.NewArgs(
		filters.Arg("label", composeProjectLabel+"="+project),
	)

	containers, err := c.inner.ContainerList(ctx, container.ListOptions{
		All:     true,
		Filters: filterArgs,
	})
	if err != nil {
		return nil, model.WrapCLIError(model.ExitDockerNotRunning,
			"failed to list simulator containers", err)
	}

	states := make([]ServiceState, 0, len(containers))
	for _, ctr := range containers {
		name := ""
		if len(ctr.Names) > 0 {
			// The Docker API prefixes container names with a slash.
			name = ctr.Names[0]
			if len(name) > 0 && name[0] == '/' {
				name = name[1:]
			}
		}
		states = append(states, ServiceState{
			Service:       ctr.Labels["com.docker.compose.service"],
			ContainerName: name,
			Status:        ctr.State,
		})
	}
	return states, nil
}
