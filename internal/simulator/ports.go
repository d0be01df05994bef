// ports.go implements the host port preflight for `simulator start`.
//
// The stack publishes several well-known ports (proxy 8085, redis
// 6379, elasticsearch 9200, ...). If one of them is already taken,
// `docker compose up` fails halfway through with a container in a
// crash loop, which is much harder to diagnose than a preflight
// message naming the port and the service that wanted it.
package simulator

import (
	"fmt"
	"net"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// PublishedPort is one host port a compose service wants to bind.
type PublishedPort struct {
	// Service is the compose service publishing the port.
	Service string

	// Port is the host-side port number.
	Port int
}

// PublishedPorts extracts the host ports the given compose content
// would bind, sorted by port number. Only the short "HOST:CONTAINER"
// port syntax is interpreted; entries without an explicit host port
// are assigned dynamically by Docker and cannot collide.
func PublishedPorts(content []byte) ([]PublishedPort, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse compose file: %w", err)
	}

	rawServices, ok := doc["services"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("compose file has no services section")
	}

	var ports []PublishedPort
	for name, rawSvc := range rawServices {
		svc, ok := rawSvc.(map[string]any)
		if !ok {
			continue
		}
		entries, ok := svc["ports"].([]any)
		if !ok {
			continue
		}
		for _, entry := range entries {
			spec, ok := entry.(string)
			if !ok {
				continue
			}
			if port, ok := hostPort(spec); ok {
				ports = append(ports, PublishedPort{Service: name, Port: port})
			}
		}
	}

	sort.Slice(ports, func(i, j int) bool { return ports[i].Port < ports[j].Port })
	return ports, nil
}

// hostPort parses the host-side port out of a short-syntax port
// mapping ("8085:8085", "127.0.0.1:8085:8085"). A bare container port
// ("8085") has no fixed host binding and yields ok=false.
func hostPort(spec string) (int, bool) {
	parts := strings.Split(spec, ":")
	if len(parts) < 2 {
		return 0, false
	}
	// The host port is the second-to-last segment; an optional bind
	// address may precede it.
	port, err := strconv.Atoi(parts[len(parts)-2])
	if err != nil || port < 1 || port > 65535 {
		return 0, false
	}
	return port, true
}

// IsPortAvailable checks whether a TCP port is free on the host by
// binding it. Binding all interfaces matches how Docker publishes
// ports, so a port only reachable on 127.0.0.1 still counts as taken.
func IsPortAvailable(port int) bool {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return false
	}
	defer func() { _ = listener.Close() }()
	return true
}

// CheckPorts returns the published ports from the compose content that
// are already in use on the host. An empty result means the stack can
// bind everything it needs.
func CheckPorts(content []byte) ([]PublishedPort, error) {
	ports, err := PublishedPorts(content)
	if err != nil {
		return nil, err
	}

	var taken []PublishedPort
	for _, p := range ports {
		if !IsPortAvailable(p.Port) {
			taken = append(taken, p)
		}
	}
	return taken, nil
}
