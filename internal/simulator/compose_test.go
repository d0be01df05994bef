// Package simulator — compose_test.go verifies compose file loading,
// service filtering, and depends_on pruning.
package simulator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// parseCompose unmarshals compose YAML for structural assertions.
func parseCompose(t *testing.T, content []byte) map[string]any {
	t.Helper()
	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(content, &doc))
	return doc
}

// composeServices returns the service section of a parsed compose doc.
func composeServices(t *testing.T, doc map[string]any) map[string]any {
	t.Helper()
	services, ok := doc["services"].(map[string]any)
	require.True(t, ok, "compose document must have a services map")
	return services
}

// TestEmbeddedComposeMatchesCatalog verifies that the embedded compose
// definition and the service dependency catalog agree on the service
// set, which the selection logic depends on.
func TestEmbeddedComposeMatchesCatalog(t *testing.T) {
	content, err := LoadComposeContent("")
	require.NoError(t, err)

	services := composeServices(t, parseCompose(t, content))

	var names []string
	for name := range services {
		names = append(names, name)
	}
	assert.ElementsMatch(t, AllServices(), names)
}

// TestLoadComposeContentCustomPath verifies the custom compose file
// override and its missing-file error.
func TestLoadComposeContentCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("services: {}\n"), 0o644))

	content, err := LoadComposeContent(path)
	require.NoError(t, err)
	assert.Equal(t, "services: {}\n", string(content))

	_, err = LoadComposeContent(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

// TestFilterCompose verifies that unselected services are removed and
// depends_on references to them are pruned.
func TestFilterCompose(t *testing.T) {
	content, err := LoadComposeContent("")
	require.NoError(t, err)

	selection := []string{"chain-simulator", "elasticsearch", "events-notifier", "redis"}
	filtered, err := FilterCompose(content, selection)
	require.NoError(t, err)

	services := composeServices(t, parseCompose(t, filtered))

	var names []string
	for name := range services {
		names = append(names, name)
	}
	assert.ElementsMatch(t, selection, names)

	// The project name must survive filtering: it pins the compose
	// project that status queries look for.
	doc := parseCompose(t, filtered)
	assert.Equal(t, ProjectName, doc["name"])
}

// TestFilterComposePrunesDependsOn verifies depends_on handling for
// both the list and the map shape.
func TestFilterComposePrunesDependsOn(t *testing.T) {
	input := []byte(`
services:
  a:
    image: a:latest
    depends_on:
      - b
      - c
  b:
    image: b:latest
    depends_on:
      c:
        condition: service_started
  c:
    image: c:latest
`)

	filtered, err := FilterCompose(input, []string{"a", "b"})
	require.NoError(t, err)

	services := composeServices(t, parseCompose(t, filtered))

	a, ok := services["a"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, []any{"b"}, a["depends_on"])

	// b depended only on the removed service, so the whole depends_on
	// key must be gone — an empty map would make compose fail.
	b, ok := services["b"].(map[string]any)
	require.True(t, ok)
	_, hasDeps := b["depends_on"]
	assert.False(t, hasDeps)

	_, hasC := services["c"]
	assert.False(t, hasC)
}

// TestFilterComposeNoServices verifies the error for a document
// without a services section.
func TestFilterComposeNoServices(t *testing.T) {
	_, err := FilterCompose([]byte("name: x\n"), []string{"a"})
	assert.Error(t, err)
}

// TestWriteComposeFile verifies the scratch file placement under the
// data directory.
func TestWriteComposeFile(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), "nested", "data")

	path, err := WriteComposeFile(dataDir, []byte("services: {}\n"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dataDir, composeFileName), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "services: {}\n", string(content))
}
