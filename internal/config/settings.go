// settings.go implements discovery and parsing of the mxrunner
// settings file.
//
// Search order:
//  1. <working directory>/.mxrunner.jsonc (per-project settings)
//  2. <user config dir>/mxrunner/settings.jsonc (per-user settings)
//
// When no file is found, Defaults() is used. A present-but-broken file
// is an error: silently ignoring a typo in a settings file leads to
// very confusing tool resolution behavior.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"

	"github.com/Catenscia/mxops-runner/internal/model"
)

// ProjectSettingsFile is the per-project settings file name, looked up
// in the working directory.
const ProjectSettingsFile = ".mxrunner.jsonc"

// userSettingsFile is the per-user settings file name under
// <user config dir>/mxrunner/.
const userSettingsFile = "settings.jsonc"

// defaultProxyURL is the proxy endpoint of a locally running
// chain-simulator stack. The port is fixed by the simulator's own
// docker-compose definition.
const defaultProxyURL = "http://localhost:8085"

// Settings holds the runner configuration. Every field is optional in
// the settings file; zero values are replaced by defaults in Load.
type Settings struct {
	// ToolPath is the path or name of the external mxops binary.
	// A bare name is resolved via PATH at invocation time.
	ToolPath string `json:"toolPath,omitempty"`

	// DataDir is the directory where mxrunner writes its own scratch
	// files (currently only the filtered simulator compose file).
	DataDir string `json:"dataDir,omitempty"`

	// SimulatorComposePath optionally points to a custom docker-compose
	// file for the chain-simulator stack. When empty, the embedded
	// compose definition is used.
	SimulatorComposePath string `json:"simulatorComposePath,omitempty"`

	// SimulatorProxyURL is the proxy endpoint polled during simulator
	// startup to decide when the chain is ready.
	SimulatorProxyURL string `json:"simulatorProxyUrl,omitempty"`
}

// Defaults returns the settings used when no settings file exists.
func Defaults() *Settings {
	return &Settings{
		ToolPath:          "mxops",
		DataDir:           defaultDataDir(),
		SimulatorProxyURL: defaultProxyURL,
	}
}

// defaultDataDir returns ~/.mxrunner, falling back to a relative
// .mxrunner directory when the home directory cannot be determined
// (containerized environments without HOME set).
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".mxrunner"
	}
	return filepath.Join(home, ".mxrunner")
}

// Load finds and parses the settings file, merging it over the
// defaults. It never fails just because no file exists.
func Load() (*Settings, error) {
	path, ok := findSettingsFile()
	if !ok {
		return Defaults(), nil
	}
	return LoadFile(path)
}

// LoadFile parses the settings file at the given path and merges it
// over the defaults. The file may contain JSONC comments and trailing
// commas; they are stripped before parsing with encoding/json.
func LoadFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed to read settings file %s", path), err)
	}

	var fileSettings Settings
	if err := json.Unmarshal(jsonc.ToJSON(data), &fileSettings); err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed to parse settings file %s", path), err)
	}

	// Merge over defaults: only fields present in the file override.
	settings := Defaults()
	if fileSettings.ToolPath != "" {
		settings.ToolPath = fileSettings.ToolPath
	}
	if fileSettings.DataDir != "" {
		settings.DataDir = fileSettings.DataDir
	}
	if fileSettings.SimulatorComposePath != "" {
		settings.SimulatorComposePath = fileSettings.SimulatorComposePath
	}
	if fileSettings.SimulatorProxyURL != "" {
		settings.SimulatorProxyURL = fileSettings.SimulatorProxyURL
	}

	return settings, nil
}

// findSettingsFile probes the candidate settings locations in priority
// order and returns the first file that exists.
func findSettingsFile() (string, bool) {
	candidates := []string{ProjectSettingsFile}

	if configDir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(configDir, "mxrunner", userSettingsFile))
	}

	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}
