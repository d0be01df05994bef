// Package config handles loading of the optional mxrunner settings
// file (.mxrunner.jsonc).
//
// The settings file uses JSONC (JSON with Comments) via
// github.com/tidwall/jsonc so users can annotate their configuration,
// the same convention devcontainer.json follows. All fields are
// optional; missing values fall back to built-in defaults (mxops
// resolved via PATH, data under ~/.mxrunner, the standard
// chain-simulator proxy address).
package config
