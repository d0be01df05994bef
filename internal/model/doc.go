// Package model defines the domain types and value objects for the
// mxrunner CLI.
//
// This package contains pure data structures with no external
// dependencies: the network identifiers accepted by the external mxops
// tool, the playbook step actions, environment variable validation,
// and the exit code / error machinery used to translate failures into
// OS process exit codes.
package model
