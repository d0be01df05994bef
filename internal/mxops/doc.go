// Package mxops is the invocation layer for the external mxops
// command-line tool.
//
// It builds the exact argument vectors for the tool's subcommands
// (execute, data delete), resolves the tool binary, and runs it as a
// synchronous child process with the child's stdout/stderr connected
// to the runner's own streams. No output is transformed and no retries
// are performed: the child's exit code is carried back verbatim so the
// runner process can exit with the same status.
package mxops
