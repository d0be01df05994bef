// Package simulator manages the local chain-simulator Docker stack
// that mxops-based workflows run against.
//
// The stack is a docker-compose project (redis, postgres, an events
// notifier, elasticsearch and its indexer, the chain simulator itself,
// an API gateway, an explorer and a lite wallet). Callers pick a
// subset of services; logical dependencies are auto-included, the
// embedded compose definition is filtered down to the selection, and
// `docker compose` brings the project up or down. Daemon connectivity
// checks and container status queries go through the Docker SDK.
package simulator
