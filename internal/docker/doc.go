// Package docker provides Docker Engine API wrappers and container
// lifecycle management for the janus CLI.
//
// This package handles:
//   - Docker client initialization with automatic socket detection
//     (Linux, macOS, Windows)
//   - Container label management for persisting stack metadata
//     (Docker labels are the sole state storage mechanism)
//   - Container lifecycle operations: list, run, start, stop, remove
//   - Idempotent volume and network creation for `janus dev up`
//   - Image builds and interactive execs, which shell out to the
//     `docker` CLI where the SDK would be awkward
//
// The package uses github.com/docker/docker/client as the underlying
// Docker SDK, with version negotiation enabled for broad compatibility.
package docker
