// Package stack handles the dev stack configuration for the janus CLI.
//
// A stack is described by a `.janus/stack.jsonc` file at the project root.
// The file format is JSONC (JSON with comments), so this package uses
// github.com/tidwall/jsonc to strip comments before parsing with the
// standard encoding/json library.
//
// Key responsibilities:
//   - Locate and parse stack.jsonc, applying defaults for omitted fields
//   - Validate the configuration before any Docker resource is touched
//   - Derive resource names (containers, network, volume, image tag)
//   - Derive the image version tag from Git (`git describe`)
//   - Export the stack as a docker-compose.yml for users who prefer
//     running it outside janus
package stack
