// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data to the local filesystem.
//
// Adapters:
//   - ManifestStore: TOML-based workspace manifest storage
package file
