// Package cmd implements the command-line interface for cachehub. It drives
// an in-process hub built from in-memory stores, mainly as a demonstration
// and debugging surface for the library.
//
// The package is organized into several subpackages:
//
//   - kv: Commands for cache operations (set, get, publish, list, del,
//     clear, metrics)
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// See cachehub -help for a list of all commands.
package cmd
