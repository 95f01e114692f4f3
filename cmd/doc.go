// Package cmd implements the command-line interface of smap, a validated JSON
// storage map. It binds the storage map to one of the storage backends and
// exposes its operations as commands.
//
// The package is organized into several subpackages:
//
//   - item: Commands for item operations (set, get, del, clear, perf)
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// See smap -help for a list of all commands.
package cmd
