// Package config holds the process-wide request defaults for reqspec.
//
// It provides functionality for:
//   - A defaults store (base URL, headers, timeout, redirect policy)
//   - Loading overrides from .reqspec.yaml configuration files
//   - Case-insensitive, order-preserving header sets
//
// The store is read by the spec builder only when a spec is resolved, so
// changing a default between building calls and Resolve takes effect.
// Configure defaults before spawning parallel work; the store performs no
// locking of its own.
package config
