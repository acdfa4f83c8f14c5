// Package cli defines the Cobra command tree for the fabricgen CLI. Each file
// in this package registers one top-level command (new, versions, doctor,
// config, version) with the root command. Command implementations delegate to
// internal packages for the real work and only handle flag parsing,
// prompting, and output formatting.
package cli
