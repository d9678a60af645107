// Package app wires application dependencies for the CLI.
//
// It builds the concrete store, terminal UI and recovery flow from Config,
// exposing them via the Wire struct for commands to use.
package app
