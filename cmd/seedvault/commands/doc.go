// Package commands defines the seedvault CLI and wires dependencies for
// subcommands.
//
// Commands
//
//   - recover   Interactively enter a mnemonic or recovery shares
//   - backup    Generate a fresh secret and print its backup words
//   - status    Show the provisioned backup type and fingerprint
//   - wipe      Remove the stored device secret
//
// # Implementation
//
// The root command builds the dependency graph (store, terminal UI,
// recovery flow) and the logger before any subcommand runs, so handlers can
// use a shared app context.
package commands
