// Package slip39 implements the SLIP-0039 share encoding used for
// Shamir-backed recovery: the 1024-word mnemonic codec with its rs1024
// checksum, two-level Shamir secret sharing over GF(256), and the
// Feistel-based master secret encryption.
//
// The package is synchronous and allocation-light; all share state lives in
// plain values so callers can own and discard it per recovery session.
package slip39
