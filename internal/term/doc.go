// Package term implements the recovery prompt/display collaborator on a
// line-oriented terminal. It owns all wording and styling; the recovery core
// only ever sees the domain.RecoveryUI interface.
package term
