// Package recovery implements the recovery input validation state machine:
// classifying the backup encoding from the expected word count, validating
// the growing word sequence incrementally against previously accepted
// shares, and driving the operator prompt loop until a secret is recovered,
// a classified warning terminates the session, or the operator aborts.
//
// The validity engine (Session) is synchronous and suspension-free; only the
// prompt loop (Flow) blocks, and only while awaiting operator input.
package recovery
