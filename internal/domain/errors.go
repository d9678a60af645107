package domain

import "errors"

var (
	// ErrActionCancelled is returned by confirmation steps when the
	// operator declines. It is swallowed at the decision point that asked.
	ErrActionCancelled = errors.New("action cancelled")

	// ErrRecoveryAborted signals an operator-initiated abort of the whole
	// recovery flow. Unlike validation failures it propagates out of Run.
	ErrRecoveryAborted = errors.New("recovery aborted")

	// ErrRecoveryFailed means the session terminated on a classified
	// validation outcome and no secret was produced. The session can be
	// restarted from scratch.
	ErrRecoveryFailed = errors.New("recovery ended without a secret")

	// ErrNoSecret is returned when the device holds no provisioned secret.
	ErrNoSecret = errors.New("no secret provisioned on this device")
)
