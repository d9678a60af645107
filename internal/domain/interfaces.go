package domain

import "context"

// RecoveryUI is the prompt/display collaborator consumed by the recovery
// flow. Implementations may block indefinitely while awaiting operator
// input; they are the flow's only suspension points.
type RecoveryUI interface {
	// RequestWordCount prompts for the expected word count of the next
	// seed or share.
	RequestWordCount(ctx context.Context) (int, error)

	// RequestWord prompts for one word. index is zero-based.
	RequestWord(ctx context.Context, index, total int, isShare bool) (string, error)

	// Report displays a classified outcome screen.
	Report(kind ReportKind, info ReportInfo) error

	// Confirm asks a yes/no question and returns the operator's answer.
	Confirm(ctx context.Context, title, question, description string) (bool, error)

	// ContinueRecovery shows the homescreen dialog; false means the
	// operator wants to abort.
	ContinueRecovery(ctx context.Context, label, text, subtext string) (bool, error)

	// ShowProgress displays which groups still need shares.
	ShowProgress(p Progress) error

	// ShowSuccess displays a final success message.
	ShowSuccess(message string) error
}

// DeviceStore persists the device secret, encrypted at rest.
type DeviceStore interface {
	SaveSecret(passphrase string, sec DeviceSecret) error
	// LoadSecret returns ErrNoSecret when the device is not provisioned.
	LoadSecret(passphrase string) (DeviceSecret, error)
	HasSecret() (bool, error)
	DeleteSecret() error
}

// RecoveryStore persists per-session recovery state. The dry-run flag is
// written once when a session begins and is immutable until it ends.
type RecoveryStore interface {
	BeginRecovery(dryRun bool) error
	DryRun() (bool, error)
	EndRecovery() error
}
