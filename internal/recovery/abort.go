package recovery

import (
	"context"

	"seedvault/internal/domain"
)

// ConfirmAbort asks the operator to confirm abandoning the session, with
// wording selected by the dry-run flag. Declining returns
// domain.ErrActionCancelled; confirming returns nil and the caller raises
// domain.ErrRecoveryAborted.
func ConfirmAbort(ctx context.Context, ui domain.RecoveryUI, dryRun bool) error {
	title := "Abort recovery"
	question := "Do you really want to abort the recovery process?"
	description := "All progress will be lost."
	if dryRun {
		title = "Abort seed check"
		question = "Do you really want to abort the seed check?"
		description = ""
	}

	ok, err := ui.Confirm(ctx, title, question, description)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrActionCancelled
	}
	return nil
}
