package recovery

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"seedvault/internal/domain"
	"seedvault/internal/util/memzero"
)

// Flow orchestrates one recovery session: it requests words from the UI
// collaborator, feeds the growing sequence into the Session, and maps
// outcomes to continuation, a classified warning, or termination.
type Flow struct {
	ui         domain.RecoveryUI
	device     domain.DeviceStore
	sessions   domain.RecoveryStore
	passphrase string
	log        *zap.Logger
}

// NewFlow wires a recovery flow. passphrase protects the device store, not
// the shares themselves.
func NewFlow(ui domain.RecoveryUI, device domain.DeviceStore, sessions domain.RecoveryStore, passphrase string, log *zap.Logger) *Flow {
	if log == nil {
		log = zap.NewNop()
	}
	return &Flow{ui: ui, device: device, sessions: sessions, passphrase: passphrase, log: log}
}

// Run drives a recovery session to completion. It returns nil on success
// (secret committed, or dry run matched), domain.ErrRecoveryFailed when a
// classified validation outcome ended the session, and
// domain.ErrRecoveryAborted when the operator confirmed an abort. Session
// state never survives Run; every call starts from scratch.
func (f *Flow) Run(ctx context.Context, dryRun bool) error {
	has, err := f.device.HasSecret()
	if err != nil {
		return err
	}
	if dryRun && !has {
		return domain.ErrNoSecret
	}
	if !dryRun && has {
		return fmt.Errorf("device already holds a secret, wipe it before recovering")
	}

	if err := f.sessions.BeginRecovery(dryRun); err != nil {
		return err
	}
	defer func() { _ = f.sessions.EndRecovery() }()

	// The flag is read back from persisted state once and is immutable for
	// the rest of the session.
	dry, err := f.sessions.DryRun()
	if err != nil {
		return err
	}

	if err := f.homescreen(ctx, dry, startText(dry)); err != nil {
		return err
	}

	count, err := f.ui.RequestWordCount(ctx)
	if err != nil {
		return err
	}
	session, err := NewSession(count, dry)
	if err != nil {
		return err
	}
	f.log.Debug("recovery session started",
		zap.Int("word_count", count),
		zap.Bool("dry_run", dry),
		zap.Bool("share_based", session.Encoding().IsShare()),
	)

	for {
		res, err := f.collect(ctx, session)
		if err != nil {
			return err
		}
		switch res.Kind {
		case Accepted:
			return f.finish(session, res.Secret)
		case Incomplete:
			// A share was consumed; show progress and re-enter for the next.
			if err := f.ui.ShowProgress(res.Progress); err != nil {
				return err
			}
			if err := f.homescreen(ctx, dry, "Enter a share from a group that still needs shares."); err != nil {
				return err
			}
		default:
			f.report(res.Kind, session)
			return domain.ErrRecoveryFailed
		}
	}
}

// startText is the homescreen wording shown before the first share or seed.
func startText(dryRun bool) string {
	if dryRun {
		return "Check your backup against the secret stored on this device."
	}
	return "Enter your backup to recover the wallet secret."
}

// homescreen loops until the operator continues or confirms an abort.
// Declining the abort confirmation resumes exactly where the session was.
func (f *Flow) homescreen(ctx context.Context, dryRun bool, text string) error {
	for {
		cont, err := f.ui.ContinueRecovery(ctx, "Continue", text, "")
		if err != nil {
			return err
		}
		if cont {
			return nil
		}
		err = ConfirmAbort(ctx, f.ui, dryRun)
		if errors.Is(err, domain.ErrActionCancelled) {
			continue
		}
		if err != nil {
			return err
		}
		return domain.ErrRecoveryAborted
	}
}

// collect gathers one seed or share, checking validity after every word.
// Cancellation is observed only between words, never mid-validation.
func (f *Flow) collect(ctx context.Context, session *Session) (Result, error) {
	total := session.WordCount()
	isShare := session.Encoding().IsShare()

	words := make([]string, 0, total)
	var res Result
	for i := 0; i < total; i++ {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		word, err := f.ui.RequestWord(ctx, i, total, isShare)
		if err != nil {
			return Result{}, err
		}
		words = append(words, word)

		res = session.Check(words)
		if res.Kind != Incomplete || res.ShareAccepted {
			break
		}
	}
	return res, nil
}

func (f *Flow) report(kind ResultKind, session *Session) {
	info := domain.ReportInfo{
		WordCount: session.WordCount(),
		IsShare:   session.Encoding().IsShare(),
	}
	var rk domain.ReportKind
	switch kind {
	case AlreadyAdded:
		rk = domain.ReportShareAlreadyAdded
	case IdentifierMismatch:
		rk = domain.ReportIdentifierMismatch
	case ThresholdReached:
		rk = domain.ReportGroupThresholdReached
	default:
		rk = domain.ReportInvalidWords
	}
	if err := f.ui.Report(rk, info); err != nil {
		f.log.Warn("failed to display outcome", zap.Error(err))
	}
}

// finish commits the secret, or compares it against the stored one in a dry
// run without mutating anything.
func (f *Flow) finish(session *Session, secret []byte) error {
	defer memzero.Zero(secret)

	info := domain.ReportInfo{
		WordCount: session.WordCount(),
		IsShare:   session.Encoding().IsShare(),
	}

	if session.DryRun() {
		stored, err := f.device.LoadSecret(f.passphrase)
		if err != nil {
			return err
		}
		defer memzero.Zero(stored.Secret)

		switch {
		case stored.BackupType.IsShare() != session.BackupType().IsShare():
			_ = f.ui.Report(domain.ReportDryRunTypeMismatch, info)
			return domain.ErrRecoveryFailed
		case subtle.ConstantTimeCompare(secret, stored.Secret) == 1:
			return f.ui.Report(domain.ReportDryRunMatch, info)
		default:
			_ = f.ui.Report(domain.ReportDryRunMismatch, info)
			return domain.ErrRecoveryFailed
		}
	}

	sec := domain.DeviceSecret{BackupType: session.BackupType(), Secret: secret}
	if err := f.device.SaveSecret(f.passphrase, sec); err != nil {
		return err
	}
	f.log.Info("device secret committed", zap.Stringer("backup_type", session.BackupType()))
	return f.ui.ShowSuccess("You have successfully recovered your wallet.")
}
