package app

import (
	"os"

	"go.uber.org/zap"

	"seedvault/internal/domain"
	"seedvault/internal/recovery"
	"seedvault/internal/store"
	"seedvault/internal/term"
)

// Wire bundles the store, UI and recovery flow for the CLI.
type Wire struct {
	Device   domain.DeviceStore
	Sessions domain.RecoveryStore
	UI       domain.RecoveryUI
	Flow     *recovery.Flow
	Log      *zap.Logger
}

// NewWire constructs the dependency graph from cfg.
func NewWire(cfg Config, log *zap.Logger) (*Wire, error) {
	if log == nil {
		log = zap.NewNop()
	}

	fs := store.NewFileStore(cfg.Home)
	ui := term.New(os.Stdin, os.Stdout)
	flow := recovery.NewFlow(ui, fs, fs, cfg.Passphrase, log)

	return &Wire{
		Device:   fs,
		Sessions: fs,
		UI:       ui,
		Flow:     flow,
		Log:      log,
	}, nil
}
