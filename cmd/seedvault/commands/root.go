package commands

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"seedvault/internal/app"
)

var (
	home       string
	passphrase string
	verbose    bool

	logger *zap.Logger
	appCtx *app.Wire
)

func Execute() error {
	root := &cobra.Command{
		Use:   "seedvault",
		Short: "Recover and verify wallet secrets from mnemonic backups",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if home == "" {
				dir, err := os.UserHomeDir()
				if err != nil {
					return err
				}
				home = filepath.Join(dir, ".seedvault")
			}
			if err := os.MkdirAll(home, 0o700); err != nil {
				return err
			}

			cfg := zap.NewProductionConfig()
			cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
			if verbose {
				cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			var err error
			if logger, err = cfg.Build(); err != nil {
				return err
			}

			appCtx, err = app.NewWire(app.Config{Home: home, Passphrase: passphrase}, logger)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "config dir (default ~/.seedvault)")
	root.PersistentFlags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase protecting the device store")
	root.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug logging")

	root.AddCommand(recoverCmd(), backupCmd(), statusCmd(), wipeCmd())
	return root.Execute()
}
