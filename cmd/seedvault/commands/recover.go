package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"seedvault/internal/domain"
)

func recoverCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "recover",
		Short: "Interactively enter a mnemonic or recovery shares",
		Long: `Collects a BIP-39 mnemonic or SLIP-39 recovery shares word by word,
validating each word as it is typed so mistakes surface early.

With --dry-run the recovered secret is only compared against the secret
already stored on this device; nothing is written.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if passphrase == "" {
				return fmt.Errorf("passphrase required (-p)")
			}

			err := appCtx.Flow.Run(cmd.Context(), dryRun)
			switch {
			case err == nil:
				return nil
			case errors.Is(err, domain.ErrRecoveryAborted):
				fmt.Println("Recovery aborted by operator.")
				return err
			case errors.Is(err, domain.ErrRecoveryFailed):
				fmt.Println("Recovery ended without a secret; restart to try again.")
				return err
			default:
				return err
			}
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate against the stored secret without changing it")
	return cmd
}
