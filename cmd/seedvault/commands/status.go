package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"seedvault/internal/crypto"
	"seedvault/internal/util/memzero"
)

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the provisioned backup type and fingerprint",
		RunE: func(cmd *cobra.Command, args []string) error {
			has, err := appCtx.Device.HasSecret()
			if err != nil {
				return err
			}
			if !has {
				fmt.Println("No secret provisioned.")
				return nil
			}
			if passphrase == "" {
				return fmt.Errorf("passphrase required (-p)")
			}

			sec, err := appCtx.Device.LoadSecret(passphrase)
			if err != nil {
				return err
			}
			defer memzero.Zero(sec.Secret)

			fmt.Printf("Backup type: %s\n", sec.BackupType)
			fmt.Printf("Fingerprint: %s\n", crypto.Fingerprint(sec.Secret))
			return nil
		},
	}
}
