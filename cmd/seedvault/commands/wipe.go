package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func wipeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "wipe",
		Short: "Remove the stored device secret",
		RunE: func(cmd *cobra.Command, args []string) error {
			has, err := appCtx.Device.HasSecret()
			if err != nil {
				return err
			}
			if !has {
				fmt.Println("No secret provisioned.")
				return nil
			}

			ok, err := appCtx.UI.Confirm(cmd.Context(), "Wipe device",
				"Do you really want to erase the stored secret?",
				"This cannot be undone without the backup words.")
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("Wipe cancelled.")
				return nil
			}

			if err := appCtx.Device.DeleteSecret(); err != nil {
				return err
			}
			fmt.Println("Device secret erased.")
			return nil
		},
	}
}
