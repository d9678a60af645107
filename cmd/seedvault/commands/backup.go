package commands

import (
	"crypto/rand"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tyler-smith/go-bip39"

	"seedvault/internal/domain"
	"seedvault/internal/slip39"
	"seedvault/internal/util/memzero"
)

func backupCmd() *cobra.Command {
	var (
		shamir         bool
		bits           int
		groupThreshold int
		groupSpecs     []string
	)

	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Generate a fresh secret and print its backup words",
		Long: `Provisions this device with a new random secret and prints the backup:
a BIP-39 mnemonic by default, or SLIP-39 shares with --shamir.

Group specs take the form "MofN", e.g. --group 2of3 --group 3of5.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if passphrase == "" {
				return fmt.Errorf("passphrase required (-p)")
			}
			if has, err := appCtx.Device.HasSecret(); err != nil {
				return err
			} else if has {
				return fmt.Errorf("device already holds a secret, wipe it first")
			}
			if bits != 128 && bits != 256 {
				return fmt.Errorf("unsupported strength %d, want 128 or 256", bits)
			}

			if !shamir {
				return makeBIP39Backup(bits)
			}
			return makeSLIP39Backup(bits, groupThreshold, groupSpecs)
		},
	}

	cmd.Flags().BoolVar(&shamir, "shamir", false, "split the secret into SLIP-39 shares")
	cmd.Flags().IntVar(&bits, "bits", 128, "secret strength in bits (128 or 256)")
	cmd.Flags().IntVar(&groupThreshold, "group-threshold", 1, "groups required to recover")
	cmd.Flags().StringArrayVar(&groupSpecs, "group", []string{"1of1"}, "share group spec, repeatable (MofN)")
	return cmd
}

func makeBIP39Backup(bits int) error {
	entropy, err := bip39.NewEntropy(bits)
	if err != nil {
		return err
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return err
	}

	sec := domain.DeviceSecret{BackupType: domain.BackupBIP39, Secret: []byte(mnemonic)}
	if err := appCtx.Device.SaveSecret(passphrase, sec); err != nil {
		return err
	}
	memzero.Zero(sec.Secret)

	fmt.Println("Write down your recovery seed:")
	fmt.Println()
	fmt.Println("  " + mnemonic)
	return nil
}

func makeSLIP39Backup(bits, groupThreshold int, groupSpecs []string) error {
	groups, err := parseGroupSpecs(groupSpecs)
	if err != nil {
		return err
	}

	master := make([]byte, bits/8)
	if _, err := rand.Read(master); err != nil {
		return err
	}
	defer memzero.Zero(master)

	shareGroups, err := slip39.Split(master, nil, groupThreshold, groups)
	if err != nil {
		return err
	}

	backupType := domain.BackupSLIP39Basic
	if len(groups) > 1 {
		backupType = domain.BackupSLIP39Advanced
	}
	sec := domain.DeviceSecret{BackupType: backupType, Secret: master}
	if err := appCtx.Device.SaveSecret(passphrase, sec); err != nil {
		return err
	}

	fmt.Println("Write down each share separately:")
	for gi, shares := range shareGroups {
		fmt.Println()
		fmt.Printf("Group %d (%d of %d):\n", gi+1, groups[gi].MemberThreshold, groups[gi].MemberCount)
		for mi, share := range shares {
			mnemonic, err := share.Mnemonic()
			if err != nil {
				return err
			}
			fmt.Printf("  Share %d: %s\n", mi+1, mnemonic)
		}
	}
	return nil
}

// parseGroupSpecs turns "MofN" strings into group parameters.
func parseGroupSpecs(specs []string) ([]slip39.GroupParams, error) {
	groups := make([]slip39.GroupParams, 0, len(specs))
	for _, spec := range specs {
		parts := strings.SplitN(strings.ToLower(spec), "of", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("bad group spec %q, want MofN", spec)
		}
		m, err1 := strconv.Atoi(parts[0])
		n, err2 := strconv.Atoi(parts[1])
		if err1 != nil || err2 != nil {
			return nil, fmt.Errorf("bad group spec %q, want MofN", spec)
		}
		groups = append(groups, slip39.GroupParams{MemberThreshold: m, MemberCount: n})
	}
	return groups, nil
}
