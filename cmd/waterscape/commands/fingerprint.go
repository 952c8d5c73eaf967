package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dylankamski/waterscape"
)

func fingerprintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fingerprint",
		Short: "Print the local identity's fingerprint",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := loadLocalIdentity()
			if err != nil {
				return err
			}
			defer id.Zero()
			fmt.Println(id.Fingerprint())
			return nil
		},
	}
}

func loadLocalIdentity() (*waterscape.Identity, error) {
	if passphrase == "" {
		return nil, fmt.Errorf("passphrase required (-p)")
	}
	return waterscape.LoadIdentityFile(keyPath, passphrase)
}
