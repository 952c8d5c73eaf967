package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dylankamski/waterscape"
)

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init <name>",
		Short: "Generate an identity and store it under --passphrase",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if passphrase == "" {
				return fmt.Errorf("passphrase required (-p)")
			}
			id, err := waterscape.NewIdentity(args[0])
			if err != nil {
				return err
			}
			defer id.Zero()

			if err := waterscape.SaveIdentityFile(keyPath, passphrase, id); err != nil {
				return err
			}
			fmt.Printf("identity created for %q\nfingerprint: %s\n", id.Name, id.Fingerprint())
			return nil
		},
	}
}
