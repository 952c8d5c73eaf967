package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dylankamski/waterscape"
)

var (
	decodeInPath   string
	decodeFromPath string
)

func decodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Recover a hidden secret message from stego text",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := loadLocalIdentity()
			if err != nil {
				return err
			}
			defer id.Zero()

			stego, err := readCoverText(decodeInPath)
			if err != nil {
				return err
			}

			var sender *waterscape.PublicIdentity
			if decodeFromPath != "" {
				pub, err := loadPublicIdentity(decodeFromPath)
				if err != nil {
					return err
				}
				sender = &pub
			}

			secret, err := waterscape.Decode(id, sender, stego)
			if err != nil {
				return err
			}
			fmt.Println(secret)
			return nil
		},
	}
	cmd.Flags().StringVar(&decodeInPath, "in", "", "stego text file (default stdin)")
	cmd.Flags().StringVar(&decodeFromPath, "from", "", "expected sender's public identity (JSON file); unset trusts the embedded sender")
	return cmd
}
