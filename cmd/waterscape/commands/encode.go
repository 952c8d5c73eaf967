package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dylankamski/waterscape"
)

var (
	encodeCoverPath string
	encodeSecret    string
	encodeToPath    string
)

func encodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Hide a secret message inside cover text for a recipient",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := loadLocalIdentity()
			if err != nil {
				return err
			}
			defer id.Zero()

			recipient, err := loadPublicIdentity(encodeToPath)
			if err != nil {
				return err
			}

			cover, err := readCoverText(encodeCoverPath)
			if err != nil {
				return err
			}

			stego, err := waterscape.Encode(id, recipient, cover, encodeSecret)
			if err != nil {
				return err
			}
			fmt.Println(stego)
			return nil
		},
	}
	cmd.Flags().StringVar(&encodeCoverPath, "cover", "", "cover text file (default stdin)")
	cmd.Flags().StringVar(&encodeSecret, "secret", "", "secret message to hide")
	cmd.Flags().StringVar(&encodeToPath, "to", "", "recipient's exported public identity (JSON file)")
	_ = cmd.MarkFlagRequired("secret")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func loadPublicIdentity(path string) (waterscape.PublicIdentity, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return waterscape.PublicIdentity{}, err
	}
	var pub waterscape.PublicIdentity
	if err := json.Unmarshal(data, &pub); err != nil {
		return waterscape.PublicIdentity{}, err
	}
	return pub, nil
}

func readCoverText(path string) (string, error) {
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}
