package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Print the local identity's shareable public half as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := loadLocalIdentity()
			if err != nil {
				return err
			}
			defer id.Zero()

			data, err := json.MarshalIndent(id.Public(), "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		},
	}
}
