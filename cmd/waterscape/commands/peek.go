package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dylankamski/waterscape"
)

var peekInPath string

func peekCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "peek",
		Short: "Report whether text carries a hidden message and print its visible form",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readCoverText(peekInPath)
			if err != nil {
				return err
			}
			fmt.Printf("hidden message: %t\n", waterscape.HasHiddenMessage(text))
			fmt.Printf("visible text:\n%s\n", waterscape.VisibleText(text))
			return nil
		},
	}
	cmd.Flags().StringVar(&peekInPath, "in", "", "text file to inspect (default stdin)")
	return cmd
}
