package commands

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dylankamski/waterscape/internal/wslog"
)

var (
	home       string
	passphrase string
	verbose    bool

	keyPath string
)

// Execute builds and runs the waterscape command tree.
func Execute() error {
	root := &cobra.Command{
		Use:   "waterscape",
		Short: "Zero-width steganographic messaging over cover text",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			wslog.Debug(verbose)
			if home == "" {
				dir, err := os.UserHomeDir()
				if err != nil {
					return err
				}
				home = filepath.Join(dir, ".waterscape")
			}
			if err := os.MkdirAll(home, 0o700); err != nil {
				return err
			}
			keyPath = filepath.Join(home, "identity.json")
			return nil
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "config dir (default ~/.waterscape)")
	root.PersistentFlags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase protecting the identity keystore")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(initCmd(), fingerprintCmd(), exportCmd(), encodeCmd(), decodeCmd(), peekCmd())
	return root.Execute()
}
