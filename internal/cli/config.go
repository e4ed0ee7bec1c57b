package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/quiverview/pkg/config"
)

// configCommand creates the config command, which prints the effective
// configuration as TOML.
func (c *CLI) configCommand() *cobra.Command {
	var showPath bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration in effect after applying the config file over the
defaults. The output is valid TOML and can be used as a starting point:

  quiverview config > ~/.config/quiverview/config.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showPath {
				path := c.configPath
				if path == "" {
					p, err := config.UserPath()
					if err != nil {
						return err
					}
					path = p
				}
				fmt.Println(path)
				return nil
			}
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			return config.Encode(cfg, os.Stdout)
		},
	}

	cmd.Flags().BoolVar(&showPath, "path", false, "print the config file location instead")
	return cmd
}
