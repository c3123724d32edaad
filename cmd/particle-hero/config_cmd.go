package main

import (
	"github.com/spf13/cobra"

	"github.com/lixenwraith/particle-hero/config"
)

func newConfigCmd(root *rootOptions) *cobra.Command {
	var effective bool
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the default configuration as TOML",
		Long:  "Print the default configuration as TOML. With --effective, print the configuration after file, environment and flags are applied.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !effective {
				return config.WriteDefault(cmd.OutOrStdout())
			}
			cfg, err := loadConfig(cmd, root)
			if err != nil {
				return err
			}
			return config.Encode(cmd.OutOrStdout(), cfg)
		},
	}
	cmd.Flags().BoolVar(&effective, "effective", false, "print the loaded configuration instead of defaults")
	return cmd
}
