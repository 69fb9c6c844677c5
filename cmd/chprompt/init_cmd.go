package main

import (
	"github.com/spf13/cobra"

	"github.com/jbeck/chprompt/internal/config"
	"github.com/jbeck/chprompt/internal/output"
)

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a default config file",
		Args:  cobra.NoArgs,
		Long:  `Create a commented default config file at ~/.config/chprompt/config.toml.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.Init(force)
			if err != nil {
				return err
			}

			out := output.FromContext(cmd.Context())
			out.Printf("Created %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing config file")

	return cmd
}
