package main

import (
	"github.com/spf13/cobra"

	"github.com/jbeck/chprompt/internal/cache"
	"github.com/jbeck/chprompt/internal/output"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		Long: `Print the configuration after merging environment variables over the
config file. Useful for checking what "chprompt prompt" will actually use.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.FromContext(cmd.Context())

			out.Printf("format          = %q\n", cfg.Format)
			out.Printf("color           = %q\n", cfg.Color)
			out.Printf("show_repository = %t\n", cfg.ShowRepository)
			out.Printf("status_command  = %q\n", cfg.StatusCommand)
			out.Printf("cache_file      = %q\n", cache.DefaultPath())
			return nil
		},
	}

	return cmd
}
