package main

import (
	"github.com/spf13/cobra"

	"github.com/jbeck/chprompt/internal/cache"
	"github.com/jbeck/chprompt/internal/log"
	"github.com/jbeck/chprompt/internal/output"
	"github.com/jbeck/chprompt/internal/prompt"
)

func newPromptCmd() *cobra.Command {
	var format string
	var color string
	var command string
	var showRepository bool

	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Print the status segment for the current prompt redraw",
		Args:  cobra.NoArgs,
		Long: `Print the prompt segment for the current working directory.

Called by the shell on every prompt redraw (see "chprompt hook"). The
rendered segment is cached per directory for a few seconds so rapid
redraws don't re-query pj.

Prints nothing and exits 0 when the directory is not inside a tracked
repository, when pj is not installed, or on any other failure: the
prompt must never show noise.`,
		Example: `  chprompt prompt
  chprompt prompt --format "({channel})" --color never`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)
			l := log.FromContext(ctx)

			// Flag overrides beat env and file values
			effective := *cfg
			if cmd.Flags().Changed("format") {
				effective.Format = format
			}
			if cmd.Flags().Changed("color") {
				effective.Color = color
			}
			if cmd.Flags().Changed("show-repository") {
				effective.ShowRepository = showRepository
			}
			if cmd.Flags().Changed("command") {
				effective.StatusCommand = command
			}

			store, release, err := cache.Open(cache.DefaultPath())
			if err != nil {
				// Degrade to a fresh slot: always recompute, never complain
				if l.Verbose() {
					l.Printf("Warning: cache unavailable: %v\n", err)
				}
				store = cache.NewStore("")
				release = func() {}
			}
			defer release()

			segment := prompt.New(store, effective, workDir).Render(ctx)

			if store.Path() != "" {
				if err := store.Save(); err != nil && l.Verbose() {
					l.Printf("Warning: failed to save cache: %v\n", err)
				}
			}

			if segment != "" {
				out.Println(segment)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "Segment template, e.g. \"[{channel}]\"")
	cmd.Flags().StringVar(&color, "color", "", "When to colorize: auto, always, or never")
	cmd.Flags().BoolVar(&showRepository, "show-repository", false, "Resolve {repository} in the template")
	cmd.Flags().StringVar(&command, "command", "", "VCS CLI to query for status")

	return cmd
}
