package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jbeck/chprompt/internal/cache"
	"github.com/jbeck/chprompt/internal/log"
)

func newResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Drop the cached prompt segment",
		Args:  cobra.NoArgs,
		Long: `Drop the cached segment for this shell session so the next redraw
re-queries pj immediately instead of waiting for the cache to expire.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, release, err := cache.Open(cache.DefaultPath())
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			defer release()

			store.Clear()
			if err := store.Save(); err != nil {
				return fmt.Errorf("save cache: %w", err)
			}

			l := log.FromContext(cmd.Context())
			l.Printf("Cleared %s\n", store.Path())
			return nil
		},
	}

	return cmd
}
