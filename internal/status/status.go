// Package status queries the pj CLI for the current channel.
package status

import (
	"context"
	"strings"

	"github.com/jbeck/chprompt/internal/cmd"
)

// Options control the flags passed to the status command.
type Options struct {
	Format         string // template forwarded via --format (empty = command default)
	ShowRepository bool   // also request the repository name
}

// Result is the outcome of a status query.
// A failed or empty query is not an error: it means the working directory
// is not inside a tracked repository and the prompt stays silent.
type Result struct {
	InRepository bool
	Text         string
}

// Query runs `<command> status` in dir and captures its output.
//
// A non-zero exit, a missing command, or empty output all collapse to
// InRepository == false. No timeout is enforced here; callers that need one
// pass a context with a deadline.
func Query(ctx context.Context, dir, command string, opts Options) Result {
	args := []string{"status"}
	if opts.Format != "" {
		args = append(args, "--format", opts.Format)
	}
	if opts.ShowRepository {
		args = append(args, "--show-repository")
	}

	out, err := cmd.OutputContext(ctx, dir, command, args...)
	if err != nil {
		return Result{}
	}

	text := strings.TrimRight(string(out), " \t\r\n")
	if text == "" {
		return Result{}
	}

	return Result{InRepository: true, Text: text}
}
