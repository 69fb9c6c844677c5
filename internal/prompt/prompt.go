// Package prompt renders the status segment emitted on every prompt redraw.
package prompt

import (
	"context"
	"strings"
	"time"

	"github.com/jbeck/chprompt/internal/cache"
	"github.com/jbeck/chprompt/internal/config"
	"github.com/jbeck/chprompt/internal/render"
	"github.com/jbeck/chprompt/internal/status"
	"github.com/jbeck/chprompt/internal/style"
)

// Machine templates sent to the status command. The user's template is
// rendered locally so the cache always holds the final string.
const (
	channelQuery     = "{channel}"
	repoChannelQuery = "{repository}\n{channel}"
)

// Renderer owns the cache slot and the per-invocation configuration.
// The slot starts empty, is overwritten on every miss, and lives as long as
// the shell session; config and template are read fresh on every call.
type Renderer struct {
	Store  *cache.Store
	Config config.Config
	Dir    string

	// Now and Probe exist so tests can pin the clock and the terminal.
	Now   func() time.Time
	Probe func() (isTerminal bool, term string)
}

// New creates a Renderer for one prompt redraw in dir.
func New(store *cache.Store, cfg config.Config, dir string) *Renderer {
	return &Renderer{
		Store:  store,
		Config: cfg,
		Dir:    dir,
		Now:    time.Now,
		Probe:  style.Probe,
	}
}

// Render produces the segment for the current directory.
//
// Cache hit: the stored string is returned as-is, color already baked in,
// without touching the status command. Cache miss: the status command is
// queried once; no repository clears the slot and yields the empty string,
// otherwise the template is rendered, color-wrapped, stored, and returned.
// Nothing on this path is an error the host shell ever sees.
func (r *Renderer) Render(ctx context.Context) string {
	now := r.Now()

	if entry, ok := r.Store.Lookup(r.Dir, now); ok {
		return entry.RenderedText
	}

	opts := status.Options{Format: channelQuery}
	if r.Config.ShowRepository {
		opts = status.Options{Format: repoChannelQuery, ShowRepository: true}
	}

	res := status.Query(ctx, r.Dir, r.Config.StatusCommand, opts)
	if !res.InRepository {
		r.Store.Clear()
		return ""
	}

	text := render.Render(r.Config.Format, parseValues(res.Text, r.Config.ShowRepository))

	isTerminal, term := r.Probe()
	useColor := style.Resolve(style.ParseMode(r.Config.Color), isTerminal, term)
	wrapped := style.Wrap(text, useColor)

	r.Store.Store(r.Dir, now, wrapped)
	return wrapped
}

// parseValues splits the status command output into placeholder values.
// With --show-repository the command reports the repository on the first
// line and the channel on the second; a single line is just the channel.
func parseValues(text string, showRepository bool) render.Values {
	if !showRepository {
		return render.Values{Channel: text}
	}

	repo, channel, found := strings.Cut(text, "\n")
	if !found {
		return render.Values{Channel: text}
	}
	return render.Values{
		Channel:    strings.TrimSpace(channel),
		Repository: strings.TrimSpace(repo),
	}
}
