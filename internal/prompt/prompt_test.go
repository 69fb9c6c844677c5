package prompt

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jbeck/chprompt/internal/cache"
	"github.com/jbeck/chprompt/internal/config"
)

// stubStatus builds a fake pj that appends to a counter file and prints the
// contents of an output file. Tests control the output by rewriting outFile
// and observe invocations through invocations().
func stubStatus(t *testing.T) (command, countFile, outFile string) {
	t.Helper()
	dir := t.TempDir()
	command = filepath.Join(dir, "pj")
	countFile = filepath.Join(dir, "count")
	outFile = filepath.Join(dir, "out")

	script := fmt.Sprintf("#!/bin/sh\necho run >> '%s'\ncat '%s'\n", countFile, outFile)
	if err := os.WriteFile(command, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(outFile, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	return command, countFile, outFile
}

func setOutput(t *testing.T, outFile, content string) {
	t.Helper()
	if err := os.WriteFile(outFile, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func invocations(t *testing.T, countFile string) int {
	t.Helper()
	data, err := os.ReadFile(countFile)
	if err != nil {
		if os.IsNotExist(err) {
			return 0
		}
		t.Fatal(err)
	}
	return strings.Count(string(data), "\n")
}

func testRenderer(t *testing.T, cfg config.Config, store *cache.Store, dir string, now time.Time) *Renderer {
	t.Helper()
	r := New(store, cfg, dir)
	r.Now = func() time.Time { return now }
	r.Probe = func() (bool, string) { return false, "" }
	return r
}

func TestRenderEndToEnd(t *testing.T) {
	t.Parallel()

	command, _, outFile := stubStatus(t)
	setOutput(t, outFile, "main\n")

	cfg := config.Config{Format: "({channel})", Color: "auto", StatusCommand: command}
	store := cache.NewStore(filepath.Join(t.TempDir(), "slot.json"))

	r := testRenderer(t, cfg, store, t.TempDir(), time.Now())
	got := r.Render(context.Background())

	// Not a terminal, auto mode: uncolored
	if got != "(main)" {
		t.Errorf("Render = %q, want %q", got, "(main)")
	}
}

func TestRenderCacheHitSkipsQuery(t *testing.T) {
	t.Parallel()

	command, countFile, outFile := stubStatus(t)
	setOutput(t, outFile, "main\n")

	cfg := config.Config{Format: "[{channel}]", Color: "never", StatusCommand: command}
	store := cache.NewStore(filepath.Join(t.TempDir(), "slot.json"))
	dir := t.TempDir()
	now := time.Now()

	first := testRenderer(t, cfg, store, dir, now).Render(context.Background())
	second := testRenderer(t, cfg, store, dir, now.Add(cache.TTL-time.Second)).Render(context.Background())

	if first != "[main]" {
		t.Errorf("first Render = %q, want %q", first, "[main]")
	}
	if second != first {
		t.Errorf("cached Render = %q, want identical %q", second, first)
	}
	if n := invocations(t, countFile); n != 1 {
		t.Errorf("status invocations = %d, want 1 (hit must not re-query)", n)
	}
}

func TestRenderExpiryRequeries(t *testing.T) {
	t.Parallel()

	command, countFile, outFile := stubStatus(t)
	setOutput(t, outFile, "main\n")

	cfg := config.Config{Format: "[{channel}]", Color: "never", StatusCommand: command}
	store := cache.NewStore(filepath.Join(t.TempDir(), "slot.json"))
	dir := t.TempDir()
	now := time.Now()

	testRenderer(t, cfg, store, dir, now).Render(context.Background())
	testRenderer(t, cfg, store, dir, now.Add(cache.TTL)).Render(context.Background())

	if n := invocations(t, countFile); n != 2 {
		t.Errorf("status invocations = %d, want 2 (stale entry must re-query)", n)
	}
}

func TestRenderDirectorySwitchMisses(t *testing.T) {
	t.Parallel()

	command, countFile, outFile := stubStatus(t)
	setOutput(t, outFile, "main\n")

	cfg := config.Config{Format: "[{channel}]", Color: "never", StatusCommand: command}
	store := cache.NewStore(filepath.Join(t.TempDir(), "slot.json"))
	dirA := t.TempDir()
	dirB := t.TempDir()
	now := time.Now()

	testRenderer(t, cfg, store, dirA, now).Render(context.Background())
	testRenderer(t, cfg, store, dirB, now.Add(time.Second)).Render(context.Background())
	// Back to A within the TTL: single slot, still a miss
	testRenderer(t, cfg, store, dirA, now.Add(2*time.Second)).Render(context.Background())

	if n := invocations(t, countFile); n != 3 {
		t.Errorf("status invocations = %d, want 3 (single-slot cache never retains across directories)", n)
	}
}

func TestRenderNoRepositoryClearsCache(t *testing.T) {
	t.Parallel()

	command, _, outFile := stubStatus(t)
	setOutput(t, outFile, "main\n")

	cfg := config.Config{Format: "[{channel}]", Color: "never", StatusCommand: command}
	store := cache.NewStore(filepath.Join(t.TempDir(), "slot.json"))
	dir := t.TempDir()
	now := time.Now()

	if got := testRenderer(t, cfg, store, dir, now).Render(context.Background()); got != "[main]" {
		t.Fatalf("Render = %q, want %q", got, "[main]")
	}

	// Repository vanishes: empty output must clear the slot and emit nothing
	setOutput(t, outFile, "")
	got := testRenderer(t, cfg, store, dir, now.Add(cache.TTL)).Render(context.Background())
	if got != "" {
		t.Errorf("Render outside repository = %q, want empty", got)
	}

	if _, ok := store.Lookup(dir, now.Add(cache.TTL)); ok {
		t.Error("Lookup after no-repository render = hit, want cleared slot")
	}
}

func TestRenderShowRepository(t *testing.T) {
	t.Parallel()

	command, _, outFile := stubStatus(t)
	setOutput(t, outFile, "proj\nmain\n")

	cfg := config.Config{
		Format:         "{repository}:{channel}",
		Color:          "never",
		ShowRepository: true,
		StatusCommand:  command,
	}
	store := cache.NewStore(filepath.Join(t.TempDir(), "slot.json"))

	got := testRenderer(t, cfg, store, t.TempDir(), time.Now()).Render(context.Background())
	if got != "proj:main" {
		t.Errorf("Render = %q, want %q", got, "proj:main")
	}
}

func TestRenderColorBakedIntoCache(t *testing.T) {
	t.Parallel()

	command, _, outFile := stubStatus(t)
	setOutput(t, outFile, "main\n")

	cfg := config.Config{Format: "[{channel}]", Color: "always", StatusCommand: command}
	store := cache.NewStore(filepath.Join(t.TempDir(), "slot.json"))
	dir := t.TempDir()
	now := time.Now()

	first := testRenderer(t, cfg, store, dir, now).Render(context.Background())
	if !strings.Contains(first, "\x1b[") {
		t.Fatalf("Render with color=always = %q, want ANSI escapes", first)
	}

	// The hit returns the stored string as-is; color is not re-resolved
	second := testRenderer(t, cfg, store, dir, now.Add(time.Second)).Render(context.Background())
	if second != first {
		t.Errorf("cached Render = %q, want identical %q", second, first)
	}
}

func TestParseValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		text           string
		showRepository bool
		wantChannel    string
		wantRepository string
	}{
		{"channel only", "main", false, "main", ""},
		{"repository and channel", "proj\nmain", true, "main", "proj"},
		{"missing repository line", "main", true, "main", ""},
		{"empty repository line", "\nmain", true, "main", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := parseValues(tt.text, tt.showRepository)
			if got.Channel != tt.wantChannel {
				t.Errorf("Channel = %q, want %q", got.Channel, tt.wantChannel)
			}
			if got.Repository != tt.wantRepository {
				t.Errorf("Repository = %q, want %q", got.Repository, tt.wantRepository)
			}
		})
	}
}
