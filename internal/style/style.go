// Package style decides whether the prompt segment is colorized and applies
// the color wrapping.
package style

import (
	"bytes"
	"io"
	"os"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/colorprofile"
	"github.com/mattn/go-isatty"
)

// Mode controls when color is applied.
type Mode int

const (
	Auto Mode = iota
	Always
	Never
)

// ParseMode parses a config color value. Unknown values fall back to Auto.
func ParseMode(s string) Mode {
	switch s {
	case "always":
		return Always
	case "never":
		return Never
	default:
		return Auto
	}
}

func (m Mode) String() string {
	switch m {
	case Always:
		return "always"
	case Never:
		return "never"
	default:
		return "auto"
	}
}

// Resolve decides whether color is applied for this render.
// Auto requires a terminal with a TERM that can render color; an empty TERM
// counts as a failed probe and resolves to no color.
func Resolve(mode Mode, isTerminal bool, term string) bool {
	switch mode {
	case Always:
		return true
	case Never:
		return false
	default:
		return isTerminal && term != "" && term != "dumb"
	}
}

// Probe reports whether stdout is a terminal and the TERM it advertises.
func Probe() (isTerminal bool, term string) {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd), os.Getenv("TERM")
}

// segmentStyle is the single style applied to the rendered segment.
var segmentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)

// Wrap colorizes text when useColor is true.
// The styled output is downsampled to 16-color ANSI so the escape sequences
// stay safe inside shell prompts regardless of the terminal's real profile.
func Wrap(text string, useColor bool) string {
	if !useColor || text == "" {
		return text
	}

	var buf bytes.Buffer
	w := &colorprofile.Writer{Forward: &buf, Profile: colorprofile.ANSI}
	if _, err := io.WriteString(w, segmentStyle.Render(text)); err != nil {
		return text
	}
	return buf.String()
}
