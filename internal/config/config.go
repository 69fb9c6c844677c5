package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
)

// DefaultFormat is the default prompt segment template.
const DefaultFormat = "[{channel}]"

// DefaultStatusCommand is the VCS CLI queried for the current channel.
const DefaultStatusCommand = "pj"

// Environment variables overriding the config file.
// Precedence: command-line flag > environment > config file > default.
const (
	EnvFormat         = "CHPROMPT_FORMAT"
	EnvColor          = "CHPROMPT_COLOR"
	EnvShowRepository = "CHPROMPT_SHOW_REPOSITORY"
	EnvStatusCommand  = "CHPROMPT_STATUS_COMMAND"
)

// Config holds the chprompt configuration.
type Config struct {
	Format         string `toml:"format"`
	Color          string `toml:"color"` // "auto", "always", or "never"
	ShowRepository bool   `toml:"show_repository"`
	StatusCommand  string `toml:"status_command"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Format:         DefaultFormat,
		Color:          "auto",
		ShowRepository: false,
		StatusCommand:  DefaultStatusCommand,
	}
}

// configPath returns the path to the config file
func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "chprompt", "config.toml"), nil
}

// Load reads config from ~/.config/chprompt/config.toml and applies
// environment overrides.
// Returns Default() if the file doesn't exist (no error).
// Returns error only if the file exists but is invalid.
func Load() (Config, error) {
	path, err := configPath()
	if err != nil {
		return applyEnv(Default()), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from the given path and applies environment overrides.
func LoadFrom(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return applyEnv(cfg), nil
		}
		return applyEnv(cfg), fmt.Errorf("failed to read config file: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return applyEnv(Default()), fmt.Errorf("failed to parse config file: %w", err)
	}

	// Use defaults for empty values
	if cfg.Format == "" {
		cfg.Format = DefaultFormat
	}
	if cfg.Color == "" {
		cfg.Color = "auto"
	}
	if cfg.StatusCommand == "" {
		cfg.StatusCommand = DefaultStatusCommand
	}

	cfg = applyEnv(cfg)

	if err := validate(cfg); err != nil {
		return applyEnv(Default()), err
	}

	return cfg, nil
}

// applyEnv overlays CHPROMPT_* environment variables onto cfg.
func applyEnv(cfg Config) Config {
	if v := os.Getenv(EnvFormat); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv(EnvColor); v != "" {
		cfg.Color = v
	}
	if v := os.Getenv(EnvShowRepository); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.ShowRepository = b
		}
	}
	if v := os.Getenv(EnvStatusCommand); v != "" {
		cfg.StatusCommand = v
	}
	return cfg
}

// validate checks config values after merging.
func validate(cfg Config) error {
	switch cfg.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("invalid color %q: must be \"auto\", \"always\", or \"never\"", cfg.Color)
	}
	return nil
}

const defaultConfig = `# chprompt configuration

# Prompt segment template.
# Available placeholders:
#   {channel}     - the channel currently checked out
#   {repository}  - the repository name (requires show_repository = true)
# Unknown placeholders are left as-is.
# format = "[{channel}]"

# When to colorize the segment: "auto", "always", or "never".
# "auto" colorizes only when stdout is a terminal that supports color.
# color = "auto"

# Ask the status command for the repository name so {repository} resolves.
# show_repository = false

# The VCS CLI to query. Invoked as:
#   <status_command> status --format <template> [--show-repository]
# status_command = "pj"
`

// Init creates a default config file at ~/.config/chprompt/config.toml
// If force is true, overwrites an existing file.
// Returns the path to the created file.
func Init(force bool) (string, error) {
	path, err := configPath()
	if err != nil {
		return "", err
	}

	if !force {
		if _, err := os.Stat(path); err == nil {
			return "", errors.New("config file already exists: " + path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}

	if err := os.WriteFile(path, []byte(defaultConfig), 0644); err != nil {
		return "", err
	}

	return path, nil
}
