// Package config loads the chprompt configuration.
//
// Configuration is resolved with the precedence
// flag > CHPROMPT_* environment variable > ~/.config/chprompt/config.toml > default.
// The file is read once per invocation and never written by the render path.
package config
