// Package render substitutes placeholders in prompt segment templates.
package render

import "strings"

// Values are the resolved placeholder values for one render.
type Values struct {
	Channel    string
	Repository string // empty when not requested or not reported
}

// Render performs a single literal substitution pass over template.
// Recognized placeholders are {channel} and {repository}; a requested but
// missing repository substitutes to the empty string. Anything else,
// including unknown {tokens}, passes through untouched.
func Render(template string, values Values) string {
	r := strings.NewReplacer(
		"{channel}", values.Channel,
		"{repository}", values.Repository,
	)
	return r.Replace(template)
}
