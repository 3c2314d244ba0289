// Package output renders command results as styled text, markdown, JSON or
// YAML.
package output

import "fmt"

// Mode selects how a Renderer formats its output.
type Mode string

// Output modes.
const (
	ModeAuto     Mode = "auto"
	ModeText     Mode = "text"
	ModeMarkdown Mode = "markdown"
	ModeJSON     Mode = "json"
	ModeYAML     Mode = "yaml"
)

// Modes lists every accepted mode.
var Modes = []Mode{ModeAuto, ModeText, ModeMarkdown, ModeJSON, ModeYAML}

// ParseMode converts a config or flag value into a Mode. An empty string is
// ModeAuto.
func ParseMode(s string) (Mode, error) {
	if s == "" {
		return ModeAuto, nil
	}
	for _, m := range Modes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown output mode %q (want auto, text, markdown, json or yaml)", s)
}

// Structured reports whether the mode emits machine-readable documents.
func (m Mode) Structured() bool {
	return m == ModeJSON || m == ModeYAML
}
