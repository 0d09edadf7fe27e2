package cmd

import (
	"os"

	"github.com/goccy/go-yaml"
)

// configFile is looked up in the working directory; a missing file just
// means every setting takes its default.
const configFile = ".cocfg.yaml"

// config is the optional per-project configuration: defaults CLI flags
// shadow, the same way flags shadow built-in defaults.
type config struct {
	// Output is the default path the emitted C is written to when the
	// build command's -o flag is absent.
	Output string `yaml:"output"`

	// Locale is the default diagnostic locale.
	Locale string `yaml:"locale"`

	// Notes controls whether secondary notes are rendered under
	// diagnostics. Defaults to true.
	Notes *bool `yaml:"notes"`
}

func loadConfig() *config {
	cfg := &config{}
	data, err := os.ReadFile(configFile)
	if err != nil {
		return cfg
	}
	// A malformed config is ignored rather than fatal: the file is a
	// convenience layer over flags, not a required input.
	_ = yaml.Unmarshal(data, cfg)
	return cfg
}

func (c *config) includeNotes() bool {
	return c.Notes == nil || *c.Notes
}
