package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// demoSettings configures the simulated workload. Values can come from a
// YAML file via --settings; the --total and --delay flags override it.
type demoSettings struct {
	// TotalItems is the number of simulated work items.
	TotalItems int `yaml:"totalItems"`

	// ItemDelayMillis is the simulated processing time per item, in
	// milliseconds.
	ItemDelayMillis int `yaml:"itemDelayMs"`

	// ItemPrefix names the simulated items, e.g. "photos/" yields
	// photos/0001, photos/0002, ...
	ItemPrefix string `yaml:"itemPrefix"`

	// Glyphs optionally replaces the spinner glyph table of the bar.
	Glyphs string `yaml:"glyphs"`
}

func defaultSettings() *demoSettings {
	return &demoSettings{
		TotalItems:      50,
		ItemDelayMillis: 100,
		ItemPrefix:      "item-",
	}
}

// loadSettings reads the settings file when one was given, falling back to
// defaults for anything unset.
func loadSettings(path string) (*demoSettings, error) {
	settings := defaultSettings()
	if path == "" {
		return settings, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read settings file: %w", err)
	}
	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("unable to parse settings file: %w", err)
	}
	if settings.TotalItems <= 0 {
		return nil, fmt.Errorf("totalItems must be positive, got %d", settings.TotalItems)
	}
	return settings, nil
}

// itemDelay returns the per-item delay as a duration.
func (s *demoSettings) itemDelay() time.Duration {
	return time.Duration(s.ItemDelayMillis) * time.Millisecond
}
