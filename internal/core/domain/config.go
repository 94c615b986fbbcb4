package domain

import "time"

// RunConfig is a fully loaded run description.
type RunConfig struct {
	// Fingerprint identifies the exact bytes the configuration was loaded from.
	Fingerprint string
	// Sources lists the files the configuration was merged from, in order.
	Sources    []string
	Countdown  Countdown
	Operations []Operation
}

// Countdown bounds how often the top-level operations are repeated.
// The zero value grants a single pass.
type Countdown struct {
	// Total is the overall time allowed for repetition.
	Total time.Duration
	// End is a wall-clock deadline.
	End time.Time
	// Iterations caps the number of passes.
	Iterations int
}

// IsZero reports whether no limit is configured.
func (c Countdown) IsZero() bool {
	return c.Total == 0 && c.End.IsZero() && c.Iterations == 0
}

// Operation is an ordered group of plugin sections run as one unit.
type Operation struct {
	Name    string
	Plugins []PluginSection
}

// PluginSection configures one plugin instance.
type PluginSection struct {
	// Name labels this instance in reports.
	Name string
	// Plugin is the catalog name of the plugin to build.
	Plugin string
	// Options are the raw, plugin-specific settings.
	Options map[string]any
}
