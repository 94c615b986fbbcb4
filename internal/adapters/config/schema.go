package config

// RunFile represents the structure of an ape.yaml run file.
type RunFile struct {
	Countdown  *CountdownDTO  `yaml:"countdown"`
	Operations []OperationDTO `yaml:"operations"`
}

// CountdownDTO bounds repetition of the operations.
type CountdownDTO struct {
	// Time is a Go duration such as "90s" or "1h30m".
	Time string `yaml:"time"`
	// End is an RFC3339 timestamp.
	End        string `yaml:"end"`
	Iterations int    `yaml:"iterations"`
}

// OperationDTO represents an operation definition in the run file.
type OperationDTO struct {
	Name    string      `yaml:"name"`
	Plugins []PluginDTO `yaml:"plugins"`
}

// PluginDTO represents a plugin section in the run file.
type PluginDTO struct {
	Name    string         `yaml:"name"`
	Plugin  string         `yaml:"plugin"`
	Options map[string]any `yaml:"options"`
}

// Sample is the skeleton printed by "ape fetch" ahead of plugin sections.
const Sample = `# ape run file
countdown:
  # Passes stop at the first limit reached; omit all of them for a single pass.
  iterations: 1
  # time: 10m
  # end: 2030-01-02T15:04:05Z

operations:
  - name: example
    plugins:
`
