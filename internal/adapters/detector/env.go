// Package detector provides environment detection for output mode selection.
package detector

import (
	"os"

	"github.com/rsnakamura/theape/internal/ui/output"
	"golang.org/x/term"
)

// Environment describes what the process is attached to.
type Environment struct {
	IsTTY bool
	IsCI  bool
}

// DetectEnvironment inspects stdout and the CI variable.
func DetectEnvironment() Environment {
	ci := os.Getenv("CI")
	return Environment{
		IsTTY: term.IsTerminal(int(os.Stdout.Fd())),
		IsCI:  ci == "true" || ci == "1",
	}
}

// Mode returns the output mode recommended for the environment.
func (e Environment) Mode() output.Mode {
	if !e.IsTTY || e.IsCI {
		return output.ModePlain
	}
	return output.ModePretty
}

// ResolveMode applies the user's --output-mode flag to the detected environment.
// Only ModeAuto defers to detection.
func ResolveMode(env Environment, requested output.Mode) output.Mode {
	switch requested {
	case output.ModePretty, output.ModePlain:
		return requested
	default:
		return env.Mode()
	}
}
