// Package output provides utilities for creating termenv.Output with consistent
// color profile and TTY handling across the CLI.
package output

import (
	"io"
	"os"

	"github.com/muesli/termenv"
	"go.trai.ch/zerr"
)

// Mode selects how run progress is rendered.
type Mode string

const (
	// ModeAuto picks pretty output on a terminal and plain output otherwise.
	ModeAuto Mode = "auto"
	// ModePretty renders colored output with icons.
	ModePretty Mode = "pretty"
	// ModePlain renders uncolored text suitable for logs and CI.
	ModePlain Mode = "plain"
)

// ErrUnknownMode is returned by ParseMode for unsupported values.
var ErrUnknownMode = zerr.New("unknown output mode")

// ParseMode converts a flag value into a Mode. The empty string is ModeAuto.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeAuto:
		return ModeAuto, nil
	case ModePretty, ModePlain:
		return Mode(s), nil
	default:
		return "", zerr.With(zerr.Wrap(ErrUnknownMode, "expected auto, pretty or plain"), "mode", s)
	}
}

// ColorProfile returns the color profile to use for interactive environments.
// It checks if NO_COLOR is set, returning Ascii if so.
// Otherwise, it detects the terminal's capabilities automatically.
func ColorProfile() termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

// ColorProfileANSI returns the color profile for CI/non-interactive environments.
func ColorProfileANSI() termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	return termenv.ANSI
}

// ColorProfileASCII never emits color sequences.
func ColorProfileASCII() termenv.Profile {
	return termenv.Ascii
}

// New creates a new termenv.Output with the specific profile logic.
func New(w io.Writer, opts ...termenv.OutputOption) *termenv.Output {
	return NewWithProfile(w, ColorProfile, opts...)
}

// NewWithProfile creates a new termenv.Output with a custom profile selector.
func NewWithProfile(w io.Writer, profileFn func() termenv.Profile, opts ...termenv.OutputOption) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}

	opts = append(opts,
		termenv.WithProfile(profileFn()),
		termenv.WithTTY(true),
	)

	return termenv.NewOutput(w, opts...)
}

// ForMode creates an output for a resolved mode. Plain output has no colors.
func ForMode(w io.Writer, mode Mode) *termenv.Output {
	if mode == ModePlain {
		return NewWithProfile(w, ColorProfileASCII)
	}
	return New(w)
}
