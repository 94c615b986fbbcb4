package plugins

import (
	"errors"
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/rsnakamura/theape/internal/core/domain"
	"go.trai.ch/zerr"
)

// about carries the descriptive half of ports.Plugin.
type about struct {
	name    string
	summary string
	help    string
	sample  string
}

func (a about) Name() string    { return a.name }
func (a about) Summary() string { return a.summary }
func (a about) Help() string    { return a.help }
func (a about) Sample() string  { return a.sample }

// decodeOptions decodes the section options into target. Durations may be
// written as Go duration strings and unknown keys are rejected.
func decodeOptions(section domain.PluginSection, target any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
		ErrorUnused: true,
		Result:      target,
	})
	if err != nil {
		return zerr.Wrap(err, "failed to create options decoder")
	}
	if err := dec.Decode(section.Options); err != nil {
		return zerr.With(zerr.Wrap(errors.Join(domain.ErrInvalidPluginOptions, err), "cannot decode plugin options"), "plugin", section.Name)
	}
	return nil
}

// invalid reports a violated option constraint.
func invalid(section string, msg string) error {
	return zerr.With(zerr.Wrap(domain.ErrConfiguration, msg), "plugin", section)
}

// failed reports a plugin failure that an operation may contain.
func failed(section string, msg string, cause error) error {
	err := domain.ErrPluginFailed
	if cause != nil {
		err = errors.Join(domain.ErrPluginFailed, cause)
	}
	return zerr.With(zerr.Wrap(err, msg), "plugin", section)
}

// unitLabel names a unit in reports.
func unitLabel(section domain.PluginSection) string {
	if section.Name == "" || section.Name == section.Plugin {
		return section.Plugin
	}
	return fmt.Sprintf("%s (%s)", section.Name, section.Plugin)
}
