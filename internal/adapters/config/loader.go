// Package config provides the run file loader for ape.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/rsnakamura/theape/internal/core/domain"
	"github.com/rsnakamura/theape/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using YAML files.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads the run files in order and merges them. Operations accumulate;
// the countdown of the last file that declares one wins.
func (l *Loader) Load(paths []string) (*domain.RunConfig, error) {
	if len(paths) == 0 {
		return nil, domain.ErrNoConfigFiles
	}

	digest := xxhash.New()
	cfg := &domain.RunConfig{Sources: paths}

	for _, path := range paths {
		raw, err := readFile(path)
		if err != nil {
			return nil, err
		}
		_, _ = digest.Write(raw)

		var file RunFile
		if err := unmarshalYAML(raw, &file); err != nil {
			return nil, zerr.With(err, "path", path)
		}

		if file.Countdown != nil {
			if !cfg.Countdown.IsZero() {
				l.Logger.Warn(fmt.Sprintf("countdown in %s replaces an earlier one", path))
			}
			cd, err := parseCountdown(file.Countdown)
			if err != nil {
				return nil, zerr.With(err, "path", path)
			}
			cfg.Countdown = cd
		}

		for _, op := range file.Operations {
			cfg.Operations = append(cfg.Operations, buildOperation(op))
		}
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	cfg.Fingerprint = fmt.Sprintf("%016x", digest.Sum64())
	return cfg, nil
}

func readFile(path string) ([]byte, error) {
	// #nosec G304 -- run files are chosen by the user
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(errors.Join(domain.ErrConfigReadFailed, err), "cannot read run file"), "path", path)
	}
	return raw, nil
}

func unmarshalYAML(raw []byte, target *RunFile) error {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(target); err != nil && !errors.Is(err, io.EOF) {
		return zerr.Wrap(errors.Join(domain.ErrConfigParseFailed, err), "cannot parse run file")
	}
	return nil
}

func parseCountdown(dto *CountdownDTO) (domain.Countdown, error) {
	var cd domain.Countdown

	if dto.Time != "" {
		d, err := time.ParseDuration(strings.ReplaceAll(dto.Time, " ", ""))
		if err != nil || d < 0 {
			return cd, zerr.With(zerr.Wrap(domain.ErrInvalidCountdown, "time must be a positive duration"), "time", dto.Time)
		}
		cd.Total = d
	}

	if dto.End != "" {
		end, err := time.Parse(time.RFC3339, dto.End)
		if err != nil {
			return cd, zerr.With(zerr.Wrap(domain.ErrInvalidCountdown, "end must be an RFC3339 timestamp"), "end", dto.End)
		}
		cd.End = end
	}

	if dto.Iterations < 0 {
		return cd, zerr.With(zerr.Wrap(domain.ErrInvalidCountdown, "iterations must not be negative"), "iterations", dto.Iterations)
	}
	cd.Iterations = dto.Iterations

	return cd, nil
}

func buildOperation(dto OperationDTO) domain.Operation {
	op := domain.Operation{
		Name:    strings.TrimSpace(dto.Name),
		Plugins: make([]domain.PluginSection, 0, len(dto.Plugins)),
	}
	for _, p := range dto.Plugins {
		section := domain.PluginSection{
			Name:    strings.TrimSpace(p.Name),
			Plugin:  strings.TrimSpace(p.Plugin),
			Options: p.Options,
		}
		if section.Name == "" {
			section.Name = section.Plugin
		}
		if section.Options == nil {
			section.Options = map[string]any{}
		}
		op.Plugins = append(op.Plugins, section)
	}
	return op
}

func validate(cfg *domain.RunConfig) error {
	if len(cfg.Operations) == 0 {
		return domain.ErrNoOperations
	}

	seen := make(map[string]bool, len(cfg.Operations))
	for i, op := range cfg.Operations {
		if op.Name == "" {
			return zerr.With(zerr.Wrap(domain.ErrMissingOperationName, "operation has no name"), "index", i+1)
		}
		if seen[op.Name] {
			return zerr.With(zerr.Wrap(domain.ErrDuplicateOperation, "operation declared twice"), "operation", op.Name)
		}
		seen[op.Name] = true

		for j, p := range op.Plugins {
			if p.Plugin == "" {
				err := zerr.With(zerr.Wrap(domain.ErrMissingPluginName, "plugin section has no plugin"), "operation", op.Name)
				return zerr.With(err, "index", j+1)
			}
		}
	}
	return nil
}
