// Package plugins holds the plugin catalog and the built-in plugins.
//
// A plugin turns one section of a run file into a ports.Unit. Options are
// decoded when the unit is built and checked by the unit's Validate method,
// so that a whole run tree is verified before anything is invoked.
package plugins

import (
	"slices"
	"strings"

	"github.com/rsnakamura/theape/internal/core/domain"
	"github.com/rsnakamura/theape/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.PluginCatalog = (*Registry)(nil)

// Registry is a ports.PluginCatalog keyed by plugin name.
type Registry struct {
	plugins map[string]ports.Plugin
}

// NewRegistry creates a registry holding the given plugins.
// Later plugins replace earlier ones of the same name.
func NewRegistry(plugins ...ports.Plugin) *Registry {
	r := &Registry{plugins: make(map[string]ports.Plugin, len(plugins))}
	for _, p := range plugins {
		r.plugins[p.Name()] = p
	}
	return r
}

// Register adds p. A second plugin with the same name is rejected.
func (r *Registry) Register(p ports.Plugin) error {
	if _, ok := r.plugins[p.Name()]; ok {
		return zerr.With(zerr.Wrap(domain.ErrConfiguration, "plugin already registered"), "plugin", p.Name())
	}
	r.plugins[p.Name()] = p
	return nil
}

// Get returns the named plugin.
func (r *Registry) Get(name string) (ports.Plugin, error) {
	p, ok := r.plugins[name]
	if !ok {
		return nil, zerr.With(zerr.Wrap(domain.ErrPluginNotFound, "unknown plugin"), "plugin", name)
	}
	return p, nil
}

// List returns every plugin sorted by name.
func (r *Registry) List() []ports.Plugin {
	list := make([]ports.Plugin, 0, len(r.plugins))
	for _, p := range r.plugins {
		list = append(list, p)
	}
	slices.SortFunc(list, func(a, b ports.Plugin) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return list
}
