package ports

import "github.com/rsnakamura/theape/internal/core/domain"

// Plugin builds units from configuration sections.
//
//go:generate mockgen -source=plugin.go -destination=mocks/mock_plugin.go -package=mocks
type Plugin interface {
	// Name is the catalog name referenced by run files.
	Name() string
	// Summary is a one-line description used by listings.
	Summary() string
	// Help is the long-form documentation of the plugin and its options.
	Help() string
	// Sample returns an example plugin section in run-file syntax.
	Sample() string
	// Build creates a unit for the given section.
	Build(section domain.PluginSection) (Unit, error)
}

// PluginCatalog looks plugins up by name.
type PluginCatalog interface {
	// Get returns the named plugin or an error wrapping domain.ErrPluginNotFound.
	Get(name string) (Plugin, error)
	// List returns all known plugins sorted by name.
	List() []Plugin
}
