package ports

import "github.com/rsnakamura/theape/internal/core/domain"

// ConfigLoader defines the interface for loading run files.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads and merges the given run files in order.
	Load(paths []string) (*domain.RunConfig, error)
}
