// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/rsnakamura/theape/internal/adapters/config"
	_ "github.com/rsnakamura/theape/internal/adapters/logger"
	_ "github.com/rsnakamura/theape/internal/adapters/plugins"
	// Register app nodes.
	_ "github.com/rsnakamura/theape/internal/app"
)
