package plugins

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/rsnakamura/theape/internal/adapters/logger"
	"github.com/rsnakamura/theape/internal/core/ports"
)

// NodeID is the unique identifier for the plugin catalog Graft node.
const NodeID graft.ID = "adapter.plugins"

func init() {
	graft.Register(graft.Node[ports.PluginCatalog]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.PluginCatalog, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewRegistry(Builtins(Deps{Logger: log})...), nil
		},
	})
}
