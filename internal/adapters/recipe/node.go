package recipe

import (
	"context"

	"github.com/grindlemire/graft"

	"tasktree/internal/adapters/logger" //nolint:depguard // Wired in adapter layer
	"tasktree/internal/core/ports"
)

// NodeID is the unique identifier for the recipe Loader Graft node.
const NodeID graft.ID = "adapter.loader"

func init() {
	graft.Register(graft.Node[*Loader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (*Loader, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(log), nil
		},
	})
}
