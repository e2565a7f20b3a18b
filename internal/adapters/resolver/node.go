package resolver

import (
	"context"

	"github.com/grindlemire/graft"

	"tasktree/internal/core/ports"
)

// NodeID is the unique identifier for the InputResolver Graft node.
const NodeID graft.ID = "adapter.resolver"

func init() {
	graft.Register(graft.Node[ports.InputResolver]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.InputResolver, error) {
			return NewResolver(), nil
		},
	})
}
