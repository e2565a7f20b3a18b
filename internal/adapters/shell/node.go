package shell

import (
	"context"

	"github.com/grindlemire/graft"

	"tasktree/internal/core/ports"
)

// NodeID is the unique identifier for the Executor Graft node.
const NodeID graft.ID = "adapter.executor"

func init() {
	graft.Register(graft.Node[ports.Executor]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.Executor, error) {
			return NewExecutor(), nil
		},
	})
}
