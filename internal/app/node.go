package app

import (
	"context"

	"github.com/grindlemire/graft"

	"tasktree/internal/adapters/logger"
	"tasktree/internal/adapters/recipe" //nolint:depguard // Wired in app layer
	"tasktree/internal/adapters/render" //nolint:depguard // Wired in app layer
	"tasktree/internal/adapters/resolver"
	"tasktree/internal/adapters/shell"
	"tasktree/internal/core/ports"
)

// ComponentsNodeID is the unique identifier for the app Components
// Graft node.
const ComponentsNodeID graft.ID = "app.components"

func init() {
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			logger.NodeID,
			recipe.NodeID,
			resolver.NodeID,
			shell.NodeID,
			render.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			loader, err := graft.Dep[*recipe.Loader](ctx)
			if err != nil {
				return nil, err
			}

			res, err := graft.Dep[ports.InputResolver](ctx)
			if err != nil {
				return nil, err
			}

			exec, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			renderer, err := graft.Dep[*render.Renderer](ctx)
			if err != nil {
				return nil, err
			}

			return NewComponents(loader, res, exec, log, renderer), nil
		},
	})
}
