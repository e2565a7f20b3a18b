package app

import (
	"tasktree/internal/adapters/recipe"
	"tasktree/internal/adapters/render"
	"tasktree/internal/core/ports"
)

// Components bundles the long-lived, stateless collaborators shared by
// every CLI command. Anything that depends on a resolved recipe
// location (the state store, the engine, the runner, the App) is built
// fresh per invocation once the recipe path is known, so it has no
// place in this bundle.
type Components struct {
	Loader   *recipe.Loader
	Resolver ports.InputResolver
	Executor ports.Executor
	Logger   ports.Logger
	Renderer *render.Renderer
}

// NewComponents assembles a Components bundle from its parts. Graft's
// Components node calls this once at startup; tests construct it
// directly with fakes.
func NewComponents(loader *recipe.Loader, resolver ports.InputResolver, executor ports.Executor, log ports.Logger, renderer *render.Renderer) *Components {
	return &Components{
		Loader:   loader,
		Resolver: resolver,
		Executor: executor,
		Logger:   log,
		Renderer: renderer,
	}
}
