// Package wiring registers all Graft nodes for the application. It is
// imported once, for its side effects, from cmd/tt/main.go.
package wiring

import (
	// Register adapter nodes.
	_ "tasktree/internal/adapters/logger"
	_ "tasktree/internal/adapters/recipe"
	_ "tasktree/internal/adapters/render"
	_ "tasktree/internal/adapters/resolver"
	_ "tasktree/internal/adapters/shell"
	// Register app nodes.
	_ "tasktree/internal/app"
)
