package ports

import "tasktree/internal/core/domain"

// ConfigLoader defines the interface for loading a recipe file, resolving
// its imports, and returning a flattened task graph.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the recipe at path (or discovers one starting at path if
	// path is a directory) and returns the fully resolved, validated
	// task graph.
	Load(path string) (*domain.Graph, error)
}
