package ports

import "tasktree/internal/core/domain"

// StateStore defines the interface for loading and persisting the
// `.tasktree-state` document used for mtime-based freshness tracking.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type StateStore interface {
	// Load reads the persisted state. If the state file does not exist,
	// it returns an empty State and a nil error. If it exists but
	// cannot be parsed, it returns an empty State and a non-nil error
	// so the caller can log a warning and proceed as if nothing had
	// ever run.
	Load() (domain.State, error)

	// Save atomically persists the full state document, replacing
	// whatever was there before.
	Save(state domain.State) error
}
