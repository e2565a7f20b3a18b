// Package statestore persists the `.tasktree-state` document used for
// mtime-based freshness tracking.
package statestore

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/zerr"
	"tasktree/internal/core/domain"
)

const filePerm = 0o644

// FileStore implements ports.StateStore as a single JSON file in the
// recipe root, rewritten atomically via a temp-file-then-rename.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore backed by .tasktree-state under dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{path: filepath.Join(dir, ".tasktree-state")}
}

// Load reads and parses the state file. A missing file yields an empty
// state and a nil error; a corrupt file yields an empty state and a
// non-nil error so the caller can log a warning and proceed.
func (s *FileStore) Load() (domain.State, error) {
	// #nosec G304 -- path is fixed to ".tasktree-state" under the recipe root
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.State{}, nil
		}
		return domain.State{}, zerr.Wrap(domain.ErrStateRead, err, "file", s.path)
	}

	var state domain.State
	if err := json.Unmarshal(data, &state); err != nil {
		return domain.State{}, zerr.Wrap(domain.ErrStateRead, err, "file", s.path)
	}
	if state == nil {
		state = domain.State{}
	}
	return state, nil
}

// Save serialises state to JSON and writes it atomically: write to a
// temporary sibling file, then rename into place, so a process killed
// mid-write never leaves a half-written state file.
func (s *FileStore) Save(state domain.State) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal state")
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".tasktree-state.tmp-*")
	if err != nil {
		return zerr.Wrap(err, "failed to create temp state file")
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return zerr.Wrap(err, "failed to write temp state file")
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return zerr.Wrap(err, "failed to sync temp state file")
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return zerr.Wrap(err, "failed to close temp state file")
	}
	if err := os.Chmod(tmpPath, filePerm); err != nil {
		_ = os.Remove(tmpPath)
		return zerr.Wrap(err, "failed to set state file permissions")
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return zerr.Wrap(err, "failed to rename state file into place")
	}

	return nil
}

// Prune removes every state entry whose task_hash prefix (the part of
// the cache key before "__", or the whole key if absent) is not among
// the current graph's task fingerprints. It runs before staleness
// analysis so a removed or redefined task's stale entries never survive.
func Prune(state domain.State, validTaskHashes map[string]bool) domain.State {
	pruned := make(domain.State, len(state))
	for key, entry := range state {
		if validTaskHashes[taskHashPrefix(key)] {
			pruned[key] = entry
		}
	}
	return pruned
}

func taskHashPrefix(cacheKey string) string {
	for i := 0; i+1 < len(cacheKey); i++ {
		if cacheKey[i] == '_' && cacheKey[i+1] == '_' {
			return cacheKey[:i]
		}
	}
	return cacheKey
}
