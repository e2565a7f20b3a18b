package domain

// StateEntry records the last successful run of one cache key (a task,
// or a task plus a specific argument set) for mtime-based staleness
// comparison on the next invocation.
type StateEntry struct {
	// LastRun is the Unix timestamp (seconds) at which the task last
	// completed successfully.
	LastRun int64 `json:"last_run"`

	// InputState maps each resolved input path (explicit and implicit)
	// to the mtime, as Unix seconds, observed the last time this task
	// ran. A path present here but absent from disk on the next run is
	// treated conservatively as stale.
	InputState map[string]int64 `json:"input_state,omitempty"`

	// TaskHash is the task_hash recorded at the time of this run, used
	// to detect definition_changed defensively even though task_hash is
	// already folded into the cache key.
	TaskHash string `json:"task_hash"`
}

// State is the full persisted `.tasktree-state` document: cache key to
// StateEntry.
type State map[string]StateEntry
