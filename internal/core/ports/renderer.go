package ports

import "tasktree/internal/core/domain"

// Renderer defines the interface for presenting the live progress of a
// run to the user: the plan, then each task's start, skip or
// completion. The list, tree and dry-run commands print their own
// output and do not use it.
//
//go:generate go run go.uber.org/mock/mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// Plan prints the set of tasks selected for a run, in execution
	// order, before any of them starts.
	Plan(statuses []domain.TaskStatus)

	// TaskStart announces that a task is about to execute.
	TaskStart(name string)

	// TaskSkipped announces that a task was left untouched because it
	// is fresh.
	TaskSkipped(name string)

	// TaskDone announces that a task finished, successfully or not.
	TaskDone(name string, err error)
}
