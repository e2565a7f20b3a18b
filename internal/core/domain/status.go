package domain

// StalenessReason names which rule of the staleness decision table fired
// for a task. Rules are evaluated in order; the first match wins.
type StalenessReason string

const (
	ReasonNoOutputs          StalenessReason = "no_outputs"
	ReasonNeverRun           StalenessReason = "never_run"
	ReasonArgsChanged        StalenessReason = "args_changed"
	ReasonDefinitionChanged  StalenessReason = "definition_changed"
	ReasonInputsChanged      StalenessReason = "inputs_changed"
	ReasonDependencyTriggered StalenessReason = "dependency_triggered"
	ReasonFresh              StalenessReason = "fresh"
)

// TaskStatus is the outcome of evaluating one task against the persisted
// state: whether it must run, and why. It backs --dry-run, --tree and
// the runner's own skip/execute decision.
type TaskStatus struct {
	Task         Task
	CacheKey     string
	Stale        bool
	Reason       StalenessReason
	Args         []ResolvedArg
	ChangedFiles []string
}
