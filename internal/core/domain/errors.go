package domain

import "go.trai.ch/zerr"

// RecipeError: YAML parse failures, schema violations, and graph
// validation failures. Fatal; no execution is attempted.
var (
	ErrRecipeNotFound      = zerr.New("no tasktree.yaml or tt.yaml found")
	ErrRecipeParse         = zerr.New("failed to parse recipe")
	ErrRecipeRead          = zerr.New("failed to read recipe file")
	ErrDuplicateNamespace  = zerr.New("duplicate import namespace")
	ErrNamespaceCollision  = zerr.New("import namespace collides with a root task name")
	ErrTransitiveImport    = zerr.New("imported file declares its own imports")
	ErrCrossFileReference  = zerr.New("imported task depends on a qualified name")
	ErrTaskAlreadyExists   = zerr.New("task already exists")
	ErrMissingDependency   = zerr.New("missing dependency")
	ErrDuplicateDependency = zerr.New("duplicate dependency")
	ErrCycleDetected       = zerr.New("cycle detected")
	ErrTaskNotFound        = zerr.New("task not found")
	ErrUnknownPlaceholder  = zerr.New("command references an undeclared parameter")
	ErrDuplicateParameter  = zerr.New("duplicate parameter name")
	ErrUnknownParamType    = zerr.New("unknown parameter type")
	ErrBadParameterSpec    = zerr.New("malformed parameter literal")
	ErrWorkingDirMissing   = zerr.New("working directory does not exist")
	ErrRecipeAlreadyExists = zerr.New("recipe file already exists")
)

// StateError: the state file could not be read. Recovered locally by
// starting from an empty state and logging a warning.
var ErrStateRead = zerr.New("failed to read state file")

// ArgError: an actual argument failed type coercion. Fatal for that
// invocation; no task runs.
var (
	ErrArgCoercion       = zerr.New("argument coercion failed")
	ErrUnknownParameter  = zerr.New("unknown parameter")
	ErrMissingArgument   = zerr.New("missing required argument")
)

// ExecutionError: the child process exited non-zero or could not be
// spawned. Aborts the run; state of prior successful tasks is kept.
var (
	ErrTaskExecutionFailed = zerr.New("task execution failed")
	ErrCancelled           = zerr.New("run cancelled by signal")
)

// IOError: glob resolution failures. Note: a missing explicit input is
// not an IOError — it is a conservative staleness signal, not a fault.
var ErrGlobResolution = zerr.New("failed to resolve input glob")
