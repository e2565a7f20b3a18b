package domain

// Parameter is a single declared argument of a task, parsed from the
// recipe literal syntax "name[:type][=default]".
type Parameter struct {
	Name    string
	Type    ParamType
	Default *string
}

// Task represents a single normalised task in the flattened task graph.
// It uses InternedString for the fields that repeat heavily across a
// graph's adjacency structure (qualified names, dependency edges).
//
// Task records are created by the recipe loader's import resolution,
// completed with ImplicitInputs by the Graph Builder, and are immutable
// thereafter.
type Task struct {
	QualifiedName  InternedString
	Description    string
	Command        string
	ExplicitInputs []string
	Outputs        []string
	Dependencies   []InternedString
	Parameters     []Parameter
	WorkingDir     string

	// ImplicitInputs is populated by the Graph Builder: the union, over
	// direct dependencies, of each dependency's Outputs (or its
	// ExplicitInputs when it has none).
	ImplicitInputs []string
}

// HasParameters reports whether the task declares any parameters.
func (t *Task) HasParameters() bool {
	return len(t.Parameters) > 0
}

// Parameter looks up a declared parameter by name.
func (t *Task) Parameter(name string) (Parameter, bool) {
	for _, p := range t.Parameters {
		if p.Name == name {
			return p, true
		}
	}
	return Parameter{}, false
}
