// Package recipe loads tasktree.yaml/tt.yaml recipe files, resolves their
// imports, and turns the result into a domain.Graph.
package recipe

// RecipeFile is the raw YAML shape of a recipe file, either the root
// recipe or an imported one.
type RecipeFile struct {
	Import []ImportDTO         `yaml:"import"`
	Tasks  map[string]*TaskDTO `yaml:"tasks"`
}

// ImportDTO is one entry of the root recipe's top-level `import` list.
type ImportDTO struct {
	File string `yaml:"file"`
	As   string `yaml:"as"`
}

// TaskDTO is the raw YAML shape of a single task definition.
type TaskDTO struct {
	Description string   `yaml:"description"`
	Deps        []string `yaml:"deps"`
	Inputs      []string `yaml:"inputs"`
	Outputs     []string `yaml:"outputs"`
	WorkingDir  string   `yaml:"working_dir"`
	Parameters  []string `yaml:"parameters"`
	Cmd         string   `yaml:"cmd"`
}
