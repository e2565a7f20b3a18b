package recipe

import (
	"regexp"

	"go.trai.ch/zerr"
	"tasktree/internal/core/domain"
)

// paramLiteral matches the recipe's parameter literal syntax
// "name[:type][=default]". Submatch indices distinguish an absent
// default from an explicit empty-string default.
var paramLiteral = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)(?::([A-Za-z0-9]+))?(?:=(.*))?$`)

// parseParameter parses one entry of a task's `parameters` list.
func parseParameter(literal string) (domain.Parameter, error) {
	idx := paramLiteral.FindStringSubmatchIndex(literal)
	if idx == nil {
		return domain.Parameter{}, zerr.With(domain.ErrBadParameterSpec, "literal", literal)
	}

	name := literal[idx[2]:idx[3]]

	pt := domain.ParamString
	if idx[4] != -1 {
		pt = domain.ParamType(literal[idx[4]:idx[5]])
	}
	if !domain.IsValidParamType(pt) {
		return domain.Parameter{}, zerr.With(domain.ErrUnknownParamType, "type", string(pt), "parameter", name)
	}

	p := domain.Parameter{Name: name, Type: pt}
	if idx[6] != -1 {
		def := literal[idx[6]:idx[7]]
		p.Default = &def
	}
	return p, nil
}

func parseParameters(literals []string) ([]domain.Parameter, error) {
	params := make([]domain.Parameter, 0, len(literals))
	seen := make(map[string]bool, len(literals))
	for _, lit := range literals {
		p, err := parseParameter(lit)
		if err != nil {
			return nil, err
		}
		if seen[p.Name] {
			return nil, zerr.With(domain.ErrDuplicateParameter, "parameter", p.Name)
		}
		seen[p.Name] = true
		params = append(params, p)
	}
	return params, nil
}
