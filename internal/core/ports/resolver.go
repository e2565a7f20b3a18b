package ports

// InputResolver defines the interface for resolving input glob patterns
// to concrete, sorted, deduplicated file paths relative to root.
//
//go:generate go run go.uber.org/mock/mockgen -destination=mocks/resolver_mock.go -package=mocks -source=resolver.go
type InputResolver interface {
	ResolveInputs(patterns []string, root string) ([]string, error)
}
