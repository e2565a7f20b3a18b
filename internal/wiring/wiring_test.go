package wiring_test

import (
	"testing"

	"github.com/grindlemire/graft"
)

// TestGraftDependencies checks that every node declaring a dependency
// actually uses it, and every used dependency is declared.
func TestGraftDependencies(t *testing.T) {
	// graft.AssertDepsValid infers a dependency's node ID from the
	// package name of the interface passed to Dep[T]. Since several of
	// our nodes produce interfaces from the shared ports package
	// (ports.Logger, ports.Executor, ports.InputResolver), it cannot
	// tell them apart from the type alone.
	t.Skip("Skipping Graft validation due to static analysis limitation with shared ports package")
	graft.AssertDepsValid(t, "../../internal")
}
