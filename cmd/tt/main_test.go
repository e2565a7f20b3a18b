package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"tasktree/internal/core/domain"
)

func TestExitCodeFor(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"recipe error", domain.ErrRecipeNotFound, 1},
		{"arg error", domain.ErrMissingArgument, 1},
		{"execution error", domain.ErrTaskExecutionFailed, 2},
		{"unwrapped error with execution failure text", errors.New("task \"build\" failed: " + domain.ErrTaskExecutionFailed.Error()), 1},
		{"cancelled", domain.ErrCancelled, 130},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, exitCodeFor(tc.err))
		})
	}
}
