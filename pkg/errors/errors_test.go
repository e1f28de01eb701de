package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name:     "No error",
			err:      nil,
			expected: ExitOK,
		},
		{
			name:     "Usage error",
			err:      MissingFlag("preset", ""),
			expected: ExitUsage,
		},
		{
			name:     "Exec error passes exit code through",
			err:      NewExecError("build", "cmake", 3, nil),
			expected: 3,
		},
		{
			name:     "Wrapped exec error",
			err:      fmt.Errorf("while building: %w", NewExecError("test", "ctest", 8, nil)),
			expected: 8,
		},
		{
			name:     "Exec error without exit code",
			err:      NewExecError("run", "app", 0, errors.New("signal: killed")),
			expected: ExitFailure,
		},
		{
			name:     "Tool error",
			err:      NewToolError("cmake", "not found in PATH", ""),
			expected: ExitFailure,
		},
		{
			name:     "Plain error",
			err:      errors.New("boom"),
			expected: ExitFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExitCode(tt.err))
		})
	}
}

func TestErrorMessagesNameTheStage(t *testing.T) {
	assert.Equal(t, "usage error: missing required flag --preset", MissingFlag("preset", "").Error())
	assert.Contains(t, MissingFlag("preset", "pass --preset dev").Error(), "Hint: pass --preset dev")

	execErr := NewExecError("configure", "cmake", 1, nil)
	assert.Equal(t, "configure failed: cmake exited with code 1", execErr.Error())

	cause := errors.New("exec: no such file")
	wrapped := NewExecError("run", "./app", 0, cause)
	assert.Contains(t, wrapped.Error(), "exec: no such file")
	assert.ErrorIs(t, wrapped, cause)

	assert.Contains(t, NewConfigError("project.cxx_standard", "must be a number", "").Error(), "config error")
	assert.Contains(t, NewDependencyError("fmt", "already present", "").Error(), "dependency error: fmt")
	assert.Contains(t, NewToolError("clang-tidy", "not found", "brew install llvm").Error(), "Install with: brew install llvm")
}

func TestErrorPredicates(t *testing.T) {
	assert.True(t, IsUsageError(NewUsageError("unknown command", "")))
	assert.True(t, IsExecError(fmt.Errorf("x: %w", NewExecError("build", "cmake", 2, nil))))
	assert.True(t, IsToolError(NewToolError("cmake", "missing", "")))
	assert.True(t, IsConfigError(NewConfigError("a", "b", "")))
	assert.True(t, IsDependencyError(NewDependencyError("a", "b", "")))
	assert.False(t, IsUsageError(errors.New("plain")))
}
