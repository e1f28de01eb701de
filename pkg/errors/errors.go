package errors

import (
	"errors"
	"fmt"
)

// Error types for better error handling and user feedback

// Exit codes returned by the raider process
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// UsageError represents a command-line usage problem detected before any tool runs
type UsageError struct {
	Message string
	Hint    string
}

func (e *UsageError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("usage error: %s\nHint: %s", e.Message, e.Hint)
	}
	return fmt.Sprintf("usage error: %s", e.Message)
}

// NewUsageError creates a new usage error
func NewUsageError(message, hint string) *UsageError {
	return &UsageError{Message: message, Hint: hint}
}

// MissingFlag reports a required flag that was not given
func MissingFlag(flag, hint string) *UsageError {
	return &UsageError{Message: fmt.Sprintf("missing required flag --%s", flag), Hint: hint}
}

// ConfigError represents configuration-related errors
type ConfigError struct {
	Field   string
	Message string
	Hint    string
}

func (e *ConfigError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("config error: %s - %s\nHint: %s", e.Field, e.Message, e.Hint)
	}
	return fmt.Sprintf("config error: %s - %s", e.Field, e.Message)
}

// NewConfigError creates a new config error
func NewConfigError(field, message, hint string) *ConfigError {
	return &ConfigError{Field: field, Message: message, Hint: hint}
}

// ExecError represents a wrapped tool that exited unsuccessfully.
// Its output has already been relayed to the user.
type ExecError struct {
	Stage    string // configure, build, test, fmt, tidy, deps, run
	Tool     string
	ExitCode int
	Cause    error
}

func (e *ExecError) Error() string {
	if e.ExitCode > 0 {
		return fmt.Sprintf("%s failed: %s exited with code %d", e.Stage, e.Tool, e.ExitCode)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s failed: %s: %v", e.Stage, e.Tool, e.Cause)
	}
	return fmt.Sprintf("%s failed: %s", e.Stage, e.Tool)
}

func (e *ExecError) Unwrap() error {
	return e.Cause
}

// NewExecError creates a new exec error
func NewExecError(stage, tool string, exitCode int, cause error) *ExecError {
	return &ExecError{Stage: stage, Tool: tool, ExitCode: exitCode, Cause: cause}
}

// DependencyError represents dependency-related errors
type DependencyError struct {
	Package string
	Message string
	Hint    string
}

func (e *DependencyError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("dependency error: %s - %s\nHint: %s", e.Package, e.Message, e.Hint)
	}
	return fmt.Sprintf("dependency error: %s - %s", e.Package, e.Message)
}

// NewDependencyError creates a new dependency error
func NewDependencyError(pkg, message, hint string) *DependencyError {
	return &DependencyError{Package: pkg, Message: message, Hint: hint}
}

// ToolError represents external tool-related errors
type ToolError struct {
	Tool       string
	Message    string
	InstallCmd string
}

func (e *ToolError) Error() string {
	if e.InstallCmd != "" {
		return fmt.Sprintf("%s: %s\nInstall with: %s", e.Tool, e.Message, e.InstallCmd)
	}
	return fmt.Sprintf("%s: %s", e.Tool, e.Message)
}

// NewToolError creates a new tool error
func NewToolError(tool, message, installCmd string) *ToolError {
	return &ToolError{Tool: tool, Message: message, InstallCmd: installCmd}
}

// Common errors
var (
	ErrNoManifest         = errors.New("dependency manifest not found. Run: raider init")
	ErrNotVcpkg           = errors.New("deps commands only support the vcpkg manifest (deps.manager = vcpkg)")
	ErrBuildNotConfigured = errors.New("compile_commands.json not found. Run: raider build --preset <preset>")
	ErrToolsMissing       = errors.New("some tools are missing")
	ErrFormatDiffers      = errors.New("some files are not formatted")
)

// IsUsageError checks if error is a usage error
func IsUsageError(err error) bool {
	var usageErr *UsageError
	return errors.As(err, &usageErr)
}

// IsConfigError checks if error is a config error
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// IsExecError checks if error is an exec error
func IsExecError(err error) bool {
	var execErr *ExecError
	return errors.As(err, &execErr)
}

// IsDependencyError checks if error is a dependency error
func IsDependencyError(err error) bool {
	var depErr *DependencyError
	return errors.As(err, &depErr)
}

// IsToolError checks if error is a tool error
func IsToolError(err error) bool {
	var toolErr *ToolError
	return errors.As(err, &toolErr)
}

// ExitCode maps an error to the process exit status.
// A failing external tool passes its own exit code through.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var execErr *ExecError
	if errors.As(err, &execErr) && execErr.ExitCode > 0 {
		return execErr.ExitCode
	}
	if IsUsageError(err) {
		return ExitUsage
	}
	return ExitFailure
}
