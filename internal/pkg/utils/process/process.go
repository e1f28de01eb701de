// Package process runs the external tools raider wraps.
package process

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"mvdan.cc/sh/v3/syntax"

	"github.com/ozacod/raider/internal/pkg/logging"
	"github.com/ozacod/raider/internal/pkg/utils/colors"
	rerrors "github.com/ozacod/raider/pkg/errors"
)

// Variables for mocking in tests
var (
	Command  = exec.CommandContext
	LookPath = exec.LookPath
)

// GracePeriod is how long an interrupted child gets before it is killed
const GracePeriod = 5 * time.Second

// DotEnvFile is read from the project root and merged into child environments
const DotEnvFile = ".env"

var installHints = map[string]string{
	"cmake":        "https://cmake.org/download/ or your package manager",
	"ctest":        "ships with cmake",
	"ninja":        "https://ninja-build.org/ or your package manager",
	"clang-format": "install the clang-format package of your LLVM distribution",
	"clang-tidy":   "install the clang-tidy package of your LLVM distribution",
	"git":          "https://git-scm.com/downloads",
}

// Resolve finds tool on PATH
func Resolve(tool string) (string, error) {
	path, err := LookPath(tool)
	if err != nil {
		hint := installHints[filepath.Base(tool)]
		return "", rerrors.NewToolError(tool, "not found in PATH", hint)
	}
	return path, nil
}

// Runner executes commands with shared settings
type Runner struct {
	// Dir is the working directory of the child; empty means the current one
	Dir string
	// Stage names the operation in errors ("configure", "build", ...)
	Stage string
	// Env holds extra KEY=VALUE pairs appended to the inherited environment
	Env []string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Echo receives the ">> cmd args" line; nil disables echoing
	Echo io.Writer
}

// NewRunner returns a runner wired to the process streams, with the
// project's .env merged into the child environment.
func NewRunner(stage, root string) (*Runner, error) {
	env, err := DotEnv(root)
	if err != nil {
		return nil, err
	}
	return &Runner{
		Dir:    root,
		Stage:  stage,
		Env:    env,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Echo:   os.Stderr,
	}, nil
}

// DotEnv reads root/.env and returns the pairs whose keys are not already
// set in the process environment. A missing file yields nil.
func DotEnv(root string) ([]string, error) {
	path := filepath.Join(root, DotEnvFile)
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, rerrors.NewConfigError(DotEnvFile, fmt.Sprintf("failed to parse: %v", err), "")
	}

	var env []string
	for key, value := range values {
		if _, ok := os.LookupEnv(key); ok {
			continue
		}
		env = append(env, key+"="+value)
	}
	logging.Debug().Str("file", path).Int("vars", len(env)).Msg("loaded dotenv")
	return env, nil
}

// FormatCommand renders a command line with shell quoting
func FormatCommand(name string, args []string) string {
	parts := make([]string, 0, len(args)+1)
	for _, s := range append([]string{name}, args...) {
		quoted, err := syntax.Quote(s, syntax.LangBash)
		if err != nil {
			quoted = fmt.Sprintf("%q", s)
		}
		parts = append(parts, quoted)
	}
	return strings.Join(parts, " ")
}

// Cmd prepares a command without wiring its streams
func (r *Runner) Cmd(ctx context.Context, name string, args ...string) *exec.Cmd {
	line := FormatCommand(name, args)
	if r.Echo != nil {
		fmt.Fprintf(r.Echo, "%s>> %s%s\n", colors.Dim, line, colors.Reset)
	}
	logging.Debug().Str("stage", r.Stage).Str("dir", r.Dir).Str("cmd", line).Msg("exec")

	cmd := Command(ctx, name, args...)
	cmd.Dir = r.Dir
	if len(r.Env) > 0 {
		base := cmd.Env
		if base == nil {
			base = os.Environ()
		}
		cmd.Env = append(base, r.Env...)
	}
	cmd.Cancel = func() error {
		if err := cmd.Process.Signal(os.Interrupt); err != nil {
			return cmd.Process.Kill()
		}
		return nil
	}
	cmd.WaitDelay = GracePeriod
	return cmd
}

// Run executes the command with the runner's streams attached
func (r *Runner) Run(ctx context.Context, name string, args ...string) error {
	cmd := r.Cmd(ctx, name, args...)
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	return r.Wrap(name, cmd.Run())
}

// Output executes the command and returns its stdout. Stderr is relayed.
func (r *Runner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := r.Cmd(ctx, name, args...)
	cmd.Stdin = r.Stdin
	cmd.Stderr = r.Stderr
	out, err := cmd.Output()
	return out, r.Wrap(name, err)
}

// Wrap converts a command error into an ExecError carrying the exit code
func (r *Runner) Wrap(name string, err error) error {
	if err == nil {
		return nil
	}
	tool := filepath.Base(name)
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		logging.Debug().Str("tool", tool).Int("code", code).Msg("exit")
		return rerrors.NewExecError(r.Stage, tool, code, err)
	}
	return rerrors.NewExecError(r.Stage, tool, 0, err)
}
