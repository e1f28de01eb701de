// Package processtest replaces process.Command with a re-exec of the test
// binary so handlers can be exercised without the real tools installed.
//
// A test package using it declares:
//
//	func TestHelperProcess(t *testing.T) { processtest.HelperMain() }
package processtest

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"slices"
	"strconv"
	"sync"
	"testing"

	"github.com/ozacod/raider/internal/pkg/utils/process"
)

// Environment understood by the helper process
const (
	EnvWantHelper = "GO_WANT_HELPER_PROCESS"
	EnvExitCode   = "HELPER_EXIT_CODE"
	EnvStdout     = "HELPER_STDOUT"
)

// Recorder captures the commands started while it is installed
type Recorder struct {
	mu    sync.Mutex
	calls [][]string
}

// Calls returns every recorded command line, tool name first
func (r *Recorder) Calls() [][]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.calls)
}

// Tools returns the tool names of the recorded calls
func (r *Recorder) Tools() []string {
	var tools []string
	for _, c := range r.Calls() {
		tools = append(tools, c[0])
	}
	return tools
}

// Fake installs the helper process for the duration of the test. Every tool
// resolves to its own name; names listed in missing fail to resolve.
func Fake(t testing.TB, missing ...string) *Recorder {
	t.Helper()

	rec := &Recorder{}
	oldCommand := process.Command
	oldLookPath := process.LookPath
	t.Cleanup(func() {
		process.Command = oldCommand
		process.LookPath = oldLookPath
	})

	process.Command = func(ctx context.Context, name string, arg ...string) *exec.Cmd {
		rec.mu.Lock()
		rec.calls = append(rec.calls, append([]string{name}, arg...))
		rec.mu.Unlock()

		cs := []string{"-test.run=TestHelperProcess", "--", name}
		cs = append(cs, arg...)
		cmd := exec.CommandContext(ctx, os.Args[0], cs...)
		cmd.Env = append(os.Environ(), EnvWantHelper+"=1")
		return cmd
	}
	process.LookPath = func(file string) (string, error) {
		if slices.Contains(missing, file) {
			return "", exec.ErrNotFound
		}
		return file, nil
	}
	return rec
}

// HelperMain is the body of TestHelperProcess. Outside the helper process it
// returns immediately. Inside, it prints HELPER_STDOUT and exits with
// HELPER_EXIT_CODE (default 0).
func HelperMain() {
	if os.Getenv(EnvWantHelper) != "1" {
		return
	}

	args := os.Args
	for len(args) > 0 {
		if args[0] == "--" {
			args = args[1:]
			break
		}
		args = args[1:]
	}
	if len(args) == 0 {
		fmt.Fprintf(os.Stderr, "No command provided\n")
		os.Exit(2)
	}

	if out := os.Getenv(EnvStdout); out != "" {
		fmt.Print(out)
	}

	code := 0
	if v := os.Getenv(EnvExitCode); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			code = n
		}
	}
	os.Exit(code)
}
