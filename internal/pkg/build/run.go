package build

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/ozacod/raider/internal/pkg/utils/process"
)

var skipSuffixes = []string{
	".a", ".so", ".dylib", ".dll", ".lib", ".o", ".obj",
	".cmake", ".ninja", ".make", ".txt", ".json", ".sh",
}

func isExecutable(name string, info fs.FileInfo) bool {
	if info.IsDir() {
		return false
	}
	if runtime.GOOS == "windows" {
		return strings.HasSuffix(name, ".exe")
	}
	if info.Mode()&0111 == 0 {
		return false
	}
	for _, suffix := range skipSuffixes {
		if strings.HasSuffix(name, suffix) {
			return false
		}
	}
	return true
}

// FindExecutables finds the executables in the build tree, newest first.
// CMake's own scratch directories are skipped.
func FindExecutables(buildDir string) ([]string, error) {
	type candidate struct {
		path    string
		modTime int64
	}
	var found []candidate

	err := filepath.WalkDir(buildDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if name := d.Name(); name == "CMakeFiles" || name == "vcpkg_installed" || name == "_deps" {
				return filepath.SkipDir
			}
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		if isExecutable(d.Name(), info) {
			found = append(found, candidate{path: path, modTime: info.ModTime().UnixNano()})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read build directory: %w", err)
	}

	sort.SliceStable(found, func(i, j int) bool {
		if found[i].modTime != found[j].modTime {
			return found[i].modTime > found[j].modTime
		}
		return found[i].path < found[j].path
	})

	executables := make([]string, 0, len(found))
	for _, c := range found {
		executables = append(executables, c.path)
	}
	return executables, nil
}

// FindExecutable locates the executable for target inside buildDir. With an
// empty target, or a missing one when fallback is set, the most recently
// built executable is chosen.
func FindExecutable(buildDir, target string, fallback bool) (string, error) {
	if target != "" {
		name := target
		if runtime.GOOS == "windows" && !strings.HasSuffix(name, ".exe") {
			name += ".exe"
		}
		candidates := []string{
			filepath.Join(buildDir, name),
			filepath.Join(buildDir, "bin", name),
			filepath.Join(buildDir, "Debug", name),
			filepath.Join(buildDir, "Release", name),
		}
		for _, c := range candidates {
			if info, err := os.Stat(c); err == nil && !info.IsDir() {
				return c, nil
			}
		}
		if !fallback {
			return "", fmt.Errorf("target executable '%s' not found in %s", target, buildDir)
		}
	}

	executables, err := FindExecutables(buildDir)
	if err != nil {
		return "", err
	}
	if len(executables) == 0 {
		return "", fmt.Errorf("no executable found in %s. Make sure the project builds an executable", buildDir)
	}
	return executables[0], nil
}

// Run locates the built executable and runs it with the runner's streams
func Run(ctx context.Context, r *process.Runner, opts RunOptions) error {
	execPath, err := FindExecutable(opts.BinaryDir, opts.Target, opts.Fallback)
	if err != nil {
		return err
	}
	return r.Run(ctx, execPath, opts.Args...)
}
