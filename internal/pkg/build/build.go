package build

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/ozacod/raider/internal/pkg/build/cmake"
	"github.com/ozacod/raider/internal/pkg/logging"
	"github.com/ozacod/raider/internal/pkg/utils"
	"github.com/ozacod/raider/internal/pkg/utils/process"
)

// ConfigureArgs returns the cmake arguments for a configure run
func ConfigureArgs(opts ConfigureOptions) []string {
	return []string{"--preset", opts.Preset}
}

// Configure runs "cmake --preset <preset>"
func Configure(ctx context.Context, r *process.Runner, opts ConfigureOptions) error {
	return r.Run(ctx, opts.CMake, ConfigureArgs(opts)...)
}

// BuildArgs returns the cmake arguments for a build run
func BuildArgs(opts BuildOptions) []string {
	args := []string{"--build", "--preset", opts.Preset}
	if opts.Target != "" {
		args = append(args, "--target", opts.Target)
	}
	if opts.Jobs > 0 {
		args = append(args, "--parallel", strconv.Itoa(opts.Jobs))
	}
	return args
}

// Build runs "cmake --build --preset <preset>"
func Build(ctx context.Context, r *process.Runner, opts BuildOptions) error {
	args := BuildArgs(opts)
	if opts.Progress && !opts.Verbose {
		return runWithProgress(ctx, r, opts.CMake, args)
	}
	return r.Run(ctx, opts.CMake, args...)
}

// TestArgs returns the ctest arguments for a test run
func TestArgs(opts TestOptions) []string {
	args := []string{"--preset", opts.Preset, "--output-on-failure"}
	if opts.Filter != "" {
		args = append(args, "-R", opts.Filter)
	}
	if opts.Verbose {
		args = append(args, "-V")
	}
	return args
}

// Test runs "ctest --preset <preset> --output-on-failure"
func Test(ctx context.Context, r *process.Runner, opts TestOptions) error {
	return r.Run(ctx, opts.CTest, TestArgs(opts)...)
}

// LinkCompileDB exposes binaryDir/compile_commands.json at the project root
// for clangd. It reports false when the build tree has no database.
func LinkCompileDB(root, binaryDir string) (bool, error) {
	src := filepath.Join(binaryDir, cmake.CompileDB)
	if _, err := os.Stat(src); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}

	linked, err := utils.LinkOrCopy(src, filepath.Join(root, cmake.CompileDB))
	if err != nil {
		return false, fmt.Errorf("failed to expose %s: %w", cmake.CompileDB, err)
	}
	logging.Debug().Str("from", src).Bool("symlink", linked).Msg("compile database")
	return true, nil
}

// Clean removes build artifacts and returns the removed paths
func Clean(opts CleanOptions) ([]string, error) {
	var targets []string
	if opts.All {
		targets = []string{
			filepath.Join(opts.Root, "build"),
			filepath.Join(opts.Root, cmake.CompileDB),
		}
	} else {
		targets = []string{opts.BinaryDir}
	}

	var removed []string
	for _, path := range targets {
		if _, err := os.Lstat(path); err != nil {
			continue
		}
		if err := os.RemoveAll(path); err != nil {
			return removed, fmt.Errorf("failed to remove %s: %w", path, err)
		}
		removed = append(removed, path)
	}
	return removed, nil
}
