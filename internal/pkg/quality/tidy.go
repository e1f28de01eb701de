package quality

import (
	"context"
	"os"
	"path/filepath"

	"github.com/ozacod/raider/internal/pkg/build/cmake"
	"github.com/ozacod/raider/internal/pkg/utils/process"
	rerrors "github.com/ozacod/raider/pkg/errors"
)

// TidyOptions contains options for a clang-tidy run
type TidyOptions struct {
	ClangTidy string
	BinaryDir string
	Fix       bool
	Files     []string
}

// TidyArgs returns the clang-tidy arguments for a run
func TidyArgs(opts TidyOptions) []string {
	args := []string{"-p", opts.BinaryDir}
	if opts.Fix {
		args = append(args, "--fix")
	}
	return append(args, opts.Files...)
}

// RequireCompileDB fails unless binaryDir holds compile_commands.json
func RequireCompileDB(binaryDir string) error {
	if _, err := os.Stat(filepath.Join(binaryDir, cmake.CompileDB)); err != nil {
		return rerrors.ErrBuildNotConfigured
	}
	return nil
}

// Tidy runs clang-tidy once over the given translation units
func Tidy(ctx context.Context, r *process.Runner, opts TidyOptions) error {
	if err := RequireCompileDB(opts.BinaryDir); err != nil {
		return err
	}
	if len(opts.Files) == 0 {
		return nil
	}
	return r.Run(ctx, opts.ClangTidy, TidyArgs(opts)...)
}
