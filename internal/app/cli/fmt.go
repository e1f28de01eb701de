package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ozacod/raider/internal/pkg/quality"
	"github.com/ozacod/raider/internal/pkg/utils/process"
	rerrors "github.com/ozacod/raider/pkg/errors"
)

func FmtCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fmt",
		Short: "Format sources with clang-format",
		Long: `Format every source file with clang-format, using the project's
.clang-format. Directories listed in format.exclude_dirs are skipped.

With --check nothing is written: a diff is printed for every file that
would change and the command fails if there is any.`,
		Example: `  raider fmt           # Format in place
  raider fmt --check   # Fail if anything is unformatted (CI)`,
		Args: noArgs,
		RunE: runFmt,
	}

	cmd.Flags().Bool("check", false, "Check formatting without modifying files")

	return cmd
}

func runFmt(cmd *cobra.Command, _ []string) error {
	check, _ := cmd.Flags().GetBool("check")

	ws, err := loadWorkspace()
	if err != nil {
		return err
	}
	clangFormat, err := process.Resolve(ws.project.Tools.ClangFormat)
	if err != nil {
		return err
	}

	files, err := quality.CollectSources(ws.root(), ws.project.Format.Extensions, ws.project.Format.ExcludeDirs)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		PrintWarn("no source files found")
		return nil
	}

	r, err := ws.runner("fmt")
	if err != nil {
		return err
	}

	if check {
		r.Echo = nil
		changed, err := quality.CheckFormat(cmd.Context(), r, clangFormat, files, os.Stdout)
		if err != nil {
			return err
		}
		if len(changed) > 0 {
			return fmt.Errorf("%w: %d of %d file(s)", rerrors.ErrFormatDiffers, len(changed), len(files))
		}
		PrintSuccess("%d file(s) already formatted", len(files))
		return nil
	}

	if err := quality.Format(cmd.Context(), r, clangFormat, files); err != nil {
		return err
	}
	PrintSuccess("formatted %d file(s)", len(files))
	return nil
}
