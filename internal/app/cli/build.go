package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ozacod/raider/internal/pkg/build"
	"github.com/ozacod/raider/internal/pkg/build/cmake"
	"github.com/ozacod/raider/internal/pkg/utils/colors"
	"github.com/ozacod/raider/internal/pkg/utils/process"
)

func BuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a preset (cmake --build --preset)",
		Long: `Build a preset with CMake, then expose its compile_commands.json at the
project root for clangd.

On a terminal the build shows a progress bar; the full output is replayed
if the build fails. Use --verbose to stream the raw output.`,
		Example: `  raider build --preset dev
  raider build --preset dev --target demo -j 8
  raider build --preset dev --watch   # Rebuild on source changes`,
		Args: noArgs,
		RunE: runBuild,
	}

	addPresetFlag(cmd.Flags(), "Build preset from CMakePresets.json")
	cmd.Flags().String("target", "", "Specific target to build")
	cmd.Flags().IntP("jobs", "j", 0, "Number of parallel jobs (0 = generator default)")
	cmd.Flags().BoolP("verbose", "v", false, "Stream the raw build output")
	cmd.Flags().BoolP("watch", "w", false, "Watch for file changes and rebuild automatically")

	return cmd
}

func runBuild(cmd *cobra.Command, _ []string) error {
	ws, err := loadWorkspace()
	if err != nil {
		return err
	}
	preset, err := ws.preset(cmd, "build")
	if err != nil {
		return err
	}
	cmakePath, err := process.Resolve(ws.project.Tools.CMake)
	if err != nil {
		return err
	}
	r, err := ws.runner("build")
	if err != nil {
		return err
	}

	target, _ := cmd.Flags().GetString("target")
	jobs, _ := cmd.Flags().GetInt("jobs")
	verbose, _ := cmd.Flags().GetBool("verbose")
	watch, _ := cmd.Flags().GetBool("watch")

	opts := build.BuildOptions{
		CMake:    cmakePath,
		Preset:   preset,
		Target:   target,
		Jobs:     jobs,
		Verbose:  verbose,
		Progress: colors.IsTerminal(os.Stderr),
	}

	if !watch {
		return buildOnce(cmd.Context(), ws, r, opts)
	}

	if err := buildOnce(cmd.Context(), ws, r, opts); err != nil {
		PrintError("%v", err)
	}
	fmt.Printf("%sWatching for changes (Ctrl+C to stop)...%s\n", colors.Cyan, colors.Reset)
	return build.Watch(cmd.Context(), build.WatchOptions{
		Root:       ws.root(),
		Dirs:       []string{filepath.Join(ws.root(), ws.project.Paths.SrcDir), filepath.Join(ws.root(), ws.project.Paths.TestsDir), filepath.Join(ws.root(), "include")},
		Extensions: ws.project.Format.Extensions,
	}, func(ctx context.Context) {
		fmt.Printf("\n%sChange detected, rebuilding...%s\n", colors.Cyan, colors.Reset)
		if err := buildOnce(ctx, ws, r, opts); err != nil {
			PrintError("%v", err)
		}
	})
}

func buildOnce(ctx context.Context, ws *workspace, r *process.Runner, opts build.BuildOptions) error {
	if err := build.Build(ctx, r, opts); err != nil {
		return err
	}

	bdir := ws.presets.BinaryDir(opts.Preset)
	linked, err := build.LinkCompileDB(ws.root(), bdir)
	if err != nil {
		PrintWarn("%v", err)
	} else if !linked {
		PrintWarn("%s not found in %s", cmake.CompileDB, bdir)
	}

	PrintSuccess("build done (%s)", opts.Preset)
	return nil
}
