package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ozacod/raider/internal/pkg/build"
	"github.com/ozacod/raider/internal/pkg/build/cmake"
	"github.com/ozacod/raider/internal/pkg/utils/colors"
	"github.com/ozacod/raider/internal/pkg/utils/process"
)

func RunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [-- args...]",
		Short: "Run the built executable of a preset",
		Long: `Run the built executable of a preset. The target defaults to run.target
in raider.json, then to the CMake project name; when neither is found the
newest executable in the build tree is used.

Arguments after -- are passed to the executable.`,
		Example: `  raider run --preset dev
  raider run --preset rel --build -- --input data.txt`,
		RunE: runRun,
	}

	addPresetFlag(cmd.Flags(), "Build preset whose binary directory is searched")
	cmd.Flags().String("target", "", "Executable target to run")
	cmd.Flags().Bool("build", false, "Build before running")

	return cmd
}

func runRun(cmd *cobra.Command, args []string) error {
	if dash := cmd.ArgsLenAtDash(); dash > 0 {
		if err := noArgs(cmd, args[:dash]); err != nil {
			return err
		}
		args = args[dash:]
	} else if dash < 0 {
		if err := noArgs(cmd, args); err != nil {
			return err
		}
	}

	ws, err := loadWorkspace()
	if err != nil {
		return err
	}
	preset, err := ws.preset(cmd, "build")
	if err != nil {
		return err
	}

	target, _ := cmd.Flags().GetString("target")
	fallback := target == ""
	if target == "" {
		target = ws.project.Run.Target
	}
	if target == "" {
		target = cmake.ProjectName(ws.root())
	}
	if target == "" {
		target = ws.project.Project.Name
	}

	if doBuild, _ := cmd.Flags().GetBool("build"); doBuild {
		cmakePath, err := process.Resolve(ws.project.Tools.CMake)
		if err != nil {
			return err
		}
		br, err := ws.runner("build")
		if err != nil {
			return err
		}
		if err := buildOnce(cmd.Context(), ws, br, build.BuildOptions{
			CMake:    cmakePath,
			Preset:   preset,
			Progress: colors.IsTerminal(os.Stderr),
		}); err != nil {
			return err
		}
	}

	r, err := ws.runner("run")
	if err != nil {
		return err
	}
	return build.Run(cmd.Context(), r, build.RunOptions{
		BinaryDir: ws.presets.BinaryDir(preset),
		Target:    target,
		Fallback:  fallback,
		Args:      args,
	})
}
