package cli

import (
	"github.com/spf13/cobra"

	"github.com/ozacod/raider/internal/pkg/build"
	"github.com/ozacod/raider/internal/pkg/utils/process"
)

func ConfigureCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "configure",
		Short:   "Configure the build tree of a preset (cmake --preset)",
		Example: `  raider configure --preset dev`,
		Args:    noArgs,
		RunE:    runConfigure,
	}

	addPresetFlag(cmd.Flags(), "Configure preset from CMakePresets.json")

	return cmd
}

func runConfigure(cmd *cobra.Command, _ []string) error {
	ws, err := loadWorkspace()
	if err != nil {
		return err
	}
	preset, err := ws.preset(cmd, "configure")
	if err != nil {
		return err
	}
	cmakePath, err := process.Resolve(ws.project.Tools.CMake)
	if err != nil {
		return err
	}
	r, err := ws.runner("configure")
	if err != nil {
		return err
	}

	if err := build.Configure(cmd.Context(), r, build.ConfigureOptions{CMake: cmakePath, Preset: preset}); err != nil {
		return err
	}
	PrintSuccess("configure done (%s)", preset)
	return nil
}
