package cli

import (
	"github.com/spf13/cobra"

	"github.com/ozacod/raider/internal/pkg/build"
	"github.com/ozacod/raider/internal/pkg/utils/process"
)

func TestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Run the tests of a preset (ctest --preset)",
		Example: `  raider test --preset dev
  raider test --preset dev -R parser   # Only tests matching "parser"`,
		Args: noArgs,
		RunE: runTest,
	}

	addPresetFlag(cmd.Flags(), "Test preset from CMakePresets.json")
	cmd.Flags().StringP("filter", "R", "", "Run only tests matching this regular expression")
	cmd.Flags().BoolP("verbose", "v", false, "Show verbose test output")

	return cmd
}

func runTest(cmd *cobra.Command, _ []string) error {
	ws, err := loadWorkspace()
	if err != nil {
		return err
	}
	preset, err := ws.preset(cmd, "test")
	if err != nil {
		return err
	}
	ctestPath, err := process.Resolve(ws.project.Tools.CTest)
	if err != nil {
		return err
	}
	r, err := ws.runner("test")
	if err != nil {
		return err
	}

	filter, _ := cmd.Flags().GetString("filter")
	verbose, _ := cmd.Flags().GetBool("verbose")

	if err := build.Test(cmd.Context(), r, build.TestOptions{
		CTest:   ctestPath,
		Preset:  preset,
		Filter:  filter,
		Verbose: verbose,
	}); err != nil {
		return err
	}
	PrintSuccess("tests passed (%s)", preset)
	return nil
}
