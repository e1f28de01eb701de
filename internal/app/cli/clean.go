package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ozacod/raider/internal/pkg/build"
	"github.com/ozacod/raider/internal/pkg/utils/colors"
)

func CleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove build artifacts",
		Long: `Remove the binary directory of a preset.

Use --all to remove the whole build/ directory and the root
compile_commands.json instead.`,
		Example: `  raider clean --preset dev   # Remove the dev build tree
  raider clean --all          # Remove build/ and compile_commands.json`,
		Args: noArgs,
		RunE: runClean,
	}

	addPresetFlag(cmd.Flags(), "Preset whose binary directory is removed")
	cmd.Flags().Bool("all", false, "Remove build/ and compile_commands.json")

	return cmd
}

func runClean(cmd *cobra.Command, _ []string) error {
	all, _ := cmd.Flags().GetBool("all")

	ws, err := loadWorkspace()
	if err != nil {
		return err
	}

	opts := build.CleanOptions{Root: ws.root(), All: all}
	if !all {
		preset, err := ws.preset(cmd, "build")
		if err != nil {
			return err
		}
		opts.BinaryDir = ws.presets.BinaryDir(preset)
	}

	removed, err := build.Clean(opts)
	if err != nil {
		return err
	}
	if len(removed) == 0 {
		fmt.Println("Nothing to clean")
		return nil
	}
	for _, path := range removed {
		if rel, err := filepath.Rel(ws.root(), path); err == nil {
			path = rel
		}
		fmt.Printf("  %s-%s %s\n", colors.Red, colors.Reset, path)
	}
	PrintSuccess("clean done")
	return nil
}
