package cli

import (
	"github.com/spf13/cobra"

	"github.com/ozacod/raider/internal/pkg/quality"
	"github.com/ozacod/raider/internal/pkg/utils/process"
)

func TidyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tidy",
		Short: "Run clang-tidy with the compile database of a preset",
		Long: `Run clang-tidy over the project's translation units using the
compile_commands.json of a configured preset.`,
		Example: `  raider tidy --preset dev
  raider tidy --preset dev --fix`,
		Args: noArgs,
		RunE: runTidy,
	}

	addPresetFlag(cmd.Flags(), "Preset whose compile_commands.json is used")
	cmd.Flags().Bool("fix", false, "Apply suggested fixes")

	return cmd
}

func runTidy(cmd *cobra.Command, _ []string) error {
	ws, err := loadWorkspace()
	if err != nil {
		return err
	}
	preset, err := ws.preset(cmd, "build")
	if err != nil {
		return err
	}

	bdir := ws.presets.BinaryDir(preset)
	if err := quality.RequireCompileDB(bdir); err != nil {
		return err
	}
	clangTidy, err := process.Resolve(ws.project.Tools.ClangTidy)
	if err != nil {
		return err
	}

	files, err := quality.CollectSources(ws.root(), ws.project.Format.Extensions, ws.project.Format.ExcludeDirs)
	if err != nil {
		return err
	}
	units := quality.TranslationUnits(files)
	if len(units) == 0 {
		PrintWarn("no translation units found")
		return nil
	}

	r, err := ws.runner("tidy")
	if err != nil {
		return err
	}
	fix, _ := cmd.Flags().GetBool("fix")

	if err := quality.Tidy(cmd.Context(), r, quality.TidyOptions{
		ClangTidy: clangTidy,
		BinaryDir: bdir,
		Fix:       fix,
		Files:     units,
	}); err != nil {
		return err
	}
	PrintSuccess("tidy done (%d file(s))", len(units))
	return nil
}
