package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ozacod/raider/internal/pkg/build/cmake"
	"github.com/ozacod/raider/internal/pkg/logging"
	"github.com/ozacod/raider/internal/pkg/utils/colors"
	"github.com/ozacod/raider/internal/pkg/utils/process"
	"github.com/ozacod/raider/pkg/config"
	rerrors "github.com/ozacod/raider/pkg/errors"
)

// Version is the raider version
const Version = "0.1.0"

// PrintError prints an error message
func PrintError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(os.Stderr, "%s%s %s%s\n", colors.Red, colors.IconError, msg, colors.Reset)
}

// PrintSuccess prints a success message
func PrintSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(os.Stdout, "%s%s %s%s\n", colors.Green, colors.IconSuccess, msg, colors.Reset)
}

// PrintWarn prints a warning
func PrintWarn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(os.Stderr, "%s%s %s%s\n", colors.Yellow, colors.IconWarn, msg, colors.Reset)
}

// workspace is the project a handler operates on
type workspace struct {
	project *config.Project
	presets *cmake.Presets
}

// loadWorkspace loads raider.json and CMakePresets.json from the working directory
func loadWorkspace() (*workspace, error) {
	root, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}
	p, err := config.LoadProject(root)
	if err != nil {
		return nil, err
	}
	logging.Debug().Str("root", root).Str("project", p.Project.Name).Msg("loaded project")
	return &workspace{project: p, presets: cmake.LoadPresets(root)}, nil
}

func (w *workspace) root() string {
	return w.project.Root
}

// addPresetFlag registers --preset, resolved by workspace.preset
func addPresetFlag(fs *pflag.FlagSet, usage string) {
	fs.String("preset", "", usage)
}

// preset returns --preset, else the configured default for stage. Without
// either it is a missing-flag usage error listing the known presets.
func (w *workspace) preset(cmd *cobra.Command, stage string) (string, error) {
	if preset, _ := cmd.Flags().GetString("preset"); preset != "" {
		return preset, nil
	}
	if preset := w.project.Preset(stage); preset != "" {
		logging.Debug().Str("stage", stage).Str("preset", preset).Msg("preset from config")
		return preset, nil
	}

	hint := fmt.Sprintf("raider %s --preset <name>", cmd.Name())
	if names := w.presets.Names(stage); len(names) > 0 {
		hint += " (available: " + strings.Join(names, ", ") + ")"
	}
	return "", rerrors.MissingFlag("preset", hint)
}

// runner returns a process runner rooted at the project
func (w *workspace) runner(stage string) (*process.Runner, error) {
	return process.NewRunner(stage, w.root())
}

// noArgs rejects positional arguments with a usage error
func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return rerrors.NewUsageError(
			fmt.Sprintf("unexpected argument %q for %q", args[0], cmd.CommandPath()),
			fmt.Sprintf("see '%s --help'", cmd.CommandPath()))
	}
	return nil
}

// exactArgs requires n positional arguments, naming them in the hint
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return rerrors.NewUsageError(
				fmt.Sprintf("%q expects %d argument(s), got %d", cmd.CommandPath(), n, len(args)),
				cmd.UseLine())
		}
		return nil
	}
}

// maxArgs allows at most n positional arguments
func maxArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) > n {
			return rerrors.NewUsageError(
				fmt.Sprintf("%q accepts at most %d argument(s), got %d", cmd.CommandPath(), n, len(args)),
				cmd.UseLine())
		}
		return nil
	}
}

// UnknownCommand reports a command or subcommand that is not registered
func UnknownCommand(cmd *cobra.Command, name string) error {
	hint := fmt.Sprintf("run '%s --help' for the list of commands", cmd.CommandPath())
	if suggestions := cmd.SuggestionsFor(name); len(suggestions) > 0 {
		hint = "did you mean " + strings.Join(suggestions, " or ") + "?"
	}
	return rerrors.NewUsageError(fmt.Sprintf("unknown command %q for %q", name, cmd.CommandPath()), hint)
}

// UnknownArgs makes a command with subcommands reject unknown subcommands
func UnknownArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return UnknownCommand(cmd, args[0])
	}
	return nil
}

// groupCmd returns a command that only dispatches to its subcommands
func groupCmd(use, short string, subs ...*cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  UnknownArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(subs...)
	return cmd
}
