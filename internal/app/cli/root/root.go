package root

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/ozacod/raider/internal/app/cli"
	"github.com/ozacod/raider/internal/pkg/logging"
	"github.com/ozacod/raider/internal/pkg/utils/colors"
	"github.com/ozacod/raider/pkg/config"
	rerrors "github.com/ozacod/raider/pkg/errors"
)

// ExitInterrupted is returned when the run was cancelled by a signal
const ExitInterrupted = 130

// NewRootCmd builds the raider command tree
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "raider",
		Short: "CMake, clang tooling and vcpkg for C++ projects, with raid night extras",
		Long: `raider - one front door for a CMake/vcpkg C++ project

Scaffold, configure, build, test, format and lint through CMake presets,
clang-format, clang-tidy and the vcpkg manifest.`,
		Version: cli.Version,
		// Don't show usage on errors by default
		SilenceUsage:      true,
		SilenceErrors:     true, // handle printing ourselves in Execute
		Args:              cli.UnknownArgs,
		PersistentPreRunE: setup,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().String("log-level", "", "Diagnostic log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("color", "", "Color output: auto, always, never")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return rerrors.NewUsageError(err.Error(), "see '"+cmd.CommandPath()+" --help'")
	})

	rootCmd.AddCommand(
		cli.InitCmd(),
		cli.ConfigureCmd(),
		cli.BuildCmd(),
		cli.RunCmd(),
		cli.TestCmd(),
		cli.FmtCmd(),
		cli.TidyCmd(),
		cli.CleanCmd(),
		cli.CheckCmd(),
		cli.DepsCmd(),
		cli.RaidCmd(),
		cli.ConfigCmd(),
		cli.VersionCmd(),
	)

	return rootCmd
}

// setup applies logging and color settings: flags first, then the
// environment, then the global configuration
func setup(cmd *cobra.Command, _ []string) error {
	global, err := config.LoadGlobal()
	if err != nil {
		global = &config.GlobalConfig{}
	}

	level, _ := cmd.Flags().GetString("log-level")
	if level == "" {
		level = os.Getenv(config.EnvPrefix + "_LOG_LEVEL")
	}
	if level == "" {
		level = global.LogLevel
	}

	color, _ := cmd.Flags().GetString("color")
	if color == "" {
		color = global.Color
	}
	colors.Setup(color)

	logging.Init(logging.Config{
		Level:   logging.ParseLevel(level),
		NoColor: !colors.Enabled(),
	})
	if err != nil {
		logging.Warn().Err(err).Msg("ignoring global config")
	}
	return nil
}

// Execute runs raider with args and returns the process exit code
func Execute(ctx context.Context, args []string) int {
	rootCmd := NewRootCmd()
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return rerrors.ExitOK
	}

	if ctx.Err() != nil && errors.Is(ctx.Err(), context.Canceled) {
		cli.PrintError("interrupted")
		return ExitInterrupted
	}
	cli.PrintError("%v", err)
	return rerrors.ExitCode(err)
}
