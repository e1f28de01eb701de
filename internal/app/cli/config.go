package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ozacod/raider/internal/pkg/utils/colors"
	"github.com/ozacod/raider/pkg/config"
	rerrors "github.com/ozacod/raider/pkg/errors"
)

func ConfigCmd() *cobra.Command {
	return groupCmd("config", "Manage the global raider configuration",
		&cobra.Command{
			Use:   "show",
			Short: "Show the global configuration",
			Args:  noArgs,
			RunE: func(*cobra.Command, []string) error {
				return showConfig()
			},
		},
		&cobra.Command{
			Use:   "get <key>",
			Short: "Print one configuration value",
			Args:  exactArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				return getConfig(args[0])
			},
		},
		&cobra.Command{
			Use:     "set <key> <value>",
			Short:   "Set one configuration value",
			Example: `  raider config set color never
  raider config set vcpkg_root ~/src/vcpkg`,
			Args: exactArgs(2),
			RunE: func(_ *cobra.Command, args []string) error {
				return setConfig(args[0], args[1])
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the configuration file path",
			Args:  noArgs,
			RunE: func(*cobra.Command, []string) error {
				path, err := config.GetConfigPath()
				if err != nil {
					return err
				}
				fmt.Println(path)
				return nil
			},
		},
	)
}

func showConfig() error {
	cfg, err := config.LoadGlobal()
	if err != nil {
		return err
	}
	path, err := config.GetConfigPath()
	if err != nil {
		return err
	}

	fmt.Printf("%sGlobal configuration%s (%s)\n", colors.Bold, colors.Reset, path)
	for _, key := range config.GlobalKeys() {
		value, _ := cfg.Get(key)
		if value == "" {
			value = colors.Gray + "(not set)" + colors.Reset
		}
		fmt.Printf("  %-12s %s\n", key, value)
	}
	return nil
}

func getConfig(key string) error {
	cfg, err := config.LoadGlobal()
	if err != nil {
		return err
	}
	value, err := cfg.Get(key)
	if err != nil {
		return rerrors.NewUsageError(err.Error(), "raider config show")
	}
	fmt.Println(value)
	return nil
}

func setConfig(key, value string) error {
	cfg, err := config.LoadGlobal()
	if err != nil {
		return err
	}
	if err := cfg.Set(key, value); err != nil {
		return rerrors.NewUsageError(err.Error(), "raider config set <key> <value>")
	}
	if err := config.SaveGlobal(cfg); err != nil {
		return err
	}
	stored, _ := cfg.Get(key)
	PrintSuccess("%s = %s", key, stored)
	return nil
}

func VersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the raider version",
		Args:  noArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "raider %s\n", Version)
		},
	}
}
