package cli

import (
	"context"
	"errors"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/ozacod/raider/internal/app/cli/tui"
	"github.com/ozacod/raider/internal/pkg/raid"
	"github.com/ozacod/raider/internal/pkg/utils/colors"
)

func RaidCmd() *cobra.Command {
	return groupCmd("raid", "Raid night tools (ready check, consumables, pull timer, meters)",
		raidCheckCmd(),
		raidConsumesCmd(),
		raidPullCmd(),
		raidMetersCmd(),
	)
}

func raidCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "check",
		Aliases: []string{"ready"},
		Short:   "Ready check",
		Args:    noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			raid.PrintReadyCheck(cmd.OutOrStdout())
			return nil
		},
	}
}

func raidConsumesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "consumes",
		Short: "Consumables checklist",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			raid.PrintConsumables(cmd.OutOrStdout())
			return nil
		},
	}
}

func raidPullCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "pull [seconds]",
		Short:   "Pull timer",
		Example: `  raider raid pull      # 10 second pull timer
  raider raid pull 5`,
		Args: maxArgs(1),
		RunE: runRaidPull,
	}
}

func runRaidPull(cmd *cobra.Command, args []string) error {
	seconds := raid.DefaultPull
	if len(args) == 1 {
		n, err := raid.ParseSeconds(args[0])
		if err != nil {
			return err
		}
		seconds = n
	}

	if colors.IsTerminal(os.Stdout) && colors.IsTerminal(os.Stdin) {
		done, err := tui.RunPull(seconds, tea.WithContext(cmd.Context()))
		if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return err
		}
		if !done {
			PrintWarn("pull cancelled")
		}
		return nil
	}

	c := &raid.Countdown{Out: cmd.OutOrStdout()}
	if err := c.Run(cmd.Context(), seconds); err != nil {
		if errors.Is(err, context.Canceled) {
			PrintWarn("pull cancelled")
			return nil
		}
		return err
	}
	return nil
}

func raidMetersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "meters",
		Short: "Fake Details! top 5 damage meter",
		Example: `  raider raid meters
  raider raid meters --seed 42 --width 40`,
		Args: noArgs,
		RunE: runRaidMeters,
	}
	cmd.Flags().Uint64("seed", 0, "Random seed (default: time based)")
	cmd.Flags().Int("width", raid.DefaultWidth, "Bar width in characters (minimum 10)")
	return cmd
}

func runRaidMeters(cmd *cobra.Command, _ []string) error {
	seed, _ := cmd.Flags().GetUint64("seed")
	if !cmd.Flags().Changed("seed") {
		seed = uint64(time.Now().UnixNano())
	}
	width, _ := cmd.Flags().GetInt("width")

	fight := raid.NewFight(raid.NewRand(seed))
	raid.RenderMeters(cmd.OutOrStdout(), fight, width, time.Now())
	return nil
}
