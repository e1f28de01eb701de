package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ozacod/raider/internal/pkg/doctor"
	"github.com/ozacod/raider/internal/pkg/logging"
	"github.com/ozacod/raider/pkg/config"
	rerrors "github.com/ozacod/raider/pkg/errors"
)

func CheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check that the toolchain is installed",
		Long: `Check that cmake, ninja, ctest, clang, clangd, clang-format and
clang-tidy are on PATH, look for vcpkg and report the project files.

vcpkg is looked up in the project's deps.vcpkg_root, the global
vcpkg_root, $VCPKG_ROOT and finally PATH.`,
		Args: noArgs,
		RunE: runCheck,
	}

	cmd.Flags().Bool("host", true, "Include host information")

	return cmd
}

func runCheck(cmd *cobra.Command, _ []string) error {
	ws, err := loadWorkspace()
	if err != nil {
		return err
	}

	roots := []string{ws.project.VcpkgRootPath()}
	if global, err := config.LoadGlobal(); err == nil {
		roots = append(roots, global.VcpkgRoot)
	} else {
		logging.Debug().Err(err).Msg("global config unavailable")
	}
	roots = append(roots, os.Getenv("VCPKG_ROOT"))

	withHost, _ := cmd.Flags().GetBool("host")
	report := doctor.Run(doctor.Options{Root: ws.root(), VcpkgRoots: roots, WithHost: withHost})
	doctor.Print(os.Stdout, report)

	if !report.OK() {
		return rerrors.ErrToolsMissing
	}
	return nil
}
