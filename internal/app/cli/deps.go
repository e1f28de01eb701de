package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ozacod/raider/internal/pkg/build/vcpkg"
	"github.com/ozacod/raider/internal/pkg/utils/colors"
	"github.com/ozacod/raider/pkg/config"
	rerrors "github.com/ozacod/raider/pkg/errors"
)

func DepsCmd() *cobra.Command {
	return groupCmd("deps", "Manage dependencies in the vcpkg manifest",
		depsAddCmd(),
		depsRemoveCmd(),
		depsListCmd(),
		depsBootstrapCmd(),
	)
}

func depsAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <package>",
		Short: "Add a package to the manifest dependencies",
		Long: `Add a package to the "dependencies" of the vcpkg manifest. The package
name is written exactly as given. With --version the entry carries a
"version>=" constraint.`,
		Example: `  raider deps add fmt
  raider deps add spdlog --version 1.12.0`,
		Args: exactArgs(1),
		RunE: runDepsAdd,
	}
	cmd.Flags().String("version", "", "Minimum version (version>=)")
	return cmd
}

func depsRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <package>",
		Aliases: []string{"rm"},
		Short:   "Remove a package from the manifest dependencies",
		Args:    exactArgs(1),
		RunE:    runDepsRemove,
	}
}

func depsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the manifest dependencies",
		Args:    noArgs,
		RunE:    runDepsList,
	}
}

func depsBootstrapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bootstrap",
		Short: "Clone and bootstrap a project-local vcpkg",
		Long: `Clone vcpkg into the project (deps.vcpkg_root, .tools/vcpkg by default)
and run its bootstrap script. An existing checkout is only bootstrapped.`,
		Args: noArgs,
		RunE: runDepsBootstrap,
	}
	cmd.Flags().String("dir", "", "Checkout directory (default: deps.vcpkg_root)")
	return cmd
}

// loadManifest loads the vcpkg manifest of the project
func loadManifest() (*workspace, *vcpkg.Manifest, error) {
	ws, err := loadWorkspace()
	if err != nil {
		return nil, nil, err
	}
	if ws.project.Deps.Manager != "vcpkg" {
		return nil, nil, rerrors.ErrNotVcpkg
	}
	m, err := vcpkg.Load(ws.project.ManifestPath())
	if err != nil {
		return nil, nil, err
	}
	return ws, m, nil
}

func runDepsAdd(cmd *cobra.Command, args []string) error {
	pkg := args[0]
	if err := vcpkg.ValidatePackage(pkg); err != nil {
		return err
	}
	version, _ := cmd.Flags().GetString("version")
	if version != "" {
		if _, err := vcpkg.ParseVersion(version); err != nil {
			return err
		}
	}

	_, m, err := loadManifest()
	if err != nil {
		return err
	}

	added, err := m.Add(pkg, version)
	if err != nil {
		return err
	}
	if !added {
		fmt.Printf("Already exists: %s\n", pkg)
		return nil
	}
	if err := m.Save(); err != nil {
		return err
	}
	PrintSuccess("added '%s' to %s", pkg, filepath.Base(m.Path))
	return nil
}

func runDepsRemove(_ *cobra.Command, args []string) error {
	pkg := args[0]

	_, m, err := loadManifest()
	if err != nil {
		return err
	}

	removed, err := m.Remove(pkg)
	if err != nil {
		return err
	}
	if !removed {
		fmt.Printf("Not found: %s\n", pkg)
		return nil
	}
	if err := m.Save(); err != nil {
		return err
	}
	PrintSuccess("removed '%s' from %s", pkg, filepath.Base(m.Path))
	return nil
}

func runDepsList(_ *cobra.Command, _ []string) error {
	_, m, err := loadManifest()
	if err != nil {
		return err
	}

	deps := m.Dependencies()
	if len(deps) == 0 {
		fmt.Println("No dependencies")
		return nil
	}

	fmt.Printf("%sDependencies%s (%d):\n", colors.Bold, colors.Reset, len(deps))
	for _, dep := range deps {
		line := "  " + dep.Name
		if dep.Version != "" {
			line += fmt.Sprintf(" %s>= %s%s", colors.Gray, dep.Version, colors.Reset)
		}
		if len(dep.Features) > 0 {
			line += fmt.Sprintf(" %s[%s]%s", colors.Cyan, strings.Join(dep.Features, ", "), colors.Reset)
		}
		fmt.Println(line)
	}
	return nil
}

func runDepsBootstrap(cmd *cobra.Command, _ []string) error {
	ws, err := loadWorkspace()
	if err != nil {
		return err
	}

	dest := ws.project.VcpkgRootPath()
	if dir, _ := cmd.Flags().GetString("dir"); dir != "" {
		if dest, err = filepath.Abs(dir); err != nil {
			return fmt.Errorf("failed to resolve %s: %w", dir, err)
		}
	}

	r, err := ws.runner("deps")
	if err != nil {
		return err
	}
	if _, err := vcpkg.Bootstrap(cmd.Context(), r, dest); err != nil {
		return err
	}

	// Keep the project portable when the checkout lives inside it
	recorded := dest
	if rel, err := filepath.Rel(ws.root(), dest); err == nil && !strings.HasPrefix(rel, "..") {
		recorded = rel
	}
	ws.project.Deps.VcpkgRoot = recorded
	if err := config.SaveProject(ws.root(), ws.project); err != nil {
		return err
	}

	PrintSuccess("vcpkg ready in %s", dest)
	fmt.Printf("  Toolchain: %s\n", filepath.Join(dest, "scripts", "buildsystems", "vcpkg.cmake"))
	return nil
}
