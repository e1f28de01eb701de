package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ozacod/raider/internal/pkg/templates"
	"github.com/ozacod/raider/internal/pkg/utils/colors"
	"github.com/ozacod/raider/pkg/config"
	rerrors "github.com/ozacod/raider/pkg/errors"
)

func InitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Scaffold a CMake project",
		Long: `Scaffold a CMake project with presets, clang tooling configuration,
a hello-world executable, a test executable and a vcpkg manifest.

Existing files are never overwritten. With --name the project is created
in a new directory of that name.`,
		Example: `  raider init                 # Scaffold into the current directory
  raider init --name demo     # Create demo/ and scaffold into it
  raider init --cxxstd 23     # Use C++23`,
		Args: noArgs,
		RunE: runInit,
	}

	cmd.Flags().String("name", "", "Project name; creates a directory of that name")
	cmd.Flags().Int("cxxstd", 0, "C++ standard: 11, 14, 17, 20, 23 or 26")

	return cmd
}

func runInit(cmd *cobra.Command, _ []string) error {
	name, _ := cmd.Flags().GetString("name")
	cxxstd, _ := cmd.Flags().GetInt("cxxstd")

	if cxxstd != 0 && !slices.Contains(config.ValidCxxStandards, cxxstd) {
		return rerrors.NewUsageError(fmt.Sprintf("unsupported C++ standard %d", cxxstd),
			"use one of 11, 14, 17, 20, 23, 26")
	}

	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	root := wd
	if name != "" {
		if err := validateProjectName(name); err != nil {
			return err
		}
		root = filepath.Join(wd, name)
		if _, err := os.Stat(root); err == nil {
			return fmt.Errorf("directory '%s' already exists", name)
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to check %s: %w", root, err)
		}
		if err := os.Mkdir(root, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", name, err)
		}
	}

	p, err := config.LoadProject(root)
	if err != nil {
		return err
	}
	if name != "" {
		p.Project.Name = name
	}
	if cxxstd != 0 {
		p.Project.CxxStandard = cxxstd
	}

	written, err := templates.Scaffold(root, templates.Config{
		Name:        p.Project.Name,
		CppStandard: p.Project.CxxStandard,
		SrcDir:      p.Paths.SrcDir,
		TestsDir:    p.Paths.TestsDir,
		WithVcpkg:   p.Deps.Manager == "vcpkg",
		VcpkgRoot:   p.Deps.VcpkgRoot,
		Manifest:    p.Deps.Manifest,
	})
	if err != nil {
		return err
	}
	if err := config.SaveProject(root, p); err != nil {
		return err
	}

	for _, f := range written {
		fmt.Printf("  %s+%s %s\n", colors.Green, colors.Reset, f)
	}
	fmt.Printf("  %s~%s %s\n", colors.Cyan, colors.Reset, config.ProjectFile)
	PrintSuccess("init is done")

	if name != "" {
		fmt.Printf("\n  cd %s\n", name)
	}
	fmt.Printf("  raider configure --preset dev && raider build --preset dev\n")
	return nil
}

func validateProjectName(name string) error {
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) || strings.TrimSpace(name) != name {
		return rerrors.NewUsageError(fmt.Sprintf("invalid project name %q", name),
			"use a plain directory name such as demo")
	}
	return nil
}
