package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/viper"
	"github.com/tidwall/jsonc"

	rerrors "github.com/ozacod/raider/pkg/errors"
)

// ProjectFile is the per-project configuration file name
const ProjectFile = "raider.json"

// EnvPrefix prefixes environment overrides, e.g. RAIDER_TOOLS_CMAKE
const EnvPrefix = "RAIDER"

// ValidCxxStandards lists the C++ standards accepted by init
var ValidCxxStandards = []int{11, 14, 17, 20, 23, 26}

// Project represents raider.json merged over the defaults
type Project struct {
	Project ProjectInfo `mapstructure:"project" json:"project"`
	Presets Presets     `mapstructure:"presets" json:"presets"`
	Paths   Paths       `mapstructure:"paths" json:"paths"`
	Tools   Tools       `mapstructure:"tools" json:"tools"`
	Run     Run         `mapstructure:"run" json:"run"`
	Format  Format      `mapstructure:"format" json:"format"`
	Deps    Deps        `mapstructure:"deps" json:"deps"`

	// Root is the directory raider.json was loaded from
	Root string `mapstructure:"-" json:"-"`
}

type ProjectInfo struct {
	Name        string `mapstructure:"name" json:"name"`
	CxxStandard int    `mapstructure:"cxx_standard" json:"cxx_standard"`
}

// Presets holds optional default presets. An empty value means "not configured".
type Presets struct {
	Configure string `mapstructure:"configure" json:"configure,omitempty"`
	Build     string `mapstructure:"build" json:"build,omitempty"`
	Test      string `mapstructure:"test" json:"test,omitempty"`
}

type Paths struct {
	SrcDir   string `mapstructure:"src_dir" json:"src_dir"`
	TestsDir string `mapstructure:"tests_dir" json:"tests_dir"`
}

type Tools struct {
	CMake       string `mapstructure:"cmake" json:"cmake"`
	CTest       string `mapstructure:"ctest" json:"ctest"`
	ClangFormat string `mapstructure:"clang_format" json:"clang_format"`
	ClangTidy   string `mapstructure:"clang_tidy" json:"clang_tidy"`
}

type Run struct {
	Target string `mapstructure:"target" json:"target,omitempty"`
}

type Format struct {
	Extensions  []string `mapstructure:"extensions" json:"extensions"`
	ExcludeDirs []string `mapstructure:"exclude_dirs" json:"exclude_dirs"`
}

type Deps struct {
	Manager   string `mapstructure:"manager" json:"manager"`
	Manifest  string `mapstructure:"manifest" json:"manifest"`
	VcpkgRoot string `mapstructure:"vcpkg_root" json:"vcpkg_root"`
}

func setProjectDefaults(v *viper.Viper) {
	v.SetDefault("project.name", "raider-proj")
	v.SetDefault("project.cxx_standard", 20)

	// Presets have no built-in value; registering the keys lets env overrides reach them
	v.SetDefault("presets.configure", "")
	v.SetDefault("presets.build", "")
	v.SetDefault("presets.test", "")

	v.SetDefault("paths.src_dir", "src")
	v.SetDefault("paths.tests_dir", "tests")

	v.SetDefault("tools.cmake", "cmake")
	v.SetDefault("tools.ctest", "ctest")
	v.SetDefault("tools.clang_format", "clang-format")
	v.SetDefault("tools.clang_tidy", "clang-tidy")

	v.SetDefault("run.target", "")

	v.SetDefault("format.extensions", []string{".h", ".hpp", ".c", ".cc", ".cpp", ".cxx"})
	v.SetDefault("format.exclude_dirs", []string{"build", ".git", ".cache"})

	v.SetDefault("deps.manager", "vcpkg")
	v.SetDefault("deps.manifest", "vcpkg.json")
	v.SetDefault("deps.vcpkg_root", filepath.Join(".tools", "vcpkg"))
}

// ProjectPath returns the path of raider.json inside root
func ProjectPath(root string) string {
	return filepath.Join(root, ProjectFile)
}

// LoadProject loads raider.json from root, deep-merged over the defaults.
// A missing file yields the defaults. Comments are allowed in the file.
func LoadProject(root string) (*Project, error) {
	v := viper.New()
	setProjectDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path := ProjectPath(root)
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		v.SetConfigType("json")
		if err := v.ReadConfig(bytes.NewReader(jsonc.ToJSON(data))); err != nil {
			return nil, rerrors.NewConfigError(ProjectFile, fmt.Sprintf("failed to parse: %v", err), "check the file is valid JSON")
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var project Project
	if err := v.Unmarshal(&project); err != nil {
		return nil, rerrors.NewConfigError(ProjectFile, fmt.Sprintf("failed to decode: %v", err), "")
	}
	project.Root = root

	if err := project.Validate(); err != nil {
		return nil, err
	}
	return &project, nil
}

// Validate checks the values raider relies on
func (p *Project) Validate() error {
	if strings.TrimSpace(p.Project.Name) == "" {
		return rerrors.NewConfigError("project.name", "must not be empty", "")
	}
	if !slices.Contains(ValidCxxStandards, p.Project.CxxStandard) {
		return rerrors.NewConfigError("project.cxx_standard",
			fmt.Sprintf("unsupported standard %d", p.Project.CxxStandard),
			"use one of 11, 14, 17, 20, 23, 26")
	}
	if len(p.Format.Extensions) == 0 {
		return rerrors.NewConfigError("format.extensions", "must list at least one extension", "")
	}
	return nil
}

// SaveProject writes the full configuration back to raider.json in root
func SaveProject(root string, p *Project) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", ProjectFile, err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(ProjectPath(root), data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", ProjectFile, err)
	}
	return nil
}

// Preset returns the configured default preset for a stage ("configure", "build", "test")
func (p *Project) Preset(stage string) string {
	switch stage {
	case "configure":
		return p.Presets.Configure
	case "build":
		return p.Presets.Build
	case "test":
		return p.Presets.Test
	}
	return ""
}

// ManifestPath returns the absolute-or-root-relative path of the dependency manifest
func (p *Project) ManifestPath() string {
	if filepath.IsAbs(p.Deps.Manifest) {
		return p.Deps.Manifest
	}
	return filepath.Join(p.Root, p.Deps.Manifest)
}

// VcpkgRootPath returns the vcpkg checkout directory for the project
func (p *Project) VcpkgRootPath() string {
	if filepath.IsAbs(p.Deps.VcpkgRoot) {
		return p.Deps.VcpkgRoot
	}
	return filepath.Join(p.Root, p.Deps.VcpkgRoot)
}
