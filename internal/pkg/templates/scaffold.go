package templates

import (
	"path/filepath"

	"github.com/ozacod/raider/internal/pkg/utils"
)

// Config holds the values the project files are generated from
type Config struct {
	Name        string
	CppStandard int
	SrcDir      string
	TestsDir    string
	// VcpkgRoot and Manifest are only used when WithVcpkg is set
	WithVcpkg bool
	VcpkgRoot string
	Manifest  string
}

// File is one generated project file, relative to the project root
type File struct {
	Path    string
	Content string
}

// Files returns every file a new project is scaffolded with, in write order
func Files(cfg Config) []File {
	vcpkgRoot := ""
	if cfg.WithVcpkg {
		vcpkgRoot = cfg.VcpkgRoot
	}

	files := []File{
		{"CMakeLists.txt", GenerateCMakeLists(cfg.Name, cfg.CppStandard, cfg.SrcDir, cfg.TestsDir)},
		{"CMakePresets.json", GenerateCMakePresets(vcpkgRoot)},
		{".clangd", GenerateClangd()},
		{".clang-tidy", GenerateClangTidy([]string{cfg.SrcDir, "include", cfg.TestsDir})},
		{".clang-format", GenerateClangFormat("")},
		{".gitignore", GenerateGitignore()},
		{filepath.Join(cfg.SrcDir, "main.cpp"), GenerateMainCpp(cfg.Name)},
		{filepath.Join(cfg.TestsDir, "test_main.cpp"), GenerateTestMain()},
	}
	if cfg.WithVcpkg {
		files = append(files, File{cfg.Manifest, GenerateVcpkgManifest(cfg.Name)})
	}
	return files
}

// Scaffold writes the project files under root, leaving existing files
// untouched. It returns the paths that were written.
func Scaffold(root string, cfg Config) ([]string, error) {
	var written []string
	for _, f := range Files(cfg) {
		path := f.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(root, path)
		}
		ok, err := utils.WriteIfMissing(path, f.Content)
		if err != nil {
			return written, err
		}
		if ok {
			written = append(written, f.Path)
		}
	}
	return written, nil
}
