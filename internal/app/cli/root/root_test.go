package root

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/ozacod/raider/internal/pkg/utils/process/processtest"
	"github.com/ozacod/raider/pkg/config"
	rerrors "github.com/ozacod/raider/pkg/errors"
)

func TestHelperProcess(t *testing.T) {
	processtest.HelperMain()
}

// sandbox moves the test into an empty project directory with its own HOME
func sandbox(t *testing.T) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("RAIDER_LOG_LEVEL", "")
	dir := t.TempDir()
	t.Chdir(dir)
	wd, err := os.Getwd()
	require.NoError(t, err)
	return wd
}

func run(args ...string) int {
	return Execute(context.Background(), append([]string{"--color", "never"}, args...))
}

func runOut(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs(append([]string{"--color", "never"}, args...))
	err := cmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestUnknownCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"Unknown command", []string{"bulid"}},
		{"Unknown deps subcommand", []string{"deps", "frobnicate"}},
		{"Unknown raid subcommand", []string{"raid", "dance"}},
		{"Unknown flag", []string{"build", "--bogus"}},
		{"Missing flag value", []string{"configure", "--preset"}},
		{"Unexpected argument", []string{"fmt", "extra"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sandbox(t)
			rec := processtest.Fake(t)

			assert.Equal(t, rerrors.ExitUsage, run(tt.args...))
			assert.Empty(t, rec.Calls())
		})
	}
}

func TestUnknownCommandSuggestion(t *testing.T) {
	sandbox(t)
	_, err := runOut(t, "bulid")
	require.Error(t, err)
	assert.True(t, rerrors.IsUsageError(err))
	assert.Contains(t, err.Error(), "build")
}

func TestConfigureRequiresPreset(t *testing.T) {
	sandbox(t)
	rec := processtest.Fake(t)

	_, err := runOut(t, "configure")
	require.Error(t, err)
	assert.True(t, rerrors.IsUsageError(err))
	assert.Contains(t, err.Error(), "--preset")
	assert.Empty(t, rec.Calls())
}

func TestConfigurePassThrough(t *testing.T) {
	tests := []struct {
		name     string
		exitCode string
		want     int
	}{
		{"Tool succeeds", "0", 0},
		{"Tool fails", "3", 3},
		{"Tool fails with 1", "1", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sandbox(t)
			rec := processtest.Fake(t)
			t.Setenv(processtest.EnvExitCode, tt.exitCode)

			assert.Equal(t, tt.want, run("configure", "--preset", "dev"))
			assert.Equal(t, [][]string{{"cmake", "--preset", "dev"}}, rec.Calls())
		})
	}
}

func TestPresetFromConfig(t *testing.T) {
	root := sandbox(t)
	rec := processtest.Fake(t)
	writeFile(t, filepath.Join(root, config.ProjectFile), `{
  // defaults for this checkout
  "presets": {"configure": "rel", "test": "rel"}
}`)

	assert.Equal(t, 0, run("configure"))
	assert.Equal(t, 0, run("test", "-R", "parser"))
	assert.Equal(t, [][]string{
		{"cmake", "--preset", "rel"},
		{"ctest", "--preset", "rel", "--output-on-failure", "-R", "parser"},
	}, rec.Calls())

	// The build preset is still unset
	assert.Equal(t, rerrors.ExitUsage, run("build"))
}

func TestToolMissing(t *testing.T) {
	sandbox(t)
	rec := processtest.Fake(t, "cmake")

	_, err := runOut(t, "configure", "--preset", "dev")
	assert.True(t, rerrors.IsToolError(err))
	assert.Equal(t, rerrors.ExitFailure, rerrors.ExitCode(err))
	assert.Empty(t, rec.Calls())
}

func TestBuildLinksCompileDB(t *testing.T) {
	root := sandbox(t)
	rec := processtest.Fake(t)
	writeFile(t, filepath.Join(root, "build", "dev", "compile_commands.json"), "[]")

	assert.Equal(t, 0, run("build", "--preset", "dev", "--target", "demo", "-j", "4"))
	assert.Equal(t, [][]string{{"cmake", "--build", "--preset", "dev", "--target", "demo", "--parallel", "4"}}, rec.Calls())
	assert.FileExists(t, filepath.Join(root, "compile_commands.json"))
}

func TestRunExecutable(t *testing.T) {
	root := sandbox(t)
	rec := processtest.Fake(t)
	writeFile(t, filepath.Join(root, "CMakeLists.txt"), "project(demo LANGUAGES CXX)\n")
	exe := filepath.Join(root, "build", "dev", "demo")
	writeFile(t, exe, "#!/bin/sh\n")
	require.NoError(t, os.Chmod(exe, 0755))

	assert.Equal(t, 0, run("run", "--preset", "dev", "--", "--input", "data.txt"))
	assert.Equal(t, [][]string{{exe, "--input", "data.txt"}}, rec.Calls())
}

func TestTidyRequiresCompileDB(t *testing.T) {
	root := sandbox(t)
	rec := processtest.Fake(t)
	writeFile(t, filepath.Join(root, "src", "main.cpp"), "int main() {}\n")

	_, err := runOut(t, "tidy", "--preset", "dev")
	assert.ErrorIs(t, err, rerrors.ErrBuildNotConfigured)
	assert.Empty(t, rec.Calls())

	writeFile(t, filepath.Join(root, "build", "dev", "compile_commands.json"), "[]")
	assert.Equal(t, 0, run("tidy", "--preset", "dev", "--fix"))
	assert.Equal(t, [][]string{{"clang-tidy", "-p", filepath.Join(root, "build", "dev"), "--fix", filepath.Join("src", "main.cpp")}}, rec.Calls())
}

func TestFmt(t *testing.T) {
	t.Run("Formats in place", func(t *testing.T) {
		root := sandbox(t)
		rec := processtest.Fake(t)
		writeFile(t, filepath.Join(root, "src", "main.cpp"), "int main(){}\n")
		writeFile(t, filepath.Join(root, "build", "gen.cpp"), "int x;\n")

		assert.Equal(t, 0, run("fmt"))
		assert.Equal(t, [][]string{{"clang-format", "-i", filepath.Join("src", "main.cpp")}}, rec.Calls())
	})

	t.Run("Check fails on differences", func(t *testing.T) {
		root := sandbox(t)
		processtest.Fake(t)
		writeFile(t, filepath.Join(root, "src", "main.cpp"), "int main(){}\n")
		t.Setenv(processtest.EnvStdout, "int main() {}\n")

		_, err := runOut(t, "fmt", "--check")
		assert.ErrorIs(t, err, rerrors.ErrFormatDiffers)
	})

	t.Run("Check passes when formatted", func(t *testing.T) {
		root := sandbox(t)
		processtest.Fake(t)
		writeFile(t, filepath.Join(root, "src", "main.cpp"), "int main() {}\n")
		t.Setenv(processtest.EnvStdout, "int main() {}\n")

		assert.Equal(t, 0, run("fmt", "--check"))
	})
}

func TestRaidPull(t *testing.T) {
	for _, arg := range []string{"abc", "0", "-1"} {
		t.Run(arg, func(t *testing.T) {
			sandbox(t)
			rec := processtest.Fake(t)

			_, err := runOut(t, "raid", "pull", "--", arg)
			require.Error(t, err)
			assert.True(t, rerrors.IsUsageError(err))
			assert.Empty(t, rec.Calls())
		})
	}

	t.Run("Counts down", func(t *testing.T) {
		sandbox(t)
		out, err := runOut(t, "raid", "pull", "1")
		require.NoError(t, err)
		assert.Contains(t, out, "=== PULL IN 1 ===")
		assert.Contains(t, out, "PULL NOW!")
	})
}

func TestRaidChecklists(t *testing.T) {
	sandbox(t)

	out, err := runOut(t, "raid", "check")
	require.NoError(t, err)
	assert.Contains(t, out, "=== RAID READY CHECK ===")

	out, err = runOut(t, "raid", "ready")
	require.NoError(t, err)
	assert.Contains(t, out, "=== RAID READY CHECK ===")

	out, err = runOut(t, "raid", "consumes")
	require.NoError(t, err)
	assert.Contains(t, out, "=== CONSUMABLES CHECKLIST ===")
}

func TestRaidMetersSeeded(t *testing.T) {
	sandbox(t)

	body := func(out string) string {
		_, rest, _ := strings.Cut(out, "\n")
		return rest
	}

	a, err := runOut(t, "raid", "meters", "--seed", "7", "--width", "12")
	require.NoError(t, err)
	b, err := runOut(t, "raid", "meters", "--seed", "7", "--width", "12")
	require.NoError(t, err)

	assert.Equal(t, body(a), body(b))
	assert.Contains(t, a, "Fight: ")
	assert.Contains(t, a, strings.Repeat("-", 12+38))
}

func TestInit(t *testing.T) {
	root := sandbox(t)
	rec := processtest.Fake(t)

	assert.Equal(t, 0, run("init", "--name", "demo", "--cxxstd", "23"))
	assert.Empty(t, rec.Calls())

	dir := filepath.Join(root, "demo")
	for _, f := range []string{"CMakeLists.txt", "CMakePresets.json", ".clangd", ".clang-tidy", ".clang-format",
		".gitignore", "vcpkg.json", config.ProjectFile, filepath.Join("src", "main.cpp"), filepath.Join("tests", "test_main.cpp")} {
		assert.FileExists(t, filepath.Join(dir, f))
	}

	p, err := config.LoadProject(dir)
	require.NoError(t, err)
	assert.Equal(t, "demo", p.Project.Name)
	assert.Equal(t, 23, p.Project.CxxStandard)

	lists, err := os.ReadFile(filepath.Join(dir, "CMakeLists.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(lists), "set(CMAKE_CXX_STANDARD 23)")

	// A second init of the same name must not touch the directory
	_, err = runOut(t, "init", "--name", "demo")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestInitRejectsBadInput(t *testing.T) {
	sandbox(t)

	assert.Equal(t, rerrors.ExitUsage, run("init", "--cxxstd", "19"))
	assert.Equal(t, rerrors.ExitUsage, run("init", "--name", "../escape"))
}

func TestInitCurrentDirectoryKeepsFiles(t *testing.T) {
	root := sandbox(t)
	writeFile(t, filepath.Join(root, "src", "main.cpp"), "// mine\n")

	assert.Equal(t, 0, run("init"))
	content, err := os.ReadFile(filepath.Join(root, "src", "main.cpp"))
	require.NoError(t, err)
	assert.Equal(t, "// mine\n", string(content))
	assert.FileExists(t, filepath.Join(root, "CMakePresets.json"))
}

func TestDeps(t *testing.T) {
	root := sandbox(t)
	rec := processtest.Fake(t)
	manifest := filepath.Join(root, "vcpkg.json")

	// No manifest yet
	assert.Equal(t, rerrors.ExitFailure, run("deps", "add", "fmt"))

	writeFile(t, manifest, `{"name": "demo", "dependencies": []}`)

	assert.Equal(t, 0, run("deps", "add", "fmt"))
	data, err := os.ReadFile(manifest)
	require.NoError(t, err)
	deps := gjson.GetBytes(data, "dependencies").Array()
	require.Len(t, deps, 1)
	assert.Equal(t, gjson.String, deps[0].Type)
	assert.Equal(t, "fmt", deps[0].Str)

	// Adding twice leaves the manifest as it is
	assert.Equal(t, 0, run("deps", "add", "fmt"))
	again, err := os.ReadFile(manifest)
	require.NoError(t, err)
	assert.Equal(t, string(data), string(again))

	assert.Equal(t, 0, run("deps", "add", "spdlog", "--version", "1.12.0"))
	assert.Equal(t, rerrors.ExitUsage, run("deps", "add", "zlib", "--version", "latest"))
	assert.Equal(t, rerrors.ExitUsage, run("deps", "add"))

	assert.Equal(t, 0, run("deps", "list"))

	assert.Equal(t, 0, run("deps", "remove", "fmt"))
	assert.Equal(t, 0, run("deps", "remove", "fmt"))
	data, err = os.ReadFile(manifest)
	require.NoError(t, err)
	assert.Equal(t, "spdlog", gjson.GetBytes(data, "dependencies.0.name").String())

	assert.Empty(t, rec.Calls())
}

func TestDepsRequiresVcpkg(t *testing.T) {
	root := sandbox(t)
	writeFile(t, filepath.Join(root, config.ProjectFile), `{"deps": {"manager": "conan"}}`)

	_, err := runOut(t, "deps", "add", "fmt")
	assert.ErrorIs(t, err, rerrors.ErrNotVcpkg)
}

func TestConfigCommands(t *testing.T) {
	sandbox(t)

	assert.Equal(t, 0, run("config", "set", "color", "never"))
	cfg, err := config.LoadGlobal()
	require.NoError(t, err)
	assert.Equal(t, "never", cfg.Color)

	assert.Equal(t, 0, run("config", "get", "color"))
	assert.Equal(t, 0, run("config", "show"))
	assert.Equal(t, 0, run("config", "path"))

	assert.Equal(t, rerrors.ExitUsage, run("config", "set", "color", "purple"))
	assert.Equal(t, rerrors.ExitUsage, run("config", "get", "bogus"))
}

func TestVersion(t *testing.T) {
	sandbox(t)
	out, err := runOut(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "raider "))
}
