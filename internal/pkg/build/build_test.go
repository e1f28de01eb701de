package build

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ozacod/raider/internal/pkg/utils/process"
	"github.com/ozacod/raider/internal/pkg/utils/process/processtest"
	rerrors "github.com/ozacod/raider/pkg/errors"
)

func TestHelperProcess(t *testing.T) {
	processtest.HelperMain()
}

func testRunner(stage string) (*process.Runner, *bytes.Buffer) {
	var stderr bytes.Buffer
	return &process.Runner{
		Stage:  stage,
		Stdout: &bytes.Buffer{},
		Stderr: &stderr,
	}, &stderr
}

func TestConfigure(t *testing.T) {
	rec := processtest.Fake(t)
	r, _ := testRunner("configure")

	require.NoError(t, Configure(context.Background(), r, ConfigureOptions{CMake: "cmake", Preset: "dev"}))
	assert.Equal(t, [][]string{{"cmake", "--preset", "dev"}}, rec.Calls())
}

func TestBuildArgs(t *testing.T) {
	tests := []struct {
		name string
		opts BuildOptions
		want []string
	}{
		{
			name: "Preset only",
			opts: BuildOptions{Preset: "dev"},
			want: []string{"--build", "--preset", "dev"},
		},
		{
			name: "Target and jobs",
			opts: BuildOptions{Preset: "rel", Target: "app", Jobs: 8},
			want: []string{"--build", "--preset", "rel", "--target", "app", "--parallel", "8"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildArgs(tt.opts))
		})
	}
}

func TestBuildPassesExitCode(t *testing.T) {
	rec := processtest.Fake(t)
	t.Setenv(processtest.EnvExitCode, "4")
	r, _ := testRunner("build")

	err := Build(context.Background(), r, BuildOptions{CMake: "cmake", Preset: "dev", Verbose: true})
	require.Error(t, err)
	assert.Equal(t, 4, rerrors.ExitCode(err))
	require.Len(t, rec.Calls(), 1)
}

func TestBuildWithProgress(t *testing.T) {
	processtest.Fake(t)
	t.Setenv(processtest.EnvStdout, "[ 50%] Building CXX object main.cpp.o\nmain.cpp:3: error: expected ';'\n[100%] Linking\n")

	t.Run("Success hides output", func(t *testing.T) {
		r, stderr := testRunner("build")
		require.NoError(t, Build(context.Background(), r, BuildOptions{CMake: "cmake", Preset: "dev", Progress: true}))
		assert.NotContains(t, stderr.String(), "expected ';'")
	})

	t.Run("Failure replays output", func(t *testing.T) {
		t.Setenv(processtest.EnvExitCode, "2")
		r, stderr := testRunner("build")
		err := Build(context.Background(), r, BuildOptions{CMake: "cmake", Preset: "dev", Progress: true})
		require.Error(t, err)
		assert.Equal(t, 2, rerrors.ExitCode(err))
		assert.Contains(t, stderr.String(), "expected ';'")
		assert.NotContains(t, stderr.String(), "[ 50%] Building")
	})
}

func TestExtractPercent(t *testing.T) {
	assert.Equal(t, 93, extractPercent("[ 93%]"))
	assert.Equal(t, 100, extractPercent("[100%]"))
	assert.Equal(t, -1, extractPercent("[ no ]"))
}

func TestTestArgs(t *testing.T) {
	assert.Equal(t,
		[]string{"--preset", "dev", "--output-on-failure"},
		TestArgs(TestOptions{Preset: "dev"}))
	assert.Equal(t,
		[]string{"--preset", "dev", "--output-on-failure", "-R", "Math.*", "-V"},
		TestArgs(TestOptions{Preset: "dev", Filter: "Math.*", Verbose: true}))
}

func TestTestRunsCTest(t *testing.T) {
	rec := processtest.Fake(t)
	r, _ := testRunner("test")

	require.NoError(t, Test(context.Background(), r, TestOptions{CTest: "ctest", Preset: "dev"}))
	assert.Equal(t, []string{"ctest"}, rec.Tools())
}

func TestLinkCompileDB(t *testing.T) {
	root := t.TempDir()
	binaryDir := filepath.Join(root, "build", "dev")
	require.NoError(t, os.MkdirAll(binaryDir, 0755))

	ok, err := LinkCompileDB(root, binaryDir)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, os.WriteFile(filepath.Join(binaryDir, "compile_commands.json"), []byte("[]"), 0644))
	ok, err = LinkCompileDB(root, binaryDir)
	require.NoError(t, err)
	assert.True(t, ok)

	content, err := os.ReadFile(filepath.Join(root, "compile_commands.json"))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(content))
}

func TestClean(t *testing.T) {
	root := t.TempDir()
	dev := filepath.Join(root, "build", "dev")
	rel := filepath.Join(root, "build", "rel")
	require.NoError(t, os.MkdirAll(dev, 0755))
	require.NoError(t, os.MkdirAll(rel, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "compile_commands.json"), []byte("[]"), 0644))

	removed, err := Clean(CleanOptions{Root: root, BinaryDir: dev})
	require.NoError(t, err)
	assert.Equal(t, []string{dev}, removed)
	assert.DirExists(t, rel)

	removed, err = Clean(CleanOptions{Root: root, BinaryDir: dev})
	require.NoError(t, err)
	assert.Empty(t, removed)

	removed, err = Clean(CleanOptions{Root: root, All: true})
	require.NoError(t, err)
	assert.Len(t, removed, 2)
	assert.NoDirExists(t, filepath.Join(root, "build"))
	assert.NoFileExists(t, filepath.Join(root, "compile_commands.json"))
}

func TestFindExecutable(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("Skipping Unix-specific permission test on Windows")
	}

	buildDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(buildDir, "CMakeFiles", "probe"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(buildDir, "bin"), 0755))

	write := func(rel string, mode os.FileMode, age time.Duration) {
		path := filepath.Join(buildDir, rel)
		require.NoError(t, os.WriteFile(path, []byte("x"), mode))
		when := time.Now().Add(-age)
		require.NoError(t, os.Chtimes(path, when, when))
	}
	write("CMakeFiles/probe/a.out", 0755, 0)
	write("libcore.a", 0755, 0)
	write("CMakeCache.txt", 0644, 0)
	write("old_tool", 0755, time.Hour)
	write("bin/app", 0755, time.Minute)

	t.Run("Named target in bin", func(t *testing.T) {
		path, err := FindExecutable(buildDir, "app", false)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(buildDir, "bin", "app"), path)
	})

	t.Run("Newest executable", func(t *testing.T) {
		path, err := FindExecutable(buildDir, "", false)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(buildDir, "bin", "app"), path)
	})

	t.Run("Missing target", func(t *testing.T) {
		_, err := FindExecutable(buildDir, "nope", false)
		assert.Error(t, err)
	})

	t.Run("Missing target with fallback", func(t *testing.T) {
		path, err := FindExecutable(buildDir, "nope", true)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(buildDir, "bin", "app"), path)
	})

	t.Run("Empty build dir", func(t *testing.T) {
		_, err := FindExecutable(t.TempDir(), "", false)
		assert.Error(t, err)
	})
}

func TestRunPassesArgs(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("Skipping Unix-specific permission test on Windows")
	}

	rec := processtest.Fake(t)
	buildDir := t.TempDir()
	exe := filepath.Join(buildDir, "demo")
	require.NoError(t, os.WriteFile(exe, []byte("x"), 0755))

	r, _ := testRunner("run")
	require.NoError(t, Run(context.Background(), r, RunOptions{BinaryDir: buildDir, Target: "demo", Args: []string{"--fast", "x"}}))
	assert.Equal(t, [][]string{{exe, "--fast", "x"}}, rec.Calls())
}

func TestWatchOptionsRelevant(t *testing.T) {
	opts := WatchOptions{Extensions: []string{".cpp", ".hpp"}}
	assert.True(t, opts.Relevant("src/main.cpp"))
	assert.True(t, opts.Relevant("CMakeLists.txt"))
	assert.True(t, opts.Relevant("cmake/deps.cmake"))
	assert.False(t, opts.Relevant("README.md"))
	assert.False(t, opts.Relevant("src/main.cpp.swp"))
}

func TestWatchRebuildsOnChange(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "src")
	require.NoError(t, os.MkdirAll(src, 0755))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	rebuilt := make(chan struct{}, 1)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, WatchOptions{
			Root:       root,
			Dirs:       []string{src},
			Extensions: []string{".cpp"},
			Debounce:   20 * time.Millisecond,
		}, func(context.Context) {
			select {
			case rebuilt <- struct{}{}:
			default:
			}
			cancel()
		})
	}()

	// Give the watcher time to register before touching files
	time.Sleep(200 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(src, "main.cpp"), []byte("int main() {}\n"), 0644))

	require.NoError(t, <-done)
	assert.Len(t, rebuilt, 1, "rebuild was not triggered")
}
