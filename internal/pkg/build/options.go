// Package build drives CMake and CTest through presets.
//
// Every operation builds one external invocation from its options and relays
// output and exit status through a process.Runner.
package build

// ConfigureOptions contains options for configuring a project.
type ConfigureOptions struct {
	// CMake is the cmake executable.
	CMake string

	// Preset is the configure preset name.
	Preset string
}

// BuildOptions contains options for building a project.
type BuildOptions struct {
	// CMake is the cmake executable.
	CMake string

	// Preset is the build preset name.
	Preset string

	// Target specifies a specific build target (optional).
	Target string

	// Jobs specifies the number of parallel jobs (0 = let the generator decide).
	Jobs int

	// Verbose streams the raw build output.
	Verbose bool

	// Progress replaces the build output with a progress bar when not verbose.
	Progress bool
}

// TestOptions contains options for running tests.
type TestOptions struct {
	// CTest is the ctest executable.
	CTest string

	// Preset is the test preset name.
	Preset string

	// Filter is a ctest -R regular expression.
	Filter string

	// Verbose enables verbose test output.
	Verbose bool
}

// RunOptions contains options for running a built executable.
type RunOptions struct {
	// BinaryDir is the preset's build tree.
	BinaryDir string

	// Target is the executable target to run; empty picks the newest executable.
	Target string

	// Fallback picks the newest executable when Target is not found.
	Fallback bool

	// Args are arguments passed to the executable.
	Args []string
}

// CleanOptions contains options for removing build artifacts.
type CleanOptions struct {
	// Root is the project root.
	Root string

	// BinaryDir is the preset's build tree, removed unless All is set.
	BinaryDir string

	// All removes build/ and the root compile_commands.json.
	All bool
}
