package templates

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ============================================================================
// C++ SOURCE TEMPLATES
// ============================================================================

func GenerateMainCpp(projectName string) string {
	return fmt.Sprintf(`#include <iostream>

int main() {
    std::cout << "Hello raider from %s!\n";
    return 0;
}
`, projectName)
}

func GenerateTestMain() string {
	return `#include <cassert>
#include <iostream>

int main() {
    assert(1 + 1 == 2);
    std::cout << "tests OK\n";
    return 0;
}
`
}

// ============================================================================
// CMAKE TEMPLATES
// ============================================================================

// GenerateCMakeLists generates the top-level CMakeLists.txt with an
// executable, its tests, and compile command export
func GenerateCMakeLists(projectName string, cppStandard int, srcDir, testsDir string) string {
	srcDir = filepath.ToSlash(srcDir)
	testsDir = filepath.ToSlash(testsDir)

	return fmt.Sprintf(`cmake_minimum_required(VERSION 3.20)
project(%[1]s LANGUAGES CXX)

set(CMAKE_CXX_STANDARD %[2]d)
set(CMAKE_CXX_STANDARD_REQUIRED ON)
set(CMAKE_CXX_EXTENSIONS OFF)
set(CMAKE_EXPORT_COMPILE_COMMANDS ON)

add_executable(%[1]s %[3]s/main.cpp)
target_include_directories(%[1]s PRIVATE ${CMAKE_CURRENT_SOURCE_DIR}/%[3]s)

enable_testing()
add_executable(%[1]s_tests %[4]s/test_main.cpp)
target_include_directories(%[1]s_tests PRIVATE ${CMAKE_CURRENT_SOURCE_DIR}/%[3]s)
add_test(NAME %[1]s_tests COMMAND %[1]s_tests)
`, projectName, cppStandard, srcDir, testsDir)
}

// GenerateCMakePresets generates CMakePresets.json with the dev (Debug) and
// rel (Release) presets. When vcpkgRoot is set its toolchain file is wired in.
func GenerateCMakePresets(vcpkgRoot string) string {
	toolchain := ""
	if vcpkgRoot != "" {
		root := filepath.ToSlash(vcpkgRoot)
		if !filepath.IsAbs(vcpkgRoot) {
			root = "${sourceDir}/" + root
		}
		toolchain = fmt.Sprintf(`,
        "CMAKE_TOOLCHAIN_FILE": "%s/scripts/buildsystems/vcpkg.cmake"`, root)
	}

	configure := func(name, display, buildType string) string {
		return fmt.Sprintf(`    {
      "name": "%s",
      "displayName": "%s",
      "generator": "Ninja",
      "binaryDir": "${sourceDir}/build/${presetName}",
      "cacheVariables": {
        "CMAKE_BUILD_TYPE": "%s",
        "CMAKE_EXPORT_COMPILE_COMMANDS": "ON"%s
      }
    }`, name, display, buildType, toolchain)
	}

	return fmt.Sprintf(`{
  "version": 6,
  "cmakeMinimumRequired": { "major": 3, "minor": 20, "patch": 0 },
  "configurePresets": [
%s,
%s
  ],
  "buildPresets": [
    { "name": "dev", "configurePreset": "dev" },
    { "name": "rel", "configurePreset": "rel" }
  ],
  "testPresets": [
    { "name": "dev", "configurePreset": "dev", "output": { "outputOnFailure": true } },
    { "name": "rel", "configurePreset": "rel", "output": { "outputOnFailure": true } }
  ]
}
`, configure("dev", "Dev (Ninja, Debug)", "Debug"), configure("rel", "Release (Ninja, Release)", "Release"))
}

// ============================================================================
// CONFIGURATION TEMPLATES
// ============================================================================

func GenerateGitignore() string {
	return `# Build directories
build/
out/

# Tooling
.tools/
.cache/
compile_commands.json

# IDE
.idea/
.vscode/
*.swp
*.swo
*~

# Compiled files
*.o
*.obj
*.a
*.lib
*.so
*.dylib
*.dll

# Testing
Testing/

# Local environment
.env
`
}

func GenerateClangd() string {
	return `CompileFlags:
  Add: [-Wall, -Wextra, -Wpedantic]
`
}

func GenerateClangFormat(style string) string {
	if style == "" {
		style = "LLVM"
	}

	return fmt.Sprintf(`---
Language: Cpp
BasedOnStyle: %s
IndentWidth: 4
ColumnLimit: 120
AccessModifierOffset: -4
AllowShortFunctionsOnASingleLine: Inline
AllowShortIfStatementsOnASingleLine: Never
BreakBeforeBraces: Attach
IndentCaseLabels: true
InsertBraces: true
InsertNewlineAtEOF: true
PointerAlignment: Left
SortIncludes: CaseSensitive
...
`, style)
}

func GenerateClangTidy(headerDirs []string) string {
	var dirs []string
	for _, d := range headerDirs {
		dirs = append(dirs, filepath.ToSlash(d))
	}

	return fmt.Sprintf(`---
Checks: "bugprone-*,\
  cppcoreguidelines-*,\
  modernize-*,\
  performance-*,\
  readability-*,\
  -modernize-use-trailing-return-type,\
  -readability-identifier-length,\
  -cppcoreguidelines-avoid-magic-numbers,\
  -readability-magic-numbers"
HeaderFilterRegex: '^(%s)/'
WarningsAsErrors: ''
CheckOptions:
  - key: 'readability-identifier-naming.ClassCase'
    value: 'CamelCase'
  - key: 'readability-identifier-naming.FunctionCase'
    value: 'lower_case'
  - key: 'readability-identifier-naming.VariableCase'
    value: 'lower_case'
  - key: 'readability-identifier-naming.MacroDefinitionCase'
    value: 'UPPER_CASE'
  - key: 'readability-identifier-naming.PrivateMemberPrefix'
    value: 'm_'
...
`, strings.Join(dirs, "|"))
}

// GenerateVcpkgManifest generates vcpkg.json with no dependencies
func GenerateVcpkgManifest(projectName string) string {
	return fmt.Sprintf(`{
  "name": "%s",
  "version-string": "0.1.0",
  "dependencies": []
}
`, ManifestName(projectName))
}

// ManifestName lowers a project name into the form vcpkg accepts
// (lowercase alphanumerics separated by single dashes)
func ManifestName(projectName string) string {
	var sb strings.Builder
	dash := false
	for _, r := range strings.ToLower(projectName) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			sb.WriteRune(r)
			dash = false
			continue
		}
		if !dash && sb.Len() > 0 {
			sb.WriteByte('-')
			dash = true
		}
	}
	name := strings.TrimSuffix(sb.String(), "-")
	if name == "" {
		return "app"
	}
	return name
}
