package vcpkg

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/ozacod/raider/internal/pkg/logging"
	"github.com/ozacod/raider/internal/pkg/utils/process"
)

// RepositoryURL is the upstream vcpkg repository
const RepositoryURL = "https://github.com/microsoft/vcpkg.git"

// BootstrapScript is the script that builds the vcpkg binary on this platform
func BootstrapScript() string {
	if runtime.GOOS == "windows" {
		return "bootstrap-vcpkg.bat"
	}
	return "bootstrap-vcpkg.sh"
}

// IsCheckout reports whether dest already holds a git checkout
func IsCheckout(dest string) bool {
	_, err := os.Stat(filepath.Join(dest, ".git"))
	return err == nil
}

// Bootstrap clones vcpkg into dest unless it is already a checkout, then runs
// the bootstrap script. It returns the path of the vcpkg binary.
func Bootstrap(ctx context.Context, r *process.Runner, dest string) (string, error) {
	if IsCheckout(dest) {
		logging.Info().Str("dir", dest).Msg("vcpkg checkout exists, skipping clone")
	} else {
		git, err := process.Resolve("git")
		if err != nil {
			return "", err
		}
		if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
			return "", fmt.Errorf("failed to create %s: %w", filepath.Dir(dest), err)
		}
		if err := r.Run(ctx, git, "clone", RepositoryURL, dest); err != nil {
			return "", err
		}
	}

	script := filepath.Join(dest, BootstrapScript())
	if _, err := os.Stat(script); err != nil {
		return "", fmt.Errorf("%s not found in %s", BootstrapScript(), dest)
	}

	br := *r
	br.Dir = dest
	var err error
	if runtime.GOOS == "windows" {
		err = br.Run(ctx, script, "-disableMetrics")
	} else {
		err = br.Run(ctx, "bash", script, "-disableMetrics")
	}
	if err != nil {
		return "", err
	}

	exe := FindExecutable(dest)
	if exe == "" {
		return "", fmt.Errorf("bootstrap finished but %s was not produced in %s", ExecutableName(), dest)
	}
	return exe, nil
}
