package colors

import (
	"os"

	"github.com/mattn/go-isatty"
)

// ANSI color escape sequences. They are blanked by Setup when color is off.
var (
	Reset  = "\033[0m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Cyan   = "\033[36m"
	Gray   = "\033[90m"
	Bold   = "\033[1m"
	Dim    = "\033[2m"
)

// Icon constants for consistent output
const (
	IconSuccess = "✓"
	IconError   = "✗"
	IconWarn    = "!"
)

// Enabled reports whether escape sequences are currently emitted
func Enabled() bool {
	return Reset != ""
}

// Setup applies a color mode: "always", "never", or "auto" (the default),
// which enables color only when stdout is a terminal and NO_COLOR is unset.
func Setup(mode string) {
	switch mode {
	case "always":
		return
	case "never":
		disable()
	default:
		if os.Getenv("NO_COLOR") != "" || !IsTerminal(os.Stdout) {
			disable()
		}
	}
}

// IsTerminal reports whether f is attached to a terminal
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func disable() {
	Reset, Red, Green, Yellow, Cyan, Gray, Bold, Dim = "", "", "", "", "", "", "", ""
}
