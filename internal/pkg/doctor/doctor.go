// Package doctor checks that the toolchain raider wraps is installed.
package doctor

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/ozacod/raider/internal/pkg/build/cmake"
	"github.com/ozacod/raider/internal/pkg/build/vcpkg"
	"github.com/ozacod/raider/internal/pkg/logging"
	"github.com/ozacod/raider/internal/pkg/utils/colors"
	"github.com/ozacod/raider/internal/pkg/utils/process"
)

// Check is one tool the doctor looks for
type Check struct {
	Exe  string
	Desc string
	// Optional tools are reported but do not fail the check
	Optional bool
}

// Checks lists the tools in report order
var Checks = []Check{
	{Exe: "cmake", Desc: "CMake"},
	{Exe: "ninja", Desc: "Ninja"},
	{Exe: "ctest", Desc: "CTest"},
	{Exe: "clang", Desc: "Clang (compiler)"},
	{Exe: "clangd", Desc: "clangd (LSP)"},
	{Exe: "clang-format", Desc: "clang-format"},
	{Exe: "clang-tidy", Desc: "clang-tidy"},
	{Exe: "vcpkg", Desc: "vcpkg", Optional: true},
}

// ToolStatus is the resolution result of one check
type ToolStatus struct {
	Check
	Path string
}

// Found reports whether the tool resolved
func (s ToolStatus) Found() bool {
	return s.Path != ""
}

// FileStatus reports whether a project file exists
type FileStatus struct {
	Path   string
	Exists bool
}

// Host describes the machine
type Host struct {
	OS         string
	Platform   string
	Version    string
	Arch       string
	CPUModel   string
	CPUs       int
	MemTotal   uint64
	MemUsedPct float64
}

// Report is the outcome of a doctor run
type Report struct {
	Tools []ToolStatus
	Files []FileStatus
	Host  *Host
}

// OK reports whether every required tool was found
func (r Report) OK() bool {
	for _, t := range r.Tools {
		if !t.Optional && !t.Found() {
			return false
		}
	}
	return true
}

// Options configures a doctor run
type Options struct {
	Root string
	// VcpkgRoots are searched in order before PATH
	VcpkgRoots []string
	// WithHost adds host information to the report
	WithHost bool
}

// Run resolves every check and inspects the project files
func Run(opts Options) Report {
	var r Report
	for _, c := range Checks {
		status := ToolStatus{Check: c}
		if c.Exe == "vcpkg" {
			status.Path = vcpkg.FindExecutable(opts.VcpkgRoots...)
		}
		if status.Path == "" {
			if path, err := process.LookPath(c.Exe); err == nil {
				status.Path = path
			}
		}
		logging.Debug().Str("tool", c.Exe).Str("path", status.Path).Msg("resolved tool")
		r.Tools = append(r.Tools, status)
	}

	for _, name := range []string{cmake.ListsFile, cmake.PresetsFile, cmake.CompileDB} {
		path := filepath.Join(opts.Root, name)
		_, err := os.Stat(path)
		r.Files = append(r.Files, FileStatus{Path: path, Exists: err == nil})
	}

	if opts.WithHost {
		r.Host = HostInfo()
	}
	return r
}

// HostInfo collects host facts. Facts that cannot be read are left empty.
func HostInfo() *Host {
	h := &Host{OS: runtime.GOOS, Arch: runtime.GOARCH}

	if info, err := host.Info(); err == nil {
		h.Platform = info.Platform
		h.Version = info.PlatformVersion
	} else {
		logging.Debug().Err(err).Msg("host info unavailable")
	}

	if n, err := cpu.Counts(true); err == nil {
		h.CPUs = n
	}
	if infos, err := cpu.Info(); err == nil && len(infos) > 0 {
		h.CPUModel = infos[0].ModelName
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		h.MemTotal = vm.Total
		h.MemUsedPct = vm.UsedPercent
	} else {
		logging.Debug().Err(err).Msg("memory info unavailable")
	}
	return h
}

// Print writes the report the way `raider check` shows it
func Print(w io.Writer, r Report) {
	fmt.Fprintln(w, "Checking your consumables and enchants/gems...")
	fmt.Fprintln(w)
	for _, t := range r.Tools {
		switch {
		case t.Found():
			fmt.Fprintf(w, "%s%s%s %-12s %-20s -> %s\n", colors.Green, colors.IconSuccess, colors.Reset, t.Exe, t.Desc, t.Path)
		case t.Optional:
			fmt.Fprintf(w, "%s%s%s %-12s %-20s -> not found (optional)\n", colors.Yellow, colors.IconWarn, colors.Reset, t.Exe, t.Desc)
		default:
			fmt.Fprintf(w, "%s%s%s %-12s %-20s -> NOT FOUND\n", colors.Red, colors.IconError, colors.Reset, t.Exe, t.Desc)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Files:")
	for _, f := range r.Files {
		state := colors.Green + "OK" + colors.Reset
		if !f.Exists {
			state = colors.Yellow + "missing" + colors.Reset
		}
		fmt.Fprintf(w, " - %s: %s\n", f.Path, state)
	}

	if h := r.Host; h != nil {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Host:")
		platform := h.OS
		if h.Platform != "" {
			platform = fmt.Sprintf("%s (%s %s)", h.OS, h.Platform, h.Version)
		}
		fmt.Fprintf(w, " - OS:     %s/%s\n", platform, h.Arch)
		if h.CPUs > 0 {
			fmt.Fprintf(w, " - CPU:    %d x %s\n", h.CPUs, h.CPUModel)
		}
		if h.MemTotal > 0 {
			fmt.Fprintf(w, " - Memory: %.1f GiB (%.0f%% used)\n", float64(h.MemTotal)/(1<<30), h.MemUsedPct)
		}
	}
}
