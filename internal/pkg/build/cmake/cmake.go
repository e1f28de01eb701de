// Package cmake reads the CMake files of a project.
package cmake

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
)

const (
	ListsFile   = "CMakeLists.txt"
	PresetsFile = "CMakePresets.json"
	CacheFile   = "CMakeCache.txt"
	CompileDB   = "compile_commands.json"
)

var projectRe = regexp.MustCompile(`project\s*\(\s*([^\s\)]+)`)

// ProjectName returns the name given to project() in root/CMakeLists.txt
func ProjectName(root string) string {
	data, err := os.ReadFile(filepath.Join(root, ListsFile))
	if err != nil {
		return ""
	}

	// Look for: project(PROJECT_NAME ...)
	matches := projectRe.FindStringSubmatch(string(data))
	if len(matches) > 1 {
		return matches[1]
	}
	return ""
}

// Presets holds the parsed CMakePresets.json of a project
type Presets struct {
	root string
	doc  gjson.Result
}

// LoadPresets reads root/CMakePresets.json. A missing or invalid file yields
// an empty set so callers fall back to the default layout.
func LoadPresets(root string) *Presets {
	p := &Presets{root: root}
	data, err := os.ReadFile(filepath.Join(root, PresetsFile))
	if err != nil || !gjson.ValidBytes(data) {
		return p
	}
	p.doc = gjson.ParseBytes(data)
	return p
}

// Names returns the preset names of a kind ("configure", "build", "test")
func (p *Presets) Names(kind string) []string {
	var names []string
	for _, r := range p.doc.Get(kind + "Presets.#.name").Array() {
		names = append(names, r.String())
	}
	return names
}

func (p *Presets) find(kind, name string) gjson.Result {
	return p.doc.Get(kind + `Presets.#(name=="` + escape(name) + `")`)
}

// BinaryDir returns the binary directory used by a preset. The name is looked
// up as a build preset first, following its configurePreset, then as a
// configure preset. Unknown presets map to build/<preset>.
func (p *Presets) BinaryDir(name string) string {
	configure := name
	if bp := p.find("build", name); bp.Exists() {
		if ref := bp.Get("configurePreset").String(); ref != "" {
			configure = ref
		}
	} else if tp := p.find("test", name); tp.Exists() {
		if ref := tp.Get("configurePreset").String(); ref != "" {
			configure = ref
		}
	}

	if dir := p.binaryDirOf(configure, 0); dir != "" {
		return p.expand(dir, configure)
	}
	return filepath.Join(p.root, "build", name)
}

// binaryDirOf resolves binaryDir through the "inherits" chain
func (p *Presets) binaryDirOf(name string, depth int) string {
	if depth > 16 {
		return ""
	}
	cp := p.find("configure", name)
	if !cp.Exists() {
		return ""
	}
	if dir := cp.Get("binaryDir").String(); dir != "" {
		return dir
	}
	inherits := cp.Get("inherits")
	parents := inherits.Array()
	if inherits.Type == gjson.String {
		parents = []gjson.Result{inherits}
	}
	for _, parent := range parents {
		if dir := p.binaryDirOf(parent.String(), depth+1); dir != "" {
			return dir
		}
	}
	return ""
}

func (p *Presets) expand(dir, preset string) string {
	absRoot, err := filepath.Abs(p.root)
	if err != nil {
		absRoot = p.root
	}
	r := strings.NewReplacer(
		"${sourceDir}", absRoot,
		"${presetName}", preset,
		"${sourceDirName}", filepath.Base(absRoot),
	)
	dir = filepath.FromSlash(r.Replace(dir))
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(p.root, dir)
	}
	return dir
}

func escape(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}
