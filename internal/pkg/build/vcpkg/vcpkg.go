// Package vcpkg edits the vcpkg manifest and bootstraps a vcpkg checkout.
package vcpkg

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	rerrors "github.com/ozacod/raider/pkg/errors"
)

// Dependency is one entry of the manifest "dependencies" array
type Dependency struct {
	Name string
	// Version is the "version>=" constraint of an object entry
	Version string
	// Features lists the requested port features of an object entry
	Features []string
}

const versionKey = "version>="

var prettyOptions = &pretty.Options{Width: 80, Prefix: "", Indent: "  ", SortKeys: false}

// Manifest is a vcpkg.json document kept as raw JSON so untouched keys keep
// their order
type Manifest struct {
	Path string
	data []byte
}

// Load reads the manifest at path
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w (%s)", rerrors.ErrNoManifest, path)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if !gjson.ValidBytes(data) {
		return nil, rerrors.NewDependencyError(filepath.Base(path), "invalid JSON", "")
	}

	deps := gjson.GetBytes(data, "dependencies")
	if deps.Exists() && !deps.IsArray() {
		return nil, rerrors.NewDependencyError(filepath.Base(path), "'dependencies' must be a list", "")
	}
	return &Manifest{Path: path, data: data}, nil
}

// Bytes returns the current document
func (m *Manifest) Bytes() []byte {
	return m.data
}

// Dependencies returns the manifest dependencies in file order
func (m *Manifest) Dependencies() []Dependency {
	var deps []Dependency
	gjson.GetBytes(m.data, "dependencies").ForEach(func(_, value gjson.Result) bool {
		switch {
		case value.Type == gjson.String:
			deps = append(deps, Dependency{Name: value.String()})
		case value.IsObject():
			dep := Dependency{Name: value.Get("name").String()}
			value.ForEach(func(key, v gjson.Result) bool {
				if key.String() == versionKey {
					dep.Version = v.String()
				}
				return true
			})
			for _, f := range value.Get("features").Array() {
				if f.IsObject() {
					dep.Features = append(dep.Features, f.Get("name").String())
				} else {
					dep.Features = append(dep.Features, f.String())
				}
			}
			deps = append(deps, dep)
		}
		return true
	})
	return deps
}

func (m *Manifest) indexOf(name string) int {
	for i, dep := range m.Dependencies() {
		if dep.Name == name {
			return i
		}
	}
	return -1
}

// Has reports whether a dependency with this name is listed
func (m *Manifest) Has(name string) bool {
	return m.indexOf(name) >= 0
}

// ValidatePackage rejects package names vcpkg could never resolve
func ValidatePackage(pkg string) error {
	if strings.TrimSpace(pkg) == "" {
		return rerrors.NewUsageError("package name must not be empty", "raider deps add <package>")
	}
	return nil
}

// ParseVersion validates a "version>=" constraint
func ParseVersion(version string) (string, error) {
	v, err := semver.NewVersion(version)
	if err != nil {
		return "", rerrors.NewUsageError(
			fmt.Sprintf("invalid version %q: %v", version, err),
			"use a version such as 11.0.2")
	}
	return v.Original(), nil
}

// Add appends pkg to the dependencies. With a version the entry becomes
// {"name": pkg, "version>=": version}. It reports false when pkg is
// already listed.
func (m *Manifest) Add(pkg, version string) (bool, error) {
	if err := ValidatePackage(pkg); err != nil {
		return false, err
	}
	if m.Has(pkg) {
		return false, nil
	}

	var value any = pkg
	if version != "" {
		v, err := ParseVersion(version)
		if err != nil {
			return false, err
		}
		value = struct {
			Name    string `json:"name"`
			Version string `json:"version>="`
		}{pkg, v}
	}
	raw, err := marshalRaw(value)
	if err != nil {
		return false, err
	}

	data := m.data
	if !gjson.GetBytes(data, "dependencies").Exists() {
		if data, err = sjson.SetRawBytes(data, "dependencies", []byte("[]")); err != nil {
			return false, err
		}
	}
	data, err = sjson.SetRawBytes(data, "dependencies.-1", raw)
	if err != nil {
		return false, fmt.Errorf("failed to update %s: %w", m.Path, err)
	}
	m.data = pretty.PrettyOptions(data, prettyOptions)
	return true, nil
}

// marshalRaw encodes v without HTML escaping so keys like "version>=" stay readable
func marshalRaw(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSpace(buf.Bytes()), nil
}

// Remove deletes the entry named pkg. It reports false when pkg is not listed.
func (m *Manifest) Remove(pkg string) (bool, error) {
	idx := m.indexOf(pkg)
	if idx < 0 {
		return false, nil
	}
	data, err := sjson.DeleteBytes(m.data, "dependencies."+strconv.Itoa(idx))
	if err != nil {
		return false, fmt.Errorf("failed to update %s: %w", m.Path, err)
	}
	m.data = pretty.PrettyOptions(data, prettyOptions)
	return true, nil
}

// Save writes the manifest back to its path
func (m *Manifest) Save() error {
	if err := os.WriteFile(m.Path, m.data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", m.Path, err)
	}
	return nil
}

// ExecutableName is the vcpkg binary name on this platform
func ExecutableName() string {
	if runtime.GOOS == "windows" {
		return "vcpkg.exe"
	}
	return "vcpkg"
}

// FindExecutable returns the vcpkg binary under the first root that has one
func FindExecutable(roots ...string) string {
	for _, root := range roots {
		if root == "" {
			continue
		}
		path := filepath.Join(root, ExecutableName())
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}
