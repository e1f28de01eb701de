package quality

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/ozacod/raider/internal/pkg/utils/colors"
	"github.com/ozacod/raider/internal/pkg/utils/process"
)

// Format rewrites files in place with a single clang-format invocation
func Format(ctx context.Context, r *process.Runner, clangFormat string, files []string) error {
	if len(files) == 0 {
		return nil
	}
	args := append([]string{"-i"}, files...)
	return r.Run(ctx, clangFormat, args...)
}

// CheckFormat formats each file to memory and writes a unified diff to out
// for every file clang-format would change. It returns the changed files.
func CheckFormat(ctx context.Context, r *process.Runner, clangFormat string, files []string, out io.Writer) ([]string, error) {
	var changed []string
	for _, file := range files {
		path := file
		if r.Dir != "" && !filepath.IsAbs(path) {
			path = filepath.Join(r.Dir, path)
		}
		before, err := os.ReadFile(path)
		if err != nil {
			return changed, fmt.Errorf("failed to read %s: %w", file, err)
		}

		after, err := r.Output(ctx, clangFormat, file)
		if err != nil {
			return changed, err
		}

		if diff := UnifiedDiff(file, string(before), string(after)); diff != "" {
			changed = append(changed, file)
			fmt.Fprint(out, diff)
		}
	}
	return changed, nil
}

// UnifiedDiff renders the line changes between before and after with file
// headers. It returns "" when the contents are equal.
func UnifiedDiff(name, before, after string) string {
	if before == after {
		return ""
	}

	dmp := diffmatchpatch.New()
	a, b, lineArray := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s--- %s%s\n", colors.Bold, name, colors.Reset)
	fmt.Fprintf(&sb, "%s+++ %s (formatted)%s\n", colors.Bold, name, colors.Reset)

	oldLine, newLine := 1, 1
	inHunk := false
	for _, d := range diffs {
		lines := splitLines(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			oldLine += len(lines)
			newLine += len(lines)
			inHunk = false
		case diffmatchpatch.DiffDelete:
			if !inHunk {
				fmt.Fprintf(&sb, "%s@@ -%d +%d @@%s\n", colors.Cyan, oldLine, newLine, colors.Reset)
				inHunk = true
			}
			for _, l := range lines {
				fmt.Fprintf(&sb, "%s-%s%s\n", colors.Red, l, colors.Reset)
			}
			oldLine += len(lines)
		case diffmatchpatch.DiffInsert:
			if !inHunk {
				fmt.Fprintf(&sb, "%s@@ -%d +%d @@%s\n", colors.Cyan, oldLine, newLine, colors.Reset)
				inHunk = true
			}
			for _, l := range lines {
				fmt.Fprintf(&sb, "%s+%s%s\n", colors.Green, l, colors.Reset)
			}
			newLine += len(lines)
		}
	}
	return sb.String()
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}
