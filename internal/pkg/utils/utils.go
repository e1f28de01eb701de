package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// CopyFile copies src to dest, following symlinks and keeping the source mode.
// An existing destination is replaced.
func CopyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", src, err)
	}

	// Remove destination to ensure clean copy
	_ = os.Remove(dest)

	out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dest, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy %s: %w", src, err)
	}
	return out.Close()
}

// LinkOrCopy points link at target with a symlink, falling back to a copy
// where symlinks are unavailable. It reports whether a symlink was created.
func LinkOrCopy(target, link string) (bool, error) {
	if info, err := os.Lstat(link); err == nil {
		if info.IsDir() {
			return false, fmt.Errorf("%s is a directory", link)
		}
		if err := os.Remove(link); err != nil {
			return false, fmt.Errorf("failed to replace %s: %w", link, err)
		}
	}

	absTarget, err := filepath.Abs(target)
	if err != nil {
		return false, err
	}
	if err := os.Symlink(absTarget, link); err == nil {
		return true, nil
	}

	return false, CopyFile(target, link)
}

// WriteIfMissing writes content to path unless the file already exists.
// It reports whether the file was written.
func WriteIfMissing(path, content string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return false, fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return true, nil
}
