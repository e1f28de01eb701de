package utils

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyFile(t *testing.T) {
	tmpDir := t.TempDir()

	srcFile := filepath.Join(tmpDir, "source")
	srcContent := []byte("test content for copy")
	require.NoError(t, os.WriteFile(srcFile, srcContent, 0755))

	t.Run("Basic copy", func(t *testing.T) {
		destFile := filepath.Join(tmpDir, "dest1")

		require.NoError(t, CopyFile(srcFile, destFile))

		destContent, err := os.ReadFile(destFile)
		require.NoError(t, err)
		assert.Equal(t, srcContent, destContent)
	})

	t.Run("Overwrite existing file", func(t *testing.T) {
		destFile := filepath.Join(tmpDir, "dest2")
		require.NoError(t, os.WriteFile(destFile, []byte("old content"), 0644))

		require.NoError(t, CopyFile(srcFile, destFile))

		destContent, err := os.ReadFile(destFile)
		require.NoError(t, err)
		assert.Equal(t, srcContent, destContent)
	})

	t.Run("Non-existent source file", func(t *testing.T) {
		err := CopyFile(filepath.Join(tmpDir, "nonexistent"), filepath.Join(tmpDir, "dest3"))
		assert.Error(t, err)
	})
}

func TestCopyFile_PreservesExecutability(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("Skipping Unix-specific permission test on Windows")
	}

	tmpDir := t.TempDir()
	srcFile := filepath.Join(tmpDir, "exec_source")
	require.NoError(t, os.WriteFile(srcFile, []byte("#!/bin/sh\necho test"), 0755))

	destFile := filepath.Join(tmpDir, "exec_dest")
	require.NoError(t, CopyFile(srcFile, destFile))

	info, err := os.Stat(destFile)
	require.NoError(t, err)
	assert.True(t, info.Mode().Perm()&0111 != 0, "File should be executable")
}

func TestCopyFile_SymlinkSource(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("Skipping symlink test on Windows")
	}

	tmpDir := t.TempDir()
	actualFile := filepath.Join(tmpDir, "actual")
	require.NoError(t, os.WriteFile(actualFile, []byte("symlink content"), 0644))
	symlinkFile := filepath.Join(tmpDir, "symlink")
	require.NoError(t, os.Symlink(actualFile, symlinkFile))

	destFile := filepath.Join(tmpDir, "dest")
	require.NoError(t, CopyFile(symlinkFile, destFile))

	destContent, err := os.ReadFile(destFile)
	require.NoError(t, err)
	assert.Equal(t, "symlink content", string(destContent))

	info, err := os.Lstat(destFile)
	require.NoError(t, err)
	assert.False(t, info.Mode()&os.ModeSymlink != 0, "Destination should not be a symlink")
}

func TestLinkOrCopy(t *testing.T) {
	tmpDir := t.TempDir()

	target := filepath.Join(tmpDir, "build", "dev", "compile_commands.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(target), 0755))
	require.NoError(t, os.WriteFile(target, []byte("[]"), 0644))

	link := filepath.Join(tmpDir, "compile_commands.json")
	// A stale file at the link location is replaced
	require.NoError(t, os.WriteFile(link, []byte("stale"), 0644))

	_, err := LinkOrCopy(target, link)
	require.NoError(t, err)

	content, err := os.ReadFile(link)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(content))

	t.Run("Refuses directory", func(t *testing.T) {
		dirLink := filepath.Join(tmpDir, "adir")
		require.NoError(t, os.MkdirAll(dirLink, 0755))
		_, err := LinkOrCopy(target, dirLink)
		assert.Error(t, err)
	})
}

func TestWriteIfMissing(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "src", "main.cpp")

	written, err := WriteIfMissing(path, "first")
	require.NoError(t, err)
	assert.True(t, written)

	written, err = WriteIfMissing(path, "second")
	require.NoError(t, err)
	assert.False(t, written)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first", string(content))
}
