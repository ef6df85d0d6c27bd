// Package fileutil provides file and path utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Sentinel errors for file utility operations.
var (
	ErrPathEmpty   = errors.New("output path cannot be empty")
	ErrPathIsDir   = errors.New("output path is a directory")
	ErrPathInvalid = errors.New("output path contains a null byte")
)

// WriteFileAtomic writes content to path through a temporary file in the
// same directory, renamed into place once fully written. Readers never see
// a partially written file, and a failed write leaves any existing file
// untouched.
func WriteFileAtomic(path, content string, perm os.FileMode) error {
	if err := ValidateOutputPath(path); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmpFile, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}

	tmpPath := tmpFile.Name()
	cleanup := func() { _ = os.Remove(tmpPath) }

	if _, writeErr := tmpFile.WriteString(content); writeErr != nil {
		_ = tmpFile.Close()
		cleanup()
		return fmt.Errorf("writing temp file: %w", writeErr)
	}

	if closeErr := tmpFile.Close(); closeErr != nil {
		cleanup()
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if chmodErr := os.Chmod(tmpPath, perm); chmodErr != nil {
		cleanup()
		return fmt.Errorf("setting permissions: %w", chmodErr)
	}

	if renameErr := os.Rename(tmpPath, path); renameErr != nil {
		cleanup()
		return fmt.Errorf("replacing %s: %w", path, renameErr)
	}

	return nil
}

// ValidateOutputPath checks that path can name a regular file.
func ValidateOutputPath(path string) error {
	if path == "" {
		return ErrPathEmpty
	}
	if strings.ContainsRune(path, '\x00') {
		return ErrPathInvalid
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return fmt.Errorf("%w: %s", ErrPathIsDir, path)
	}
	return nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
//
// Examples:
//   - "thesis" -> false (name)
//   - "./thesis.yaml" -> true (relative path)
//   - "../shared/md2latex.yml" -> true (parent path)
//   - "/absolute/config.yaml" -> true (absolute)
//   - "C:\windows\config.yaml" -> true (Windows)
//   - "lab-report" -> false (hyphenated name)
//   - "sub/dir" -> true (contains separator)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}
