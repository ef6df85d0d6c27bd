package main

import (
	"errors"
	"os"

	flag "github.com/spf13/pflag"

	md2latex "github.com/alnah/go-md2latex"
	"github.com/alnah/go-md2latex/internal/config"
	"github.com/alnah/go-md2latex/internal/fileutil"
)

// Exit codes for md2latex CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess  = 0 // Successful conversion
	ExitGeneral  = 1 // General/unexpected error
	ExitUsage    = 2 // Invalid flags, arguments, or config
	ExitIO       = 3 // File not found, permission denied, write failure
	ExitDocument = 4 // Document or template cannot be converted
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Document errors (exit 4)
	if errors.Is(err, md2latex.ErrMissingFrontmatter) ||
		errors.Is(err, md2latex.ErrInvalidFrontmatter) ||
		errors.Is(err, md2latex.ErrUnknownNodeType) ||
		errors.Is(err, md2latex.ErrUnknownDirective) ||
		errors.Is(err, md2latex.ErrUnsupportedImage) ||
		errors.Is(err, md2latex.ErrUnrenderableCode) ||
		errors.Is(err, md2latex.ErrUnresolvedField) ||
		errors.Is(err, md2latex.ErrUnsupportedValue) ||
		errors.Is(err, md2latex.ErrEmptyMarkdown) {
		return ExitDocument
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, ErrReadTemplate) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, fileutil.ErrPathEmpty) ||
		errors.Is(err, fileutil.ErrPathIsDir) ||
		errors.Is(err, fileutil.ErrPathInvalid) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, flag.ErrHelp) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrNoTemplate) ||
		errors.Is(err, ErrTooManyArgs) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidFieldName) ||
		errors.Is(err, config.ErrTooManyDefaults) ||
		errors.Is(err, config.ErrInvalidLogLevel) ||
		errors.Is(err, md2latex.ErrInvalidFieldName) {
		return ExitUsage
	}

	return ExitGeneral
}
