package md2latex

import (
	"errors"

	"github.com/alnah/go-md2latex/internal/doctree"
	"github.com/alnah/go-md2latex/internal/frontmatter"
	"github.com/alnah/go-md2latex/internal/latex"
	"github.com/alnah/go-md2latex/internal/meta"
	"github.com/alnah/go-md2latex/internal/placeholder"
)

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown    = errors.New("markdown content cannot be empty")
	ErrInvalidFieldName = errors.New("invalid template field name")

	// Document structure errors.
	ErrMissingFrontmatter = frontmatter.ErrMissing
	ErrInvalidFrontmatter = frontmatter.ErrInvalid
	ErrUnknownNodeType    = doctree.ErrUnknownNodeType

	// Rendering errors.
	ErrUnknownDirective = latex.ErrUnknownDirective
	ErrUnsupportedImage = latex.ErrUnsupportedImage
	ErrUnrenderableCode = latex.ErrUnrenderableCode

	// Template errors.
	ErrUnresolvedField  = placeholder.ErrUnresolvedField
	ErrUnsupportedValue = meta.ErrUnsupportedValue
)
