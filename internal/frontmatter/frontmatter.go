// Package frontmatter locates and decodes the metadata block that opens a
// document, and separates it from the body of a parsed tree.
package frontmatter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/alnah/go-md2latex/internal/doctree"
	"github.com/alnah/go-md2latex/internal/meta"
	"github.com/alnah/go-md2latex/internal/yamlutil"
)

// Sentinel errors for metadata extraction.
var (
	ErrMissing = errors.New("missing frontmatter")
	ErrInvalid = errors.New("invalid frontmatter")
)

// Delimiters for the supported block styles.
const (
	yamlFence = "---"
	tomlFence = "+++"
)

// Block is a raw metadata block cut from the top of a document.
type Block struct {
	Format doctree.FrontmatterFormat
	Value  string
}

// Split cuts a leading metadata block from content. The first line must be
// exactly "---" (YAML) or "+++" (TOML) and the block ends at the next line
// holding the same delimiter. ok is false when content does not start with
// a complete block, in which case rest is content unchanged.
func Split(content string) (block Block, rest string, ok bool) {
	first, remainder, found := strings.Cut(content, "\n")
	if !found {
		return Block{}, content, false
	}

	var format doctree.FrontmatterFormat
	fence := strings.TrimRight(first, " \t")
	switch fence {
	case yamlFence:
		format = doctree.YAML
	case tomlFence:
		format = doctree.TOML
	default:
		return Block{}, content, false
	}

	value, rest, closed := cutAtFence(remainder, fence)
	if !closed {
		return Block{}, content, false
	}
	return Block{Format: format, Value: value}, rest, true
}

// cutAtFence returns the text before the first line equal to fence and the
// text after that line.
func cutAtFence(s, fence string) (before, after string, ok bool) {
	offset := 0
	for offset <= len(s) {
		line, next, more := strings.Cut(s[offset:], "\n")
		if strings.TrimRight(line, " \t") == fence {
			before = strings.TrimSuffix(s[:offset], "\n")
			if more {
				after = next
			}
			return before, after, true
		}
		if !more {
			break
		}
		offset += len(line) + 1
	}
	return "", s, false
}

// Decode parses a raw block into a metadata mapping.
func Decode(format doctree.FrontmatterFormat, value string) (meta.Map, error) {
	switch format {
	case doctree.YAML:
		m, err := yamlutil.UnmarshalMapping([]byte(value))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
		}
		return meta.Map(m), nil
	case doctree.TOML:
		m := map[string]any{}
		if _, err := toml.Decode(value, &m); err != nil {
			return nil, fmt.Errorf("%w: toml: %v", ErrInvalid, err)
		}
		return meta.Map(m), nil
	default:
		return nil, fmt.Errorf("%w: unknown format %s", ErrInvalid, format)
	}
}

// Extract separates the metadata from the body of a parsed document. The
// first child of root must be a frontmatter node. root is left untouched;
// the returned slice holds the remaining children.
func Extract(root *doctree.Root) ([]doctree.Node, meta.Map, error) {
	if root == nil || len(root.Children) == 0 {
		return nil, nil, ErrMissing
	}

	fm, ok := root.Children[0].(*doctree.Frontmatter)
	if !ok {
		return nil, nil, fmt.Errorf("%w: document starts with %s", ErrMissing, root.Children[0].Type())
	}

	fields, err := Decode(fm.Format, fm.Value)
	if err != nil {
		return nil, nil, err
	}

	body := make([]doctree.Node, len(root.Children)-1)
	copy(body, root.Children[1:])
	return body, fields, nil
}
