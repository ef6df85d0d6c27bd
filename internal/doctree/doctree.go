// Package doctree defines the document tree consumed by the LaTeX renderer.
//
// The set of node variants is closed: Node carries an unexported marker
// method, so only the types declared here satisfy it. Consumers dispatch with
// a type switch and treat anything else as an error.
package doctree

import (
	"errors"

	"github.com/alnah/go-md2latex/internal/meta"
)

// ErrUnknownNodeType is returned by producers and consumers of the tree for
// content that has no node variant.
var ErrUnknownNodeType = errors.New("unknown node type")

// Node is a single element of the document tree.
type Node interface {
	// Type returns the node's name as used in error messages
	// (e.g. "paragraph", "inlineMath").
	Type() string
	node()
}

// Parent is implemented by variants that hold child nodes.
type Parent interface {
	Node
	Nodes() []Node
}

// FrontmatterFormat identifies the syntax of a metadata block.
type FrontmatterFormat int

const (
	YAML FrontmatterFormat = iota
	TOML
)

func (f FrontmatterFormat) String() string {
	switch f {
	case YAML:
		return "yaml"
	case TOML:
		return "toml"
	default:
		return "unknown"
	}
}

// Root is the top of a parsed document.
type Root struct {
	Children []Node
}

// Frontmatter is the raw metadata block found at the start of a document.
type Frontmatter struct {
	Format FrontmatterFormat
	Value  string
}

// Paragraph groups inline content.
type Paragraph struct {
	Children []Node
}

// Heading is a section title. Depth starts at 1.
type Heading struct {
	Depth    int
	Children []Node
}

// Text is literal inline text.
type Text struct {
	Value string
}

// Link is a hyperlink whose children form the visible text.
type Link struct {
	URL      string
	Children []Node
}

// List holds ListItem children.
type List struct {
	Ordered  bool
	Children []Node
}

// ListItem is a single entry of a List.
type ListItem struct {
	Children []Node
}

// InlineMath is math embedded in running text ($...$).
type InlineMath struct {
	Value string
}

// Math is display math ($$...$$).
type Math struct {
	Value string
}

// InlineCode is a code span.
type InlineCode struct {
	Value string
}

// Code is a fenced or indented code block. Lang is the first word of the
// fence info string. Meta holds the directive metadata found at the top of
// the block body, nil when there is none.
type Code struct {
	Lang  string
	Value string
	Meta  meta.Map
}

// HTML is raw embedded markup.
type HTML struct {
	Value string
}

// Image references an external file.
type Image struct {
	URL string
	Alt string
}

func (*Root) Type() string        { return "root" }
func (*Frontmatter) Type() string { return "frontmatter" }
func (*Paragraph) Type() string   { return "paragraph" }
func (*Heading) Type() string     { return "heading" }
func (*Text) Type() string        { return "text" }
func (*Link) Type() string        { return "link" }
func (*List) Type() string        { return "list" }
func (*ListItem) Type() string    { return "listItem" }
func (*InlineMath) Type() string  { return "inlineMath" }
func (*Math) Type() string        { return "math" }
func (*InlineCode) Type() string  { return "inlineCode" }
func (*Code) Type() string        { return "code" }
func (*HTML) Type() string        { return "html" }
func (*Image) Type() string       { return "image" }

func (*Root) node()        {}
func (*Frontmatter) node() {}
func (*Paragraph) node()   {}
func (*Heading) node()     {}
func (*Text) node()        {}
func (*Link) node()        {}
func (*List) node()        {}
func (*ListItem) node()    {}
func (*InlineMath) node()  {}
func (*Math) node()        {}
func (*InlineCode) node()  {}
func (*Code) node()        {}
func (*HTML) node()        {}
func (*Image) node()       {}

func (n *Root) Nodes() []Node      { return n.Children }
func (n *Paragraph) Nodes() []Node { return n.Children }
func (n *Heading) Nodes() []Node   { return n.Children }
func (n *Link) Nodes() []Node      { return n.Children }
func (n *List) Nodes() []Node      { return n.Children }
func (n *ListItem) Nodes() []Node  { return n.Children }

// Walk visits n and its descendants depth-first, in document order.
// Returning false from fn skips the children of the current node.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	p, ok := n.(Parent)
	if !ok {
		return
	}
	for _, c := range p.Nodes() {
		Walk(c, fn)
	}
}
