package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/alnah/go-md2latex/internal/doctree"
	"github.com/alnah/go-md2latex/internal/frontmatter"
)

// Parser abstracts markdown to document tree conversion.
type Parser interface {
	Parse(ctx context.Context, content string) (*doctree.Root, error)
}

// GoldmarkParser parses markdown with goldmark and converts the result into a
// doctree.Root. Constructs without a tree variant are rejected.
type GoldmarkParser struct {
	md goldmark.Markdown
}

// NewGoldmarkParser creates a GoldmarkParser with GFM, footnotes and math.
// GFM and footnotes are enabled so that tables, strikethrough, task lists and
// footnotes are recognized and rejected instead of leaking through as text.
func NewGoldmarkParser() *GoldmarkParser {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,      // Tables, strikethrough, autolinks, task lists
			extension.Footnote, // [^1] footnotes
			Math,               // $inline$ and $$ display $$
		),
	)
	return &GoldmarkParser{md: md}
}

// Parse converts content into a tree. A leading metadata block becomes the
// first child of the root.
func (p *GoldmarkParser) Parse(ctx context.Context, content string) (*doctree.Root, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	root := &doctree.Root{}
	body := content
	if block, rest, ok := frontmatter.Split(content); ok {
		root.Children = append(root.Children, &doctree.Frontmatter{Format: block.Format, Value: block.Value})
		body = rest
	}

	source := []byte(body)
	doc := p.md.Parser().Parse(text.NewReader(source))

	c := &treeBuilder{source: source}
	children, err := c.children(doc)
	if err != nil {
		return nil, err
	}
	root.Children = append(root.Children, children...)
	return root, nil
}

// treeBuilder converts goldmark nodes into tree nodes.
type treeBuilder struct {
	source []byte
}

func (b *treeBuilder) children(n ast.Node) ([]doctree.Node, error) {
	var out []doctree.Node
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		converted, err := b.convert(c)
		if err != nil {
			return nil, err
		}
		out = append(out, converted...)
	}
	return out, nil
}

// convert maps one goldmark node to its tree counterpart. Kinds without a
// counterpart abort the conversion.
func (b *treeBuilder) convert(n ast.Node) ([]doctree.Node, error) {
	switch n := n.(type) {
	case *ast.Paragraph:
		return b.container(n, func(c []doctree.Node) doctree.Node { return &doctree.Paragraph{Children: c} })
	case *ast.TextBlock:
		// Tight list items hold a TextBlock where loose ones hold a Paragraph.
		return b.container(n, func(c []doctree.Node) doctree.Node { return &doctree.Paragraph{Children: c} })
	case *ast.Heading:
		level := n.Level
		return b.container(n, func(c []doctree.Node) doctree.Node { return &doctree.Heading{Depth: level, Children: c} })
	case *ast.List:
		ordered := n.IsOrdered()
		return b.container(n, func(c []doctree.Node) doctree.Node { return &doctree.List{Ordered: ordered, Children: c} })
	case *ast.ListItem:
		return b.container(n, func(c []doctree.Node) doctree.Node { return &doctree.ListItem{Children: c} })
	case *ast.Link:
		url := decode(n.Destination)
		return b.container(n, func(c []doctree.Node) doctree.Node { return &doctree.Link{URL: url, Children: c} })
	case *ast.AutoLink:
		url := string(n.URL(b.source))
		switch {
		case n.AutoLinkType == ast.AutoLinkEmail && !strings.HasPrefix(strings.ToLower(url), "mailto:"):
			url = "mailto:" + url
		case n.AutoLinkType == ast.AutoLinkURL && strings.HasPrefix(url, "www."):
			url = "http://" + url
		}
		label := &doctree.Text{Value: string(n.Label(b.source))}
		return one(&doctree.Link{URL: url, Children: []doctree.Node{label}})
	case *ast.Text:
		return b.text(n)
	case *ast.String:
		return one(&doctree.Text{Value: string(n.Value)})
	case *ast.CodeSpan:
		return one(&doctree.InlineCode{Value: b.codeSpan(n)})
	case *ast.FencedCodeBlock:
		return b.code(string(n.Language(b.source)), n.Lines())
	case *ast.CodeBlock:
		return b.code("", n.Lines())
	case *ast.HTMLBlock:
		value := linesValue(n.Lines(), b.source)
		if n.HasClosure() {
			value += string(n.ClosureLine.Value(b.source))
		}
		return one(&doctree.HTML{Value: value})
	case *ast.RawHTML:
		var sb strings.Builder
		for i := 0; i < n.Segments.Len(); i++ {
			seg := n.Segments.At(i)
			sb.Write(seg.Value(b.source))
		}
		return one(&doctree.HTML{Value: sb.String()})
	case *ast.Image:
		return one(&doctree.Image{URL: decode(n.Destination), Alt: b.plainText(n)})
	case *InlineMath:
		return one(&doctree.InlineMath{Value: string(n.Value)})
	case *MathBlock:
		return one(&doctree.Math{Value: string(n.Value)})
	default:
		return nil, fmt.Errorf("%w: %s", doctree.ErrUnknownNodeType, kindName(n))
	}
}

func (b *treeBuilder) container(n ast.Node, build func([]doctree.Node) doctree.Node) ([]doctree.Node, error) {
	children, err := b.children(n)
	if err != nil {
		return nil, err
	}
	return one(build(children))
}

// text converts a text segment. Soft line breaks are kept as a newline in the
// value; hard line breaks have no tree variant.
func (b *treeBuilder) text(n *ast.Text) ([]doctree.Node, error) {
	if n.HardLineBreak() {
		return nil, fmt.Errorf("%w: break", doctree.ErrUnknownNodeType)
	}
	segment := n.Segment.Value(b.source)
	value := string(segment)
	if !n.IsRaw() {
		value = decode(segment)
	}
	if n.SoftLineBreak() {
		value += "\n"
	}
	return one(&doctree.Text{Value: value})
}

// codeSpan joins the raw segments of a code span. Line endings inside the
// span become spaces.
func (b *treeBuilder) codeSpan(n *ast.CodeSpan) string {
	var sb strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			v := string(t.Segment.Value(b.source))
			if strings.HasSuffix(v, "\n") {
				v = strings.TrimSuffix(v, "\n") + " "
			}
			sb.WriteString(v)
		case *ast.String:
			sb.WriteString(string(t.Value))
		}
	}
	return sb.String()
}

// code builds a code node, moving a leading "---" YAML block from the body
// into the directive metadata.
func (b *treeBuilder) code(lang string, lines *text.Segments) ([]doctree.Node, error) {
	value := strings.TrimSuffix(linesValue(lines, b.source), "\n")
	node := &doctree.Code{Lang: lang, Value: value}

	if block, rest, ok := frontmatter.Split(value); ok && block.Format == doctree.YAML {
		m, err := frontmatter.Decode(block.Format, block.Value)
		if err != nil {
			return nil, fmt.Errorf("%s code block metadata: %w", displayLang(lang), err)
		}
		node.Meta = m
		node.Value = rest
	}
	return one(node)
}

// plainText collects the literal text below n, used for image alt text.
func (b *treeBuilder) plainText(n ast.Node) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			sb.WriteString(decode(t.Segment.Value(b.source)))
			if t.SoftLineBreak() || t.HardLineBreak() {
				sb.WriteString("\n")
			}
		case *ast.String:
			sb.Write(t.Value)
		case *ast.CodeSpan:
			sb.WriteString(b.codeSpan(t))
			return ast.WalkSkipChildren, nil
		case *InlineMath:
			sb.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return sb.String()
}

func linesValue(lines *text.Segments, source []byte) string {
	var sb strings.Builder
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(source))
	}
	return sb.String()
}

// decode applies CommonMark backslash escapes and resolves numeric and named
// character references ("\*" becomes "*", "&amp;" becomes "&").
func decode(v []byte) string {
	v = util.UnescapePunctuations(v)
	v = util.ResolveNumericReferences(v)
	v = util.ResolveEntityNames(v)
	return string(v)
}

// kindName returns a lower camel case name for a goldmark node kind
// ("Emphasis" becomes "emphasis", "FootnoteLink" becomes "footnoteLink").
func kindName(n ast.Node) string {
	name := n.Kind().String()
	if name == "" {
		return "unknown"
	}
	return strings.ToLower(name[:1]) + name[1:]
}

func displayLang(lang string) string {
	if lang == "" {
		return "untagged"
	}
	return fmt.Sprintf("%q", lang)
}

func one(n doctree.Node) ([]doctree.Node, error) {
	return []doctree.Node{n}, nil
}
