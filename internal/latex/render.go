// Package latex renders a document tree into a LaTeX fragment.
//
// Rendering is pure and single-pass: container nodes concatenate the output
// of their children, leaves map to LaTeX directly, and fenced code blocks and
// images go through their directive resolvers. Text is emitted verbatim;
// LaTeX special characters are not escaped.
package latex

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alnah/go-md2latex/internal/doctree"
)

// Sentinel errors for rendering.
var (
	ErrUnknownNodeType  = doctree.ErrUnknownNodeType
	ErrUnknownDirective = errors.New("unknown directive")
	ErrUnsupportedImage = errors.New("unsupported image type")
	ErrUnrenderableCode = errors.New("no verb delimiter available for inline code")
)

// verbDelimiters are tried in order for \verb; the first one absent from the
// code span wins.
const verbDelimiters = "|!+=@#~"

// Render converts a single node and its descendants to LaTeX.
func Render(n doctree.Node) (string, error) {
	var sb strings.Builder
	if err := render(&sb, n); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// RenderNodes converts a sequence of sibling nodes, concatenated in order.
func RenderNodes(nodes []doctree.Node) (string, error) {
	var sb strings.Builder
	if err := renderChildren(&sb, nodes); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func render(sb *strings.Builder, n doctree.Node) error {
	switch n := n.(type) {
	case *doctree.Root:
		return renderChildren(sb, n.Children)
	case *doctree.Paragraph:
		return renderChildren(sb, n.Children)
	case *doctree.ListItem:
		return renderChildren(sb, n.Children)
	case *doctree.Heading:
		return renderHeading(sb, n)
	case *doctree.Text:
		sb.WriteString(n.Value)
	case *doctree.Link:
		text, err := RenderNodes(n.Children)
		if err != nil {
			return err
		}
		fmt.Fprintf(sb, `\href{%s}{%s}`, n.URL, text)
	case *doctree.List:
		return renderList(sb, n)
	case *doctree.InlineMath:
		sb.WriteString("$" + n.Value + "$")
	case *doctree.Math:
		sb.WriteString(`\[` + n.Value + `\]`)
	case *doctree.InlineCode:
		verb, err := verbatim(n.Value)
		if err != nil {
			return err
		}
		sb.WriteString(verb)
	case *doctree.Code:
		out, err := ResolveCode(n.Lang, n.Value, n.Meta)
		if err != nil {
			return err
		}
		sb.WriteString(out)
	case *doctree.HTML:
		// Raw markup has no LaTeX counterpart.
	case *doctree.Image:
		out, err := ResolveImage(n.URL, n.Alt)
		if err != nil {
			return err
		}
		sb.WriteString(out)
	case nil:
		return fmt.Errorf("%w: nil node", ErrUnknownNodeType)
	default:
		// Frontmatter lands here: it must be extracted before rendering.
		return fmt.Errorf("%w: %s", ErrUnknownNodeType, n.Type())
	}
	return nil
}

func renderChildren(sb *strings.Builder, nodes []doctree.Node) error {
	for _, c := range nodes {
		if err := render(sb, c); err != nil {
			return err
		}
	}
	return nil
}

// renderHeading maps depth 1 to \section and every deeper level to
// \subsection.
func renderHeading(sb *strings.Builder, h *doctree.Heading) error {
	content, err := RenderNodes(h.Children)
	if err != nil {
		return err
	}
	cmd := "section"
	if h.Depth > 1 {
		cmd = "subsection"
	}
	fmt.Fprintf(sb, "\\%s{%s}\n", cmd, content)
	return nil
}

func renderList(sb *strings.Builder, l *doctree.List) error {
	env := "itemize"
	if l.Ordered {
		env = "enumerate"
	}
	fmt.Fprintf(sb, "\\begin{%s}\n", env)
	for _, item := range l.Children {
		content, err := Render(item)
		if err != nil {
			return err
		}
		fmt.Fprintf(sb, "\\item{%s}\n", content)
	}
	fmt.Fprintf(sb, "\\end{%s}\n", env)
	return nil
}

// verbatim wraps code in \verb using a delimiter that does not occur in it.
func verbatim(code string) (string, error) {
	for _, d := range verbDelimiters {
		if !strings.ContainsRune(code, d) {
			return `\verb` + string(d) + code + string(d), nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnrenderableCode, code)
}
