package latex

// Notes:
// - Heading depth flattening: depths 2 through 6 all render as \subsection.
//   This is a known limitation kept on purpose; the tests pin it.
// - Text is not escaped. A "%" or "&" in prose reaches LaTeX unchanged; the
//   tests pin that as well.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/alnah/go-md2latex/internal/doctree"
)

func text(s string) *doctree.Text { return &doctree.Text{Value: s} }

// ---------------------------------------------------------------------------
// TestRender - Node dispatch rules
// ---------------------------------------------------------------------------

func TestRender(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		node doctree.Node
		want string
	}{
		{
			name: "text is identity",
			node: text(`50% of a & b_c \o/`),
			want: `50% of a & b_c \o/`,
		},
		{
			name: "paragraph concatenates without separator",
			node: &doctree.Paragraph{Children: []doctree.Node{text("a"), text("b")}},
			want: "ab",
		},
		{
			name: "root concatenates paragraphs",
			node: &doctree.Root{Children: []doctree.Node{
				&doctree.Paragraph{Children: []doctree.Node{text("one")}},
				&doctree.Paragraph{Children: []doctree.Node{text("two")}},
			}},
			want: "onetwo",
		},
		{
			name: "heading depth 1",
			node: &doctree.Heading{Depth: 1, Children: []doctree.Node{text("Intro")}},
			want: "\\section{Intro}\n",
		},
		{
			name: "heading depth 2",
			node: &doctree.Heading{Depth: 2, Children: []doctree.Node{text("Part")}},
			want: "\\subsection{Part}\n",
		},
		{
			name: "heading depth 3 flattens to subsection",
			node: &doctree.Heading{Depth: 3, Children: []doctree.Node{text("Deep")}},
			want: "\\subsection{Deep}\n",
		},
		{
			name: "heading depth 6 flattens to subsection",
			node: &doctree.Heading{Depth: 6, Children: []doctree.Node{text("Deeper")}},
			want: "\\subsection{Deeper}\n",
		},
		{
			name: "heading with inline math",
			node: &doctree.Heading{Depth: 1, Children: []doctree.Node{text("On "), &doctree.InlineMath{Value: "x^2"}}},
			want: "\\section{On $x^2$}\n",
		},
		{
			name: "link",
			node: &doctree.Link{URL: "https://example.com", Children: []doctree.Node{text("site")}},
			want: `\href{https://example.com}{site}`,
		},
		{
			name: "unordered list",
			node: &doctree.List{Children: []doctree.Node{
				&doctree.ListItem{Children: []doctree.Node{&doctree.Paragraph{Children: []doctree.Node{text("a")}}}},
				&doctree.ListItem{Children: []doctree.Node{&doctree.Paragraph{Children: []doctree.Node{text("b")}}}},
			}},
			want: "\\begin{itemize}\n\\item{a}\n\\item{b}\n\\end{itemize}\n",
		},
		{
			name: "ordered list",
			node: &doctree.List{Ordered: true, Children: []doctree.Node{
				&doctree.ListItem{Children: []doctree.Node{text("first")}},
			}},
			want: "\\begin{enumerate}\n\\item{first}\n\\end{enumerate}\n",
		},
		{
			name: "nested list",
			node: &doctree.List{Children: []doctree.Node{
				&doctree.ListItem{Children: []doctree.Node{
					text("outer"),
					&doctree.List{Ordered: true, Children: []doctree.Node{
						&doctree.ListItem{Children: []doctree.Node{text("inner")}},
					}},
				}},
			}},
			want: "\\begin{itemize}\n\\item{outer\\begin{enumerate}\n\\item{inner}\n\\end{enumerate}\n}\n\\end{itemize}\n",
		},
		{
			name: "inline math",
			node: &doctree.InlineMath{Value: `\alpha + 1`},
			want: `$\alpha + 1$`,
		},
		{
			name: "block math",
			node: &doctree.Math{Value: "E = mc^2"},
			want: `\[E = mc^2\]`,
		},
		{
			name: "inline code",
			node: &doctree.InlineCode{Value: "fmt.Println()"},
			want: `\verb|fmt.Println()|`,
		},
		{
			name: "inline code containing pipe",
			node: &doctree.InlineCode{Value: "a | b"},
			want: `\verb!a | b!`,
		},
		{
			name: "html is suppressed",
			node: &doctree.HTML{Value: "<!-- note -->"},
			want: "",
		},
		{
			name: "plain code block is suppressed",
			node: &doctree.Code{Lang: "", Value: "echo hi"},
			want: "",
		},
		{
			name: "bib image is suppressed",
			node: &doctree.Image{URL: "refs.bib"},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Render(tt.node)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Render() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRender_Errors - Fatal paths abort the whole render
// ---------------------------------------------------------------------------

func TestRender_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		node    doctree.Node
		wantErr error
		wantMsg string
	}{
		{
			name:    "nil node",
			node:    nil,
			wantErr: ErrUnknownNodeType,
		},
		{
			name:    "frontmatter left in the tree",
			node:    &doctree.Frontmatter{Format: doctree.YAML, Value: "a: 1"},
			wantErr: ErrUnknownNodeType,
			wantMsg: "unknown node type: frontmatter",
		},
		{
			name: "unknown directive deep in the tree",
			node: &doctree.Root{Children: []doctree.Node{
				&doctree.Paragraph{Children: []doctree.Node{text("before")}},
				&doctree.Code{Lang: "unknown-lang", Value: "x"},
			}},
			wantErr: ErrUnknownDirective,
			wantMsg: `unknown directive: "unknown-lang"`,
		},
		{
			name: "unsupported image inside list",
			node: &doctree.List{Children: []doctree.Node{
				&doctree.ListItem{Children: []doctree.Node{&doctree.Image{URL: "a.gif"}}},
			}},
			wantErr: ErrUnsupportedImage,
		},
		{
			name: "error inside link text",
			node: &doctree.Link{URL: "u", Children: []doctree.Node{
				&doctree.Image{URL: "logo.svg"},
			}},
			wantErr: ErrUnsupportedImage,
		},
		{
			name: "error inside heading",
			node: &doctree.Heading{Depth: 2, Children: []doctree.Node{
				&doctree.InlineCode{Value: "|!+=@#~"},
			}},
			wantErr: ErrUnrenderableCode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Render(tt.node)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if got != "" {
				t.Errorf("partial output %q, want none", got)
			}
			if tt.wantMsg != "" && err.Error() != tt.wantMsg {
				t.Errorf("error message = %q, want %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRenderNodes - Sibling sequences
// ---------------------------------------------------------------------------

func TestRenderNodes(t *testing.T) {
	t.Parallel()

	nodes := []doctree.Node{
		&doctree.Heading{Depth: 1, Children: []doctree.Node{text("Title")}},
		&doctree.Paragraph{Children: []doctree.Node{
			text("See "),
			&doctree.Link{URL: "https://go.dev", Children: []doctree.Node{text("Go")}},
			text("."),
		}},
	}

	got, err := RenderNodes(nodes)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "\\section{Title}\nSee \\href{https://go.dev}{Go}."
	if got != want {
		t.Errorf("RenderNodes() = %q, want %q", got, want)
	}

	empty, err := RenderNodes(nil)
	if err != nil || empty != "" {
		t.Errorf("RenderNodes(nil) = %q, %v; want empty, nil", empty, err)
	}
}

// ---------------------------------------------------------------------------
// TestVerbatim - Delimiter selection for inline code
// ---------------------------------------------------------------------------

func TestVerbatim(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		code string
		want string
	}{
		{"x", `\verb|x|`},
		{"a|b", `\verb!a|b!`},
		{"a|b!c", `\verb+a|b!c+`},
		{"|!+=@#", `\verb~|!+=@#~`},
	} {
		got, err := verbatim(tc.code)
		if err != nil {
			t.Errorf("verbatim(%q) error: %v", tc.code, err)
			continue
		}
		if got != tc.want {
			t.Errorf("verbatim(%q) = %q, want %q", tc.code, got, tc.want)
		}
	}

	if _, err := verbatim(verbDelimiters); !errors.Is(err, ErrUnrenderableCode) {
		t.Errorf("verbatim(all delimiters) error = %v, want ErrUnrenderableCode", err)
	}
	if !strings.Contains(verbDelimiters, "|") {
		t.Error("pipe must remain the preferred delimiter")
	}
}
