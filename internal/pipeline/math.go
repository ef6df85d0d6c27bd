package pipeline

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Node kinds added by the math extension.
var (
	KindInlineMath = ast.NewNodeKind("InlineMath")
	KindMathBlock  = ast.NewNodeKind("MathBlock")
)

// InlineMath is $...$ (or $$...$$) inside running text.
type InlineMath struct {
	ast.BaseInline
	Value []byte
}

// Kind implements ast.Node.
func (n *InlineMath) Kind() ast.NodeKind { return KindInlineMath }

// Dump implements ast.Node.
func (n *InlineMath) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Value": string(n.Value)}, nil)
}

// MathBlock is display math delimited by $$ lines.
type MathBlock struct {
	ast.BaseBlock
	Value []byte

	// closed marks a block that opened and closed on the same line.
	closed bool
}

// Kind implements ast.Node.
func (n *MathBlock) Kind() ast.NodeKind { return KindMathBlock }

// IsRaw implements ast.Node. Math content is never parsed as inlines.
func (n *MathBlock) IsRaw() bool { return true }

// Dump implements ast.Node.
func (n *MathBlock) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Value": string(n.Value)}, nil)
}

const mathFence = "$$"

// mathExtension registers the math parsers with goldmark.
type mathExtension struct{}

// Math adds $...$ inline math and $$ display math blocks.
var Math goldmark.Extender = &mathExtension{}

func (e *mathExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithBlockParsers(util.Prioritized(&mathBlockParser{}, 800)),
		parser.WithInlineParsers(util.Prioritized(&inlineMathParser{}, 500)),
	)
}

type mathBlockParser struct{}

func (b *mathBlockParser) Trigger() []byte { return []byte{'$'} }

func (b *mathBlockParser) Open(parent ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	line, _ := reader.PeekLine()
	pos := pc.BlockOffset()
	if pos < 0 || !bytes.HasPrefix(line[pos:], []byte(mathFence)) {
		return nil, parser.NoChildren
	}

	rest := bytes.TrimSpace(line[pos+len(mathFence):])
	node := &MathBlock{}
	if len(rest) == 0 {
		return node, parser.NoChildren
	}

	// $$ x $$ on a single line.
	if !bytes.HasSuffix(rest, []byte(mathFence)) || len(rest) < len(mathFence)+1 {
		return nil, parser.NoChildren
	}
	node.Value = bytes.TrimSpace(rest[:len(rest)-len(mathFence)])
	node.closed = true
	return node, parser.NoChildren
}

func (b *mathBlockParser) Continue(node ast.Node, reader text.Reader, pc parser.Context) parser.State {
	mb := node.(*MathBlock)
	if mb.closed {
		return parser.Close
	}

	line, segment := reader.PeekLine()
	if string(bytes.TrimSpace(line)) == mathFence {
		newline := 0
		if len(line) > 0 && line[len(line)-1] == '\n' {
			newline = 1
		}
		reader.Advance(segment.Stop - segment.Start - newline + segment.Padding)
		return parser.Close
	}

	mb.Value = append(mb.Value, line...)
	reader.AdvanceToEOL()
	return parser.Continue | parser.NoChildren
}

func (b *mathBlockParser) Close(node ast.Node, reader text.Reader, pc parser.Context) {
	mb := node.(*MathBlock)
	mb.Value = bytes.TrimSuffix(mb.Value, []byte("\n"))
}

func (b *mathBlockParser) CanInterruptParagraph() bool { return true }

func (b *mathBlockParser) CanAcceptIndentedLine() bool { return false }

type inlineMathParser struct{}

func (s *inlineMathParser) Trigger() []byte { return []byte{'$'} }

// Parse consumes a run of one or two dollars, the content, and a closing run
// of the same length on the same line. Anything else is left as text.
func (s *inlineMathParser) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	line, _ := block.PeekLine()

	opener := 0
	for opener < len(line) && line[opener] == '$' {
		opener++
	}
	if opener == 0 || opener > 2 {
		return nil
	}

	rest := line[opener:]
	end := closingRun(rest, opener)
	if end <= 0 {
		return nil
	}

	value := make([]byte, end)
	copy(value, rest[:end])
	block.Advance(opener + end + opener)
	return &InlineMath{Value: value}
}

// closingRun returns the index in s of the first run of exactly n unescaped
// dollars, or -1.
func closingRun(s []byte, n int) int {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '\n':
			return -1
		case '$':
			run := 0
			for i+run < len(s) && s[i+run] == '$' {
				run++
			}
			if run == n {
				return i
			}
			i += run - 1
		}
	}
	return -1
}
