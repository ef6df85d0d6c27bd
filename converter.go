package md2latex

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/alnah/go-md2latex/internal/doctree"
	"github.com/alnah/go-md2latex/internal/frontmatter"
	"github.com/alnah/go-md2latex/internal/latex"
	"github.com/alnah/go-md2latex/internal/pipeline"
	"github.com/alnah/go-md2latex/internal/placeholder"
)

// Compile-time interface implementation checks.
// These ensure implementations satisfy their interfaces at compile time,
// catching signature mismatches before runtime.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.CommonMarkPreprocessor)(nil)
	_ pipeline.Parser               = (*pipeline.GoldmarkParser)(nil)
)

// Converter orchestrates the markdown-to-LaTeX conversion pipeline.
// Create with NewConverter() and call Convert() for each document.
// A Converter holds no per-call state and is safe for concurrent use.
type Converter struct {
	cfg          converterConfig
	preprocessor pipeline.MarkdownPreprocessor
	parser       pipeline.Parser
}

// NewConverter creates a Converter with default configuration.
// Use options to customize behavior (e.g., WithDefaults, WithLogger).
// Returns ErrInvalidFieldName if a default field is not a valid identifier.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg:          converterConfig{logger: discardLogger()},
		preprocessor: &pipeline.CommonMarkPreprocessor{},
		parser:       pipeline.NewGoldmarkParser(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := validateDefaults(c.cfg.defaults); err != nil {
		return nil, err
	}

	return c, nil
}

// Convert runs the full pipeline and returns the filled template, the rendered
// body and the decoded metadata. The context is checked between stages.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if input.Markdown == "" {
		return nil, ErrEmptyMarkdown
	}

	body, fields, err := c.bodyAndMetadata(ctx, input.Markdown)
	if err != nil {
		return nil, err
	}

	rendered, err := latex.RenderNodes(body)
	if err != nil {
		return nil, fmt.Errorf("rendering body: %w", err)
	}
	c.cfg.logger.Debug("rendered body", "bytes", len(rendered))
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	merged := placeholder.WithDefaults(fields, c.cfg.defaults)
	out, err := placeholder.Substitute(input.Template, rendered, merged)
	if err != nil {
		return nil, fmt.Errorf("applying template: %w", err)
	}
	c.cfg.logger.Debug("applied template", "fields", placeholder.Describe(placeholder.Fields(input.Template)))

	return &ConvertResult{
		LaTeX:    out,
		Body:     rendered,
		Metadata: map[string]any(fields),
	}, nil
}

// Render converts only the document body. A leading metadata block is
// dropped when present but not required.
func (c *Converter) Render(ctx context.Context, markdown string) (rendered string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if markdown == "" {
		return "", ErrEmptyMarkdown
	}

	root, err := c.parse(ctx, markdown)
	if err != nil {
		return "", err
	}

	body := root.Children
	if len(body) > 0 {
		if _, ok := body[0].(*doctree.Frontmatter); ok {
			body = body[1:]
		}
	}

	rendered, err = latex.RenderNodes(body)
	if err != nil {
		return "", fmt.Errorf("rendering body: %w", err)
	}
	return rendered, nil
}

// MissingFields reports the template fields, in order of first appearance,
// that neither the document's frontmatter nor the configured defaults define.
// The body token is never reported.
func (c *Converter) MissingFields(ctx context.Context, input Input) ([]string, error) {
	if input.Markdown == "" {
		return nil, ErrEmptyMarkdown
	}
	_, fields, err := c.bodyAndMetadata(ctx, input.Markdown)
	if err != nil {
		return nil, err
	}
	return placeholder.Missing(input.Template, placeholder.WithDefaults(fields, c.cfg.defaults)), nil
}

// TemplateFields lists the distinct %identifier% tokens of template in order
// of first appearance, including "body" when present.
func TemplateFields(template string) []string {
	return placeholder.Fields(template)
}

// bodyAndMetadata parses markdown and splits the tree into its body and
// decoded frontmatter.
func (c *Converter) bodyAndMetadata(ctx context.Context, markdown string) ([]doctree.Node, map[string]any, error) {
	root, err := c.parse(ctx, markdown)
	if err != nil {
		return nil, nil, err
	}

	body, fields, err := frontmatter.Extract(root)
	if err != nil {
		return nil, nil, fmt.Errorf("extracting frontmatter: %w", err)
	}
	c.cfg.logger.Debug("extracted frontmatter", "keys", strings.Join(fields.Keys(), ","))
	if ctx.Err() != nil {
		return nil, nil, ctx.Err()
	}
	return body, fields, nil
}

func (c *Converter) parse(ctx context.Context, markdown string) (*doctree.Root, error) {
	content := c.preprocessor.PreprocessMarkdown(ctx, markdown)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	root, err := c.parser.Parse(ctx, content)
	if err != nil {
		return nil, fmt.Errorf("parsing markdown: %w", err)
	}
	c.cfg.logger.Debug("parsed markdown", "nodes", countNodes(root))
	return root, nil
}

// countNodes returns the number of nodes in the tree below root.
func countNodes(root *doctree.Root) int {
	n := 0
	doctree.Walk(root, func(doctree.Node) bool {
		n++
		return true
	})
	return n - 1
}

// validateDefaults checks default field names in a stable order so the
// reported name does not depend on map iteration.
func validateDefaults(defaults map[string]string) error {
	names := make([]string, 0, len(defaults))
	for k := range defaults {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, name := range names {
		if !fieldName.MatchString(name) {
			return fmt.Errorf("%w: %q", ErrInvalidFieldName, name)
		}
	}
	return nil
}
