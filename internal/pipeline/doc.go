// Package pipeline implements the Markdown-to-tree stage of the conversion.
//
// This package handles everything that happens before rendering:
//   - Markdown preprocessing (BOM removal, line ending normalization)
//   - Frontmatter detection at the top of the document
//   - Markdown parsing via Goldmark, with a math extension for $...$ and $$
//   - Conversion of the Goldmark AST into the closed doctree variants
//   - Directive metadata extraction from fenced code blocks
//
// LaTeX generation is handled separately by the latex package. This
// separation keeps the pipeline focused on document structure, while the
// renderer owns the output format.
package pipeline
