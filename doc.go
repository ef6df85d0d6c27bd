// Package md2latex converts Markdown documents with a metadata block into
// LaTeX by filling a user template.
//
// # Quick Start
//
// Create a converter and convert a document against a template:
//
//	conv, err := md2latex.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := conv.Convert(ctx, md2latex.Input{
//	    Markdown: "---\ntitle: Report\n---\n# Intro\n",
//	    Template: "\\title{%title%}\n%body%",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("report.tex", []byte(result.LaTeX), 0644)
//
// The result carries the final document (result.LaTeX), the rendered body
// alone (result.Body) and the decoded metadata (result.Metadata).
//
// # Conversion Pipeline
//
// The conversion process follows these stages:
//
//  1. Markdown preprocessing (BOM removal, line ending normalization)
//  2. Markdown to document tree via Goldmark (math extension, strict node set)
//  3. Frontmatter extraction (YAML or TOML, must open the document)
//  4. Body rendering to LaTeX (figure and csv directives, images)
//  5. Template substitution of %identifier% tokens, with %body% for the body
//
// Any failure aborts the whole conversion; no partial output is produced.
//
// # Templates
//
// A template is arbitrary text. Every %identifier% (letters, digits and
// underscore) is replaced by the frontmatter value of the same name, and
// %body% by the rendered body. A token with no value is an error:
//
//	conv, err := md2latex.NewConverter(
//	    md2latex.WithDefaults(map[string]string{"author": "Anonymous"}),
//	)
//
// Defaults only apply when the frontmatter lacks the key.
//
// # Error Handling
//
// Errors are wrapped with the failing stage and can be matched with
// errors.Is against the sentinels in this package:
//
//	if errors.Is(err, md2latex.ErrMissingFrontmatter) {
//	    // document does not start with a metadata block
//	}
//
// # Supported Markdown
//
// Headings, paragraphs, links and autolinks, ordered and bullet lists,
// inline code, inline and display math ($...$, $$...$$), fenced code
// blocks, raw HTML (dropped) and images. Emphasis, block quotes, tables,
// thematic breaks and the other GFM extensions are rejected with
// ErrUnknownNodeType. Text is emitted as-is, without LaTeX escaping.
package md2latex
