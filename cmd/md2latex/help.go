package main

import (
	"io"
)

// usage holds literal %field% tokens, so it is written as is rather than
// through a format function.
const usage = `Usage: md2latex [flags] <input.md> [template.tex]

Convert a markdown document with frontmatter to LaTeX using a template.

Arguments:
  input.md        Markdown file starting with a --- or +++ metadata block
  template.tex    LaTeX template (optional if config has template.path)

Flags:
  -o, --output <path>   Write LaTeX to a file instead of stdout
  -c, --config <name>   Config file name or path
      --list-fields     List the template's %field% tokens and exit
      --version         Show version information
  -q, --quiet           Only show errors
  -v, --verbose         Show debug logging
  -h, --help            Show this help

Template tokens:
  %body%                The rendered document body
  %name%                The frontmatter value of name (or config default)

Code blocks (fence language):
  figure                Wrap raw LaTeX in a figure (label, caption)
  csv                   Build a table (label, caption, alignment)
  Options go in a --- YAML block at the top of the code block.

Environment:
  MD2LATEX_CONFIG       Config file name or path
  MD2LATEX_TEMPLATE     Template file path
  MD2LATEX_OUTPUT       Output file path

Exit codes:
  0 success, 1 general error, 2 usage or config, 3 I/O, 4 document error
`

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	_, _ = io.WriteString(w, usage)
}
