// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"strings"
)

// ForMissingFrontmatter returns a hint for documents without a metadata block.
func ForMissingFrontmatter() string {
	return format("start the document with a --- (YAML) or +++ (TOML) block")
}

// ForInvalidFrontmatter returns a hint for undecodable metadata blocks.
func ForInvalidFrontmatter() string {
	return format("the block must be a key/value mapping, e.g. title: My Report")
}

// ForUnknownDirective returns a hint listing the supported code block tags.
func ForUnknownDirective() string {
	return format("code blocks must be tagged figure or csv, or left untagged")
}

// ForUnsupportedImage returns a hint listing the supported image types.
func ForUnsupportedImage() string {
	return format("supported images: png, jpg, jpeg (.bib and .csv links are skipped)")
}

// ForUnknownNodeType returns a hint for Markdown constructs with no LaTeX form.
func ForUnknownNodeType() string {
	return format("remove the construct or write it as raw LaTeX inside a figure block")
}

// ForUnrenderableCode returns a hint for inline code that \verb cannot hold.
func ForUnrenderableCode() string {
	return format("inline code using all of | ! + = @ # ~ must move to a figure block")
}

// ForUnresolvedField returns hints for template tokens with no value.
// Suggests adding each missing field to the frontmatter or config defaults.
func ForUnresolvedField(missing []string) string {
	if len(missing) == 0 {
		return format("set the field in the frontmatter or under defaults in the config")
	}
	tokens := make([]string, len(missing))
	for i, name := range missing {
		tokens[i] = name + ":"
	}
	return formatHints([]string{
		"add to the frontmatter: " + strings.Join(tokens, ", "),
		"or set them under defaults in the config",
	})
}

// ForTemplateRequired returns a hint for a missing template argument.
func ForTemplateRequired() string {
	return format("pass the template as the second argument or set template.path in the config")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-md2latex/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	// Find a user config path (contains .config/go-md2latex) to suggest
	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/go-md2latex") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output file creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
