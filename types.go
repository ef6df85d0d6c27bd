package md2latex

import (
	"io"
	"regexp"

	"github.com/charmbracelet/log"
)

// Input contains conversion parameters.
type Input struct {
	Markdown string // Markdown content with a leading metadata block (required)
	Template string // LaTeX template with %identifier% tokens (optional)
}

// ConvertResult holds the output of a conversion.
type ConvertResult struct {
	LaTeX    string         // Template with every token replaced
	Body     string         // Rendered document body
	Metadata map[string]any // Decoded frontmatter, as produced by the decoder
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	defaults map[string]string
	logger   *log.Logger
}

// fieldName matches a template identifier.
var fieldName = regexp.MustCompile(`^\w+$`)

// WithDefaults sets fallback values for template fields the frontmatter
// does not define. Frontmatter values always win. Keys must be valid
// identifiers (letters, digits, underscore); NewConverter rejects others.
func WithDefaults(defaults map[string]string) Option {
	return func(c *Converter) {
		if c.cfg.defaults == nil {
			c.cfg.defaults = make(map[string]string, len(defaults))
		}
		for k, v := range defaults {
			c.cfg.defaults[k] = v
		}
	}
}

// WithLogger sets the logger used for stage diagnostics.
// A nil logger is ignored.
func WithLogger(l *log.Logger) Option {
	return func(c *Converter) {
		if l != nil {
			c.cfg.logger = l
		}
	}
}

// discardLogger returns the logger used when none is configured.
func discardLogger() *log.Logger {
	return log.New(io.Discard)
}
