// Package placeholder substitutes %identifier% tokens in a template with the
// rendered document body or with document metadata fields.
package placeholder

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/alnah/go-md2latex/internal/meta"
)

// BodyField is the reserved identifier replaced by the rendered body.
const BodyField = "body"

// ErrUnresolvedField is returned when a token names a field that the
// metadata does not define.
var ErrUnresolvedField = errors.New("unresolved template field")

// tokenPattern matches %identifier% where identifier is [A-Za-z0-9_]+.
var tokenPattern = regexp.MustCompile(`%(\w+)%`)

// Substitute replaces every token in tmpl. "body" yields body; any other
// identifier is looked up in fields. The first failing token aborts the
// substitution and nothing is returned.
func Substitute(tmpl, body string, fields meta.Map) (string, error) {
	var firstErr error
	out := tokenPattern.ReplaceAllStringFunc(tmpl, func(token string) string {
		if firstErr != nil {
			return ""
		}
		id := token[1 : len(token)-1]
		if id == BodyField {
			return body
		}
		value, ok, err := fields.Text(id)
		switch {
		case err != nil:
			firstErr = fmt.Errorf("field %q: %w", id, err)
		case !ok:
			firstErr = fmt.Errorf("%w: %%%s%%", ErrUnresolvedField, id)
		}
		return value
	})
	if firstErr != nil {
		return "", firstErr
	}
	return out, nil
}

// Fields lists the distinct identifiers referenced by tmpl, in order of first
// appearance. The body token is included when present.
func Fields(tmpl string) []string {
	matches := tokenPattern.FindAllStringSubmatch(tmpl, -1)
	seen := make(map[string]bool, len(matches))
	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		if !seen[m[1]] {
			seen[m[1]] = true
			ids = append(ids, m[1])
		}
	}
	return ids
}

// Missing reports the identifiers of tmpl that fields cannot resolve,
// ignoring the body token.
func Missing(tmpl string, fields meta.Map) []string {
	var missing []string
	for _, id := range Fields(tmpl) {
		if id == BodyField {
			continue
		}
		if _, ok, _ := fields.Text(id); !ok {
			missing = append(missing, id)
		}
	}
	return missing
}

// WithDefaults returns a copy of fields where keys absent or null in fields
// take their value from defaults.
func WithDefaults(fields meta.Map, defaults map[string]string) meta.Map {
	merged := make(meta.Map, len(fields)+len(defaults))
	for k, v := range defaults {
		merged[k] = v
	}
	for k, v := range fields {
		if v == nil {
			if _, hasDefault := defaults[k]; hasDefault {
				continue
			}
		}
		merged[k] = v
	}
	return merged
}

// Describe formats identifiers as template tokens, e.g. "%title%, %date%".
func Describe(ids []string) string {
	tokens := make([]string, len(ids))
	for i, id := range ids {
		tokens[i] = "%" + id + "%"
	}
	return strings.Join(tokens, ", ")
}
