package latex

import (
	"fmt"
	"strings"

	"github.com/alnah/go-md2latex/internal/meta"
)

// Code block languages that act as directives.
const (
	DirectiveFigure = "figure"
	DirectiveCSV    = "csv"
	DirectivePlain  = ""
)

// Directive is the decoded option set of a figure or table block.
// Empty strings mean the option is absent.
type Directive struct {
	Label     string
	Caption   string
	Alignment string
}

// ParseDirective reads the recognized keys from a code block's metadata.
// Unknown keys are ignored.
func ParseDirective(m meta.Map) (Directive, error) {
	var d Directive
	var err error
	if d.Label, _, err = m.Lookup("label"); err != nil {
		return Directive{}, err
	}
	if d.Caption, _, err = m.Lookup("caption"); err != nil {
		return Directive{}, err
	}
	if d.Alignment, _, err = m.Lookup("alignment"); err != nil {
		return Directive{}, err
	}
	return d, nil
}

// ResolveCode renders a fenced code block according to its language tag.
// "figure" wraps the body in a figure environment, "csv" turns it into a
// tabular, and the empty tag renders nothing. Any other tag is an error.
func ResolveCode(lang, value string, m meta.Map) (string, error) {
	switch lang {
	case DirectiveFigure:
		d, err := ParseDirective(m)
		if err != nil {
			return "", fmt.Errorf("figure directive: %w", err)
		}
		return renderFigure(value, d), nil
	case DirectiveCSV:
		d, err := ParseDirective(m)
		if err != nil {
			return "", fmt.Errorf("csv directive: %w", err)
		}
		return renderTable(value, d), nil
	case DirectivePlain:
		return "", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDirective, lang)
	}
}

func renderFigure(value string, d Directive) string {
	var sb strings.Builder
	sb.WriteString("\\begin{figure}\n")
	sb.WriteString(value + "\n")
	if d.Label != "" {
		fmt.Fprintf(&sb, "\\label{fig:%s}\n", d.Label)
	}
	if d.Caption != "" {
		fmt.Fprintf(&sb, "\\caption{%s}\n", d.Caption)
	}
	sb.WriteString("\\end{figure}\n")
	return sb.String()
}

// renderTable converts comma-separated rows to a tabular. Ampersands are
// escaped before commas become column separators; the second row is preceded
// by \hline to close the header.
func renderTable(value string, d Directive) string {
	rows := strings.Split(value, "\n")
	for i, row := range rows {
		row = strings.ReplaceAll(row, "&", `\&`)
		row = strings.ReplaceAll(row, ",", "&")
		if i == 1 {
			row = "\\hline\n" + row
		}
		rows[i] = row
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "\\begin{table}\n\\centering\\begin{tabular}{%s}", d.Alignment)
	sb.WriteString(strings.Join(rows, `\\`))
	sb.WriteString(`\end{tabular}`)
	if d.Label != "" {
		fmt.Fprintf(&sb, "\\label{tab:%s}\n", d.Label)
	}
	if d.Caption != "" {
		fmt.Fprintf(&sb, "\\caption{%s}\n", d.Caption)
	}
	sb.WriteString(`\end{table}`)
	return sb.String()
}
