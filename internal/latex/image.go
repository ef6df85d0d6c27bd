package latex

import (
	"fmt"
	"strings"
)

// ResolveImage renders an image reference based on its file extension.
// Bibliography and data attachments (.bib, .csv) are consumed elsewhere and
// render nothing; raster images become a centered figure.
func ResolveImage(url, alt string) (string, error) {
	switch ext := extension(url); ext {
	case "bib", "csv":
		return "", nil
	case "png", "jpg", "jpeg":
		var sb strings.Builder
		sb.WriteString("\\begin{figure}\n\\centering\n")
		fmt.Fprintf(&sb, "\\includegraphics[width=0.25\\linewidth]{%s}\n", url)
		if alt != "" {
			fmt.Fprintf(&sb, "\\caption{%s}\n", alt)
		}
		sb.WriteString("\\end{figure}\n")
		return sb.String(), nil
	default:
		return "", fmt.Errorf("%w: %q (%s)", ErrUnsupportedImage, ext, url)
	}
}

// extension returns the text after the last dot, or the whole url when it
// has none.
func extension(url string) string {
	return url[strings.LastIndex(url, ".")+1:]
}
