package main

// Notes:
// - printUsage: we check that every flag and environment variable is listed
//   and that template tokens come out literally.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"bytes"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestPrintUsage - Usage content
// ---------------------------------------------------------------------------

func TestPrintUsage(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printUsage(&buf)
	out := buf.String()

	wants := []string{
		"Usage: md2latex",
		"--output",
		"--config",
		"--list-fields",
		"--version",
		"--quiet",
		"--verbose",
		"%body%",
		"%field%",
		"%name%",
		"MD2LATEX_CONFIG",
		"MD2LATEX_TEMPLATE",
		"MD2LATEX_OUTPUT",
	}
	if strings.Contains(out, "%!") {
		t.Errorf("usage has a formatting artifact:\n%s", out)
	}
	for _, want := range wants {
		if !strings.Contains(out, want) {
			t.Errorf("usage missing %q", want)
		}
	}
}
