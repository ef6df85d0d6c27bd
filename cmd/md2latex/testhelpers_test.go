package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// fixedNow is the clock used by test environments.
var fixedNow = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

// testEnv is an Environment backed by buffers and a fake process environment.
type testEnv struct {
	*Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

// newTestEnv builds an isolated environment. vars holds the process
// environment seen by the command.
func newTestEnv(vars map[string]string) *testEnv {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	return &testEnv{
		Environment: &Environment{
			Now:      func() time.Time { return fixedNow },
			Stdout:   stdout,
			Stderr:   stderr,
			ReadFile: os.ReadFile,
			Getenv:   func(key string) string { return vars[key] },
			Environ: func() []string {
				out := make([]string, 0, len(vars))
				for k, v := range vars {
					out = append(out, k+"="+v)
				}
				return out
			},
		},
		stdout: stdout,
		stderr: stderr,
	}
}

// writeTestFile writes content under dir and returns the full path.
func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

const (
	testDocument = "---\ntitle: Report\nauthor: Ada\n---\n# Intro\n\nHello `x`.\n"
	testTemplate = "\\title{%title%}\n\\author{%author%}\n%body%"
)
