package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRenderStatusLine(t *testing.T) {
	plain := renderStatusLine("Archive", statusOK, "/photos", false)
	if plain != "  Archive:             [OK] /photos" {
		t.Fatalf("unexpected plain line %q", plain)
	}
	colored := renderStatusLine("Archive", statusError, "", true)
	if !strings.HasPrefix(colored, ansiRed) || !strings.HasSuffix(colored, ansiReset) {
		t.Fatalf("expected red line, got %q", colored)
	}
}

func TestShouldColorizeNonFile(t *testing.T) {
	if shouldColorize(&bytes.Buffer{}) {
		t.Fatal("buffers are never terminals")
	}
}

func splitLines(s string) []string {
	return strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
}

// tableCells splits a rendered go-pretty row into trimmed cell values.
func tableCells(line string) []string {
	if !strings.HasPrefix(line, "│") {
		return nil
	}
	parts := strings.Split(strings.Trim(line, "│"), "│")
	cells := make([]string, 0, len(parts))
	for _, p := range parts {
		cells = append(cells, strings.TrimSpace(p))
	}
	return cells
}
