package modal

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestTextContentPlain(t *testing.T) {
	c := &TextContent{Title: "Share", Body: "one two three four five six", Plain: true}

	lines := c.Lines(10)
	if lines[0] != "Share" || lines[1] != "" {
		t.Fatalf("title block = %q", lines[:2])
	}
	for _, l := range lines {
		if w := ansi.StringWidth(l); w > 10 {
			t.Errorf("line %q is %d cells, wider than 10", l, w)
		}
	}

	// Size is measured at the surface width, which adds the chrome.
	if got := c.Size(10 + chromeX); got.H != float64(1+len(lines)) || got.W != 10+chromeX {
		t.Errorf("Size = %v, want %gx%d", got, float64(10+chromeX), 1+len(lines))
	}
}

func TestTextContentCachesPerWidth(t *testing.T) {
	c := &TextContent{Body: "cached", Plain: true}
	a := c.Lines(20)
	b := c.Lines(20)
	if &a[0] != &b[0] {
		t.Error("same width should reuse the cached lines")
	}
	if got := c.Lines(5); &got[0] == &a[0] {
		t.Error("a new width must re-render")
	}
}

func TestTextContentNoTitle(t *testing.T) {
	c := &TextContent{Body: "only body", Plain: true}
	if got := c.Lines(40); len(got) != 1 || got[0] != "only body" {
		t.Errorf("Lines = %q, want [only body]", got)
	}
	if got := (&TextContent{}).Lines(40); len(got) != 0 {
		t.Errorf("empty content Lines = %q, want none", got)
	}
}

func TestTextContentMarkdown(t *testing.T) {
	c := NewTextContent("Delete", "This **cannot** be undone.")
	lines := c.Lines(40)
	if lines[0] != "Delete" {
		t.Errorf("title = %q", lines[0])
	}
	text := ansi.Strip(strings.Join(lines, "\n"))
	if !strings.Contains(text, "cannot") || strings.Contains(text, "**") {
		t.Errorf("markdown not rendered: %q", text)
	}
}

func TestTextContentMarkdownHasNoMargin(t *testing.T) {
	c := NewTextContent("", "Tap **Delete** to remove the file for good.")
	lines := c.Lines(20)
	if len(lines) < 2 {
		t.Fatalf("expected the body to wrap at 20 cells, got %q", lines)
	}
	if got := ansi.Strip(lines[0]); !strings.HasPrefix(got, "Tap") {
		t.Errorf("first line = %q, want it flush left", got)
	}
	for _, l := range lines {
		if w := ansi.StringWidth(l); w > 20 {
			t.Errorf("line %q is %d cells, wider than 20", ansi.Strip(l), w)
		}
	}
}
