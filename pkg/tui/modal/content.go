package modal

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/x/ansi"
	"github.com/marcus/overlay/internal/geom"
)

// Cell chrome around the text area: one border column and one padding
// column on each side, one border row on top.
const (
	borderCells  = 1
	paddingCells = 1
	chromeX      = 2 * (borderCells + paddingCells)
)

// TextContent is a title plus a markdown body. It implements
// alert.Content in cell units.
type TextContent struct {
	Title string
	Body  string

	// Plain skips markdown rendering.
	Plain bool

	cacheWidth int
	cacheLines []string
}

// NewTextContent returns markdown content.
func NewTextContent(title, body string) *TextContent {
	return &TextContent{Title: title, Body: body}
}

// Size is measured for a surface width: the top border row plus every
// text line.
func (c *TextContent) Size(width float64) geom.Size {
	lines := c.Lines(int(width) - chromeX)
	return geom.Size{W: width, H: float64(borderCells + len(lines))}
}

// Lines renders the title and body for a text area textWidth cells wide.
// Results are cached per width.
func (c *TextContent) Lines(textWidth int) []string {
	if textWidth < 1 {
		textWidth = 1
	}
	if c.cacheLines != nil && c.cacheWidth == textWidth {
		return c.cacheLines
	}

	var lines []string
	if c.Title != "" {
		lines = append(lines, ansi.Truncate(c.Title, textWidth, "…"))
	}
	if body := c.renderBody(textWidth); body != "" {
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		for _, l := range strings.Split(body, "\n") {
			lines = append(lines, ansi.Truncate(l, textWidth, ""))
		}
	}

	c.cacheWidth = textWidth
	c.cacheLines = lines
	return lines
}

func (c *TextContent) renderBody(width int) string {
	if c.Body == "" {
		return ""
	}
	if c.Plain {
		return ansi.Wordwrap(c.Body, width, "")
	}
	return renderMarkdown(c.Body, width)
}

// renderMarkdown renders with the dark style directly; auto-detection
// queries the terminal, which is slow and unreliable inside the alt
// screen.
func renderMarkdown(text string, width int) string {
	// The surface draws its own padding, so the document margin goes.
	style := styles.DarkStyleConfig
	var margin uint
	style.Document.Margin = &margin
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStyles(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return ansi.Wordwrap(text, width, "")
	}

	rendered, err := renderer.Render(text)
	if err != nil {
		return ansi.Wordwrap(text, width, "")
	}

	// Glamour pads with blank lines on both ends.
	return strings.Trim(rendered, "\n\r")
}
