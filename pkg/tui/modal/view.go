package modal

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/marcus/overlay/internal/geom"
	"github.com/marcus/overlay/pkg/overlay/animation"
	"github.com/marcus/overlay/pkg/overlay/dimming"
	"github.com/marcus/overlay/pkg/overlay/transition"
)

// View composites the dimmed background and the surface. background is
// the full-screen view of whatever sits underneath the modal.
func (h *Host) View(background string) string {
	if h.coord == nil {
		return background
	}
	container := h.coord.Container()
	width, height := int(container.Size.W), int(container.Size.H)
	lines := fitLines(background, width, height)

	if alpha := h.coord.BackdropAlpha(); alpha > 0 {
		maxAlpha := h.dimCfg.MaxAlpha
		if maxAlpha <= 0 {
			maxAlpha = dimming.DefaultMaxAlpha
		}
		dim := lipgloss.NewStyle().Foreground(backdropColor(alpha, maxAlpha))
		for i, l := range lines {
			lines[i] = dim.Render(ansi.Strip(l))
		}
	}

	switch h.coord.State() {
	case transition.Presenting, transition.Presented, transition.Dismissing:
		frame := h.coord.Frame()
		visual := geom.Snap(frame.Visual(), 1)
		x, y, _, _ := cellRect(visual)
		overlayLines(lines, h.renderSurface(frame, visual), x, y, width)
	}
	return strings.Join(lines, "\n")
}

// renderSurface draws the surface at its visual size. While the frame is
// scaled only the outline is drawn.
func (h *Host) renderSurface(frame animation.Frame, visual geom.Rect) []string {
	_, _, w, ht := cellRect(visual)
	if w < 2 || ht < 2 {
		return nil
	}

	borderStyle := SurfaceBorder
	if frame.Opacity < 0.5 {
		borderStyle = SurfaceBorderFaint
	}
	b := surfaceBorder(frame.Corners)
	side := borderStyle.Render(b.Left)
	top := borderStyle.Render(b.TopLeft + strings.Repeat(b.Top, w-2) + b.TopRight)
	bottom := borderStyle.Render(b.BottomLeft + strings.Repeat(b.Bottom, w-2) + b.BottomRight)
	blank := side + SurfaceBody.Render(strings.Repeat(" ", w-2)) + side

	if visual.Size != frame.Rect.Size {
		rows := make([]string, 0, ht)
		rows = append(rows, top)
		for range ht - 2 {
			rows = append(rows, blank)
		}
		return append(rows, bottom)
	}

	textWidth := w - chromeX
	var content []string
	if h.content != nil {
		for i, line := range h.content.Lines(textWidth) {
			line = padRight(line, textWidth)
			if i == 0 && h.content.Title != "" {
				line = Title.Render(line)
			}
			content = append(content, side+SurfaceBody.Render(" ")+line+SurfaceBody.Render(" ")+side)
		}
	}

	res := h.surface.Layout(float64(w))
	block := make([]string, max(int(res.Height), 1))
	for i := range block {
		block[i] = blank
	}
	for i, fr := range res.Frames {
		if row := int(fr.MinY()); row >= 0 && row < len(block) {
			block[row] = h.renderAction(i, fr, w, side)
		}
	}
	block[len(block)-1] = bottom

	rows := make([]string, 0, ht)
	rows = append(rows, top)
	rows = append(rows, content...)
	for fill := ht - 1 - len(content) - len(block); fill > 0; fill-- {
		rows = append(rows, blank)
	}
	rows = append(rows, block...)
	if len(rows) > ht {
		rows = append(rows[:ht-1], rows[len(rows)-1])
	}
	return rows
}

func (h *Host) renderAction(i int, fr geom.Rect, width int, side string) string {
	a := h.surface.Action(i)
	x, _, w, _ := cellRect(fr)

	state := StateNormal
	switch {
	case i == h.focus:
		state = StateFocused
	case i == h.hover:
		state = StateHover
	}

	label := a.Title()
	if a.HasIcon() {
		label = string(a.Icon()) + " " + label
	}
	button := ButtonStyle(a.Category(), a.Enabled(), state).
		Width(w).
		Align(lipgloss.Center).
		Render(ansi.Truncate(label, w, "…"))

	left := SurfaceBody.Render(strings.Repeat(" ", max(x-1, 0)))
	right := SurfaceBody.Render(strings.Repeat(" ", max(width-1-x-w, 0)))
	return side + left + button + right + side
}

// surfaceBorder rounds the masked corners when the mask has a radius.
func surfaceBorder(m animation.CornerMask) lipgloss.Border {
	b := lipgloss.NormalBorder()
	if m.Radius <= 0 {
		return b
	}
	r := lipgloss.RoundedBorder()
	if m.TopLeft {
		b.TopLeft = r.TopLeft
	}
	if m.TopRight {
		b.TopRight = r.TopRight
	}
	if m.BottomLeft {
		b.BottomLeft = r.BottomLeft
	}
	if m.BottomRight {
		b.BottomRight = r.BottomRight
	}
	return b
}

// fitLines splits s into exactly height lines, each exactly width cells.
func fitLines(s string, width, height int) []string {
	src := strings.Split(s, "\n")
	lines := make([]string, height)
	for i := range lines {
		var l string
		if i < len(src) {
			l = src[i]
		}
		if ansi.StringWidth(l) > width {
			l = ansi.Truncate(l, width, "")
		}
		lines[i] = padRight(l, width)
	}
	return lines
}

// overlayLines draws box over lines with its top-left cell at (x, y),
// clipping whatever falls outside the screen.
func overlayLines(lines, box []string, x, y, width int) {
	for i, bl := range box {
		row := y + i
		if row < 0 || row >= len(lines) {
			continue
		}
		bx, bw := x, ansi.StringWidth(bl)
		if bx < 0 {
			bl = ansi.TruncateLeft(bl, -bx, "")
			bw += bx
			bx = 0
		}
		if bx+bw > width {
			bl = ansi.Truncate(bl, width-bx, "")
			bw = width - bx
		}
		if bw <= 0 {
			continue
		}
		bg := lines[row]
		lines[row] = ansi.Truncate(bg, bx, "") + bl + ansi.TruncateLeft(bg, bx+bw, "")
	}
}

func padRight(s string, width int) string {
	if n := ansi.StringWidth(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
