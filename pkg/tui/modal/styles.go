package modal

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/marcus/overlay/pkg/overlay/action"
)

// Palette shared by the surface, buttons and backdrop.
var (
	Primary      = lipgloss.Color("212")
	Error        = lipgloss.Color("196")
	Warning      = lipgloss.Color("214")
	Info         = lipgloss.Color("45")
	Muted        = lipgloss.Color("241")
	BgSecondary  = lipgloss.Color("235")
	BorderNormal = lipgloss.Color("240")
	BorderFaint  = lipgloss.Color("237")
)

// Surface chrome
var (
	SurfaceBody = lipgloss.NewStyle().
			Background(BgSecondary).
			Foreground(lipgloss.Color("252"))

	SurfaceBorder = lipgloss.NewStyle().
			Background(BgSecondary).
			Foreground(BorderNormal)

	SurfaceBorderFaint = lipgloss.NewStyle().
				Foreground(BorderFaint)

	Title = lipgloss.NewStyle().
		Background(BgSecondary).
		Foreground(lipgloss.Color("255")).
		Bold(true)

	MutedText = lipgloss.NewStyle().
			Background(BgSecondary).
			Foreground(Muted)
)

// Button styles. Each category has a resting, focused and hover look;
// disabled overrides all three.
var (
	Button = lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")).
		Background(lipgloss.Color("238"))

	ButtonFocused = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(Primary).
			Bold(true)

	ButtonHover = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("245"))

	ButtonDanger = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")).
			Background(lipgloss.Color("238"))

	ButtonDangerFocused = lipgloss.NewStyle().
				Foreground(lipgloss.Color("255")).
				Background(Error).
				Bold(true)

	ButtonDangerHover = lipgloss.NewStyle().
				Foreground(lipgloss.Color("255")).
				Background(lipgloss.Color("203"))

	ButtonNeutral = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")).
			Background(BgSecondary)

	ButtonReversed = lipgloss.NewStyle().
			Foreground(Primary).
			Background(lipgloss.Color("255"))

	ButtonDisabled = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")).
			Background(lipgloss.Color("236")).
			Strikethrough(true)
)

// ButtonState is the interaction state of one action row.
type ButtonState int

const (
	StateNormal ButtonState = iota
	StateFocused
	StateHover
)

// ButtonStyle picks the style for an action row.
func ButtonStyle(c action.Category, enabled bool, state ButtonState) lipgloss.Style {
	if !enabled {
		return ButtonDisabled
	}
	switch c {
	case action.Negative:
		switch state {
		case StateFocused:
			return ButtonDangerFocused
		case StateHover:
			return ButtonDangerHover
		}
		return ButtonDanger
	case action.Neutral:
		switch state {
		case StateFocused:
			return ButtonFocused
		case StateHover:
			return ButtonHover
		}
		return ButtonNeutral
	case action.PositiveReversed:
		switch state {
		case StateFocused:
			return ButtonFocused
		case StateHover:
			return ButtonHover
		}
		return ButtonReversed
	default:
		switch state {
		case StateFocused:
			return ButtonFocused
		case StateHover:
			return ButtonHover
		}
		return Button
	}
}

// backdropColor maps backdrop alpha onto the 256-color gray ramp: the
// darker the backdrop, the dimmer the text behind it.
func backdropColor(alpha, maxAlpha float64) lipgloss.Color {
	if maxAlpha <= 0 {
		maxAlpha = 1
	}
	t := min(max(alpha/maxAlpha, 0), 1)
	// 252 is near white, 238 is dark gray.
	level := 252 - int(t*14+0.5)
	return lipgloss.Color(strconv.Itoa(level))
}
