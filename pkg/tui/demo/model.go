// Package demo is a small file browser that exercises every way a modal
// can be presented and dismissed.
package demo

import (
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/marcus/overlay/internal/config"
	"github.com/marcus/overlay/pkg/overlay/action"
	"github.com/marcus/overlay/pkg/overlay/animation"
	"github.com/marcus/overlay/pkg/overlay/scheduler"
	"github.com/marcus/overlay/pkg/overlay/transition"
	"github.com/marcus/overlay/pkg/tui/modal"
)

// Options configures the demo.
type Options struct {
	Config          config.Config
	Strategy        animation.Kind
	BackdropDismiss bool
	Welcome         bool
	Logger          *slog.Logger

	// Clock, FrameInterval and Copy are replaced in tests.
	Clock         scheduler.Clock
	FrameInterval time.Duration
	Copy          func(string) error
}

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Open   key.Binding
	Delete key.Binding
	Share  key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Open:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "actions")),
	Delete: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Share:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "share")),
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// Model is the demo's Bubble Tea model.
type Model struct {
	opts   Options
	log    *slog.Logger
	width  int
	height int

	files  []string
	locked map[string]bool
	cursor int
	status string

	host    *modal.Host
	pending bool // welcome waits for the first window size
}

// New returns the demo with a fixed set of files.
func New(opts Options) *Model {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.Copy == nil {
		opts.Copy = copyToClipboard
	}
	return &Model{
		opts:    opts,
		log:     opts.Logger,
		files:   []string{"README.md", "go.mod", "main.go", "notes/todo.txt", "release.tar.gz"},
		locked:  map[string]bool{"go.mod": true},
		status:  "enter: actions  d: delete  s: share  q: quit",
		pending: opts.Welcome,
	}
}

func (m *Model) Init() tea.Cmd { return nil }

// Files returns the remaining files.
func (m *Model) Files() []string { return m.files }

// Status is the bottom status line.
func (m *Model) Status() string { return m.status }

// Host is the open modal, nil when none is open.
func (m *Model) Host() *modal.Host { return m.host }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if m.pending && m.host == nil {
			m.pending = false
			return m, m.openWelcome()
		}
		if m.host != nil {
			return m, m.host.Update(msg)
		}
		return m, nil

	case modal.PresentedMsg:
		m.log.Debug("modal presented")
		return m, nil

	case modal.OutcomeMsg:
		m.log.Info("modal outcome", "reason", msg.Reason.String(), "outcome", msg.Outcome.String())
		if msg.Outcome != transition.Dismissed {
			m.status = fmt.Sprintf("%s: %s", msg.Reason, msg.Outcome)
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	if m.host != nil {
		cmd := m.host.Update(msg)
		if m.host.Done() {
			m.host = nil
		}
		return m, cmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Quit):
		return tea.Quit
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.files)-1 {
			m.cursor++
		}
	case key.Matches(msg, keys.Open):
		return m.openActions()
	case key.Matches(msg, keys.Delete):
		return m.openDelete()
	case key.Matches(msg, keys.Share):
		return m.openShare()
	}
	return nil
}

func (m *Model) selected() (string, bool) {
	if m.cursor < 0 || m.cursor >= len(m.files) {
		return "", false
	}
	return m.files[m.cursor], true
}

func (m *Model) remove(name string) {
	if i := slices.Index(m.files, name); i >= 0 {
		m.files = slices.Delete(m.files, i, i+1)
	}
	m.cursor = min(m.cursor, max(len(m.files)-1, 0))
	m.status = "deleted " + name
}

// present opens a modal over the current view.
func (m *Model) present(kind animation.Kind, content *modal.TextContent, actions []*action.Action) tea.Cmd {
	opts := []modal.HostOption{
		modal.WithLogger(m.log),
		modal.WithDimming(m.opts.Config.DimmingConfig()),
		modal.WithMetrics(m.opts.Config.Metrics()),
		modal.WithBackdropDismiss(m.opts.BackdropDismiss),
		modal.WithSwipeThreshold(int(m.opts.Config.SwipeThreshold)),
	}
	if m.opts.Clock != nil {
		opts = append(opts, modal.WithClock(m.opts.Clock))
	}
	if m.opts.FrameInterval > 0 {
		opts = append(opts, modal.WithFrameInterval(m.opts.FrameInterval))
	}

	h, err := modal.NewHost(m.opts.Config.Strategy(kind), content, actions, opts...)
	if err != nil {
		m.status = "error: " + err.Error()
		return nil
	}
	cmd, err := h.Present(m.width, m.height)
	if err != nil {
		m.status = "error: " + err.Error()
		return nil
	}
	m.host = h
	return cmd
}

// openWelcome is the getting-started dialog shown on launch.
func (m *Model) openWelcome() tea.Cmd {
	content := modal.NewTextContent("Welcome to overlay",
		"Move with **↑/↓**. Press **enter** for file actions, **d** to delete, "+
			"**s** to share.\n\nInside a modal use **tab**, **enter** and **esc**, "+
			"click outside to dismiss, or drag a sheet down.")
	return m.present(animation.Dialog, content, []*action.Action{
		action.New("Got it", action.Positive),
	})
}

// openActions shows every action category with the configured strategy.
func (m *Model) openActions() tea.Cmd {
	name, ok := m.selected()
	if !ok {
		return nil
	}
	content := modal.NewTextContent(name, "Choose an action.")
	return m.present(m.opts.Strategy, content, []*action.Action{
		action.New("Cancel", action.Neutral),
		action.New("Delete", action.Negative, action.WithCompletion(func() { m.remove(name) })),
		action.New("Rename", action.Positive, action.Disabled()),
		action.New("Open", action.Positive, action.WithCompletion(func() { m.status = "opened " + name })),
		action.New("Details", action.PositiveReversed, action.WithCompletion(func() { m.status = name + ": 1 file" })),
	})
}

// openDelete is a confirmation dialog. Locked files veto the delete in
// the guard, which keeps the dialog open.
func (m *Model) openDelete() tea.Cmd {
	name, ok := m.selected()
	if !ok {
		return nil
	}
	content := modal.NewTextContent("Delete "+name+"?", "This **cannot** be undone.")
	return m.present(animation.Dialog, content, []*action.Action{
		action.New("Cancel", action.Neutral),
		action.New("Delete", action.Negative,
			action.WithGuard(func() bool { return !m.locked[name] }),
			action.WithCompletion(func() { m.remove(name) }),
		),
	})
}

// openShare is an action sheet.
func (m *Model) openShare() tea.Cmd {
	name, ok := m.selected()
	if !ok {
		return nil
	}
	content := modal.NewTextContent("Share "+name, "")
	return m.present(animation.Sheet, content, []*action.Action{
		action.New("Copy name", action.Positive, action.WithIcon("⧉"), action.WithCompletion(func() {
			if err := m.opts.Copy(name); err != nil {
				m.status = "copy failed: " + err.Error()
				return
			}
			m.status = "copied " + name
		})),
		action.New("Cancel", action.Neutral),
	})
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(modal.Primary)
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(modal.Primary)
	lockedStyle = lipgloss.NewStyle().Foreground(modal.Muted)
	statusStyle = lipgloss.NewStyle().Foreground(modal.Muted)
)

// background renders the file list filling the window.
func (m *Model) background() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Files"))
	sb.WriteString("\n\n")
	for i, f := range m.files {
		line := "  " + f
		if m.locked[f] {
			line += lockedStyle.Render("  (locked)")
		}
		if i == m.cursor {
			line = cursorStyle.Render("> " + f)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	lines := strings.Split(strings.TrimSuffix(sb.String(), "\n"), "\n")
	for len(lines) < m.height-1 {
		lines = append(lines, "")
	}
	if m.height > 0 {
		lines = append(lines[:m.height-1], statusStyle.Render(m.status))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) View() string {
	bg := m.background()
	if m.host != nil {
		return m.host.View(bg)
	}
	return bg
}
