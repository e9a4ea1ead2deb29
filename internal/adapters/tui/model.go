// Package tui draws live scan progress with Bubble Tea.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/vito/progrock"
	"go.trai.ch/brokenpkg/internal/ui/style"
)

const (
	defaultBarWidth = 30
	maxBarWidth     = 60
	// statusReserve is the room kept next to the bar for the counters.
	statusReserve = 48
)

type styles struct {
	spinner lipgloss.Style
	counts  lipgloss.Style
	skipped lipgloss.Style
}

// Model is the Bubble Tea model showing package progress on a single line.
type Model struct {
	bar       progress.Model
	spinner   spinner.Model
	styles    styles
	total     int
	completed map[string]bool
	failed    int
	files     int64
}

// NewModel creates a Model with an empty bar.
func NewModel() *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(style.Iris)

	bar := progress.New(
		progress.WithSolidFill(string(style.Iris)),
		progress.WithFillCharacters(style.BarFilled, style.BarEmpty),
		progress.WithoutPercentage(),
		progress.WithWidth(defaultBarWidth),
	)

	return &Model{
		bar:       bar,
		spinner:   s,
		completed: make(map[string]bool),
		styles: styles{
			spinner: lipgloss.NewStyle().Foreground(style.Iris),
			counts:  lipgloss.NewStyle().Foreground(style.Slate),
			skipped: lipgloss.NewStyle().Foreground(style.Yellow),
		},
	}
}

// Init starts the spinner.
func (m *Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.bar.Width = max(10, min(maxBarWidth, msg.Width-statusReserve))
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case MsgStart:
		m.total = msg.Packages
	case MsgFiles:
		m.files = max(m.files, msg.Count)
	case MsgTapeUpdate:
		m.processVertexUpdates(msg.Update)
	}
	return m, nil
}

// processVertexUpdates counts package vertices the first time they complete.
func (m *Model) processVertexUpdates(update *progrock.StatusUpdate) {
	for _, v := range update.GetVertexes() {
		if v.GetCompleted() == nil || m.completed[v.GetId()] {
			continue
		}
		m.completed[v.GetId()] = true
		if v.Error != nil {
			m.failed++
		}
	}
}

// Percent is the share of packages that have completed.
func (m *Model) Percent() float64 {
	if m.total <= 0 {
		return 0
	}
	return min(1, float64(len(m.completed))/float64(m.total))
}

// View renders the bar and its counters without a trailing newline.
func (m *Model) View() string {
	var s strings.Builder
	s.WriteString(m.styles.spinner.Render(m.spinner.View()))
	s.WriteString(" ")
	s.WriteString(m.bar.ViewAs(m.Percent()))
	s.WriteString(m.styles.counts.Render(
		fmt.Sprintf(" %d/%d packages, %d files", len(m.completed), m.total, m.files),
	))
	if m.failed > 0 {
		s.WriteString(m.styles.skipped.Render(fmt.Sprintf(" (%d skipped)", m.failed)))
	}
	return s.String()
}
