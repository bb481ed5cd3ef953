package toast

import (
	"context"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// DefaultDuration is how long a toast stays visible before the renderer
// fires the dismiss callback. Display timing is a presentation concern; the
// session core only holds the message.
const DefaultDuration = 2 * time.Second

type styles struct {
	frame   lipgloss.Style
	message lipgloss.Style
}

func newStyles() styles {
	return styles{
		frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("203")).
			Padding(0, 1),
		message: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")),
	}
}

// Render returns the styled one-line toast without running a program.
func Render(message string) string {
	s := newStyles()
	return s.frame.Render(s.message.Render(message))
}

type dismissMsg struct{}

// Model displays one toast message and dismisses itself after the configured
// duration, invoking the dismiss callback so the session slot clears too.
type Model struct {
	message  string
	duration time.Duration
	styles   styles
	done     bool
}

func NewModel(message string, duration time.Duration) Model {
	if duration <= 0 {
		duration = DefaultDuration
	}

	return Model{
		message:  message,
		duration: duration,
		styles:   newStyles(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(m.duration, func(time.Time) tea.Msg { return dismissMsg{} })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(dismissMsg); ok {
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) View() string {
	if m.done {
		return ""
	}
	return m.styles.frame.Render(m.styles.message.Render(m.message))
}

// Show renders the toast for its display duration, then calls dismiss.
func Show(ctx context.Context, output io.Writer, message string, duration time.Duration, dismiss func(context.Context) error) error {
	p := tea.NewProgram(
		NewModel(message, duration),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("render toast: %w", err)
	}

	if dismiss == nil {
		return nil
	}
	return dismiss(ctx)
}
