package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/timer"
	tea "github.com/charmbracelet/bubbletea"
)

// PullModel is the interactive pull timer
type PullModel struct {
	total     time.Duration
	timer     timer.Model
	progress  progress.Model
	done      bool
	cancelled bool
}

// NewPullModel creates a countdown of the given number of seconds
func NewPullModel(seconds int) PullModel {
	total := time.Duration(seconds) * time.Second

	p := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	p.Width = 40

	return PullModel{
		total:    total,
		timer:    timer.NewWithInterval(total, 100*time.Millisecond),
		progress: p,
	}
}

// Init starts the timer
func (m PullModel) Init() tea.Cmd {
	return m.timer.Init()
}

// Update handles timer ticks and key presses
func (m PullModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.cancelled = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.progress.Width = min(max(msg.Width-10, 10), 60)
		return m, nil

	case timer.TickMsg:
		var cmd tea.Cmd
		m.timer, cmd = m.timer.Update(msg)
		return m, cmd

	case timer.StartStopMsg:
		var cmd tea.Cmd
		m.timer, cmd = m.timer.Update(msg)
		return m, cmd

	case timer.TimeoutMsg:
		m.done = true
		return m, tea.Quit
	}

	return m, nil
}

// Remaining is the time left, rounded up to whole seconds
func (m PullModel) Remaining() int {
	return int((m.timer.Timeout + time.Second - 1) / time.Second)
}

// Percent is the elapsed fraction of the countdown
func (m PullModel) Percent() float64 {
	if m.total <= 0 {
		return 1
	}
	return 1 - float64(m.timer.Timeout)/float64(m.total)
}

// View renders the timer
func (m PullModel) View() string {
	var s strings.Builder

	s.WriteString(cyanBold.Render(fmt.Sprintf("=== PULL IN %d ===", int(m.total/time.Second))))
	s.WriteString("\n\n")

	if m.done {
		s.WriteString(redBold.Render("PULL NOW!"))
		s.WriteString("\n")
		return s.String()
	}

	s.WriteString("Pull in... " + countStyle.Render(fmt.Sprintf("%d", m.Remaining())))
	s.WriteString("\n\n")
	s.WriteString(m.progress.ViewAs(m.Percent()))
	s.WriteString("\n\n")
	s.WriteString(dimStyle.Render("q/esc: cancel the pull"))
	s.WriteString("\n")
	return s.String()
}

// Cancelled reports whether the pull was cancelled from the keyboard
func (m PullModel) Cancelled() bool {
	return m.cancelled
}

// RunPull runs the pull timer. It reports whether the countdown finished.
func RunPull(seconds int, opts ...tea.ProgramOption) (bool, error) {
	p := tea.NewProgram(NewPullModel(seconds), opts...)
	final, err := p.Run()
	if err != nil {
		return false, fmt.Errorf("pull timer failed: %w", err)
	}
	m, ok := final.(PullModel)
	return ok && m.done && !m.cancelled, nil
}
