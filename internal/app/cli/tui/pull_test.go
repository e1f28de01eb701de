package tui

import (
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/timer"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestPullModelView(t *testing.T) {
	m := NewPullModel(3)
	assert.Equal(t, 3, m.Remaining())
	assert.InDelta(t, 0, m.Percent(), 0.001)

	view := m.View()
	assert.Contains(t, view, "=== PULL IN 3 ===")
	assert.Contains(t, view, "Pull in...")
	assert.NotContains(t, view, "PULL NOW!")
}

func TestPullModelTimeout(t *testing.T) {
	m := NewPullModel(1)

	next, cmd := m.Update(timer.TimeoutMsg{ID: m.timer.ID()})
	assert.NotNil(t, cmd)

	pm := next.(PullModel)
	assert.True(t, pm.done)
	assert.False(t, pm.Cancelled())
	assert.Contains(t, pm.View(), "PULL NOW!")
}

func TestPullModelCancel(t *testing.T) {
	m := NewPullModel(5)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.NotNil(t, cmd)
	assert.True(t, next.(PullModel).Cancelled())
}

func TestPullModelPercent(t *testing.T) {
	m := NewPullModel(4)
	m.timer.Timeout = time.Second
	assert.InDelta(t, 0.75, m.Percent(), 0.001)
	assert.Equal(t, 1, m.Remaining())

	m.timer.Timeout = 1500 * time.Millisecond
	assert.Equal(t, 2, m.Remaining())
}
