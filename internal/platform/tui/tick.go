// Package tui provides the Bubble Tea integration for the raanman games.
// It handles the terminal UI loop, input mapping, and game orchestration.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// frameClock measures the wall-clock time between ticks. The game clamps
// long gaps itself, so the raw delta is passed through.
type frameClock struct {
	last time.Time
}

// Delta returns the time since the previous tick. The first tick reports
// one nominal frame.
func (c *frameClock) Delta(now time.Time, tickRate int) time.Duration {
	if c.last.IsZero() {
		c.last = now
		if tickRate <= 0 {
			tickRate = 60
		}
		return time.Second / time.Duration(tickRate)
	}
	dt := now.Sub(c.last)
	c.last = now
	if dt < 0 {
		return 0
	}
	return dt
}

// Reset forgets the previous tick, e.g. after a pause in the tick loop.
func (c *frameClock) Reset() {
	c.last = time.Time{}
}
