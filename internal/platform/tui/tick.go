// Package tui provides the Bubble Tea integration for the saga platform.
// It handles the terminal UI loop, input mapping, and game orchestration.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Tile speeds are in cells per tick, so the rate bounds animation speed.
const (
	minTickRate = 10
	maxTickRate = 120
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// clampTickRate keeps the tick rate where animations stay watchable.
func clampTickRate(rate int) int {
	switch {
	case rate <= 0:
		return 60
	case rate < minTickRate:
		return minTickRate
	case rate > maxTickRate:
		return maxTickRate
	}
	return rate
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	interval := time.Second / time.Duration(clampTickRate(tickRate))
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
