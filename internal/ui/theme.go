package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Goal Quest theme (CLI + TUI). Dark with a gold accent.
// Kept intentionally small: reusable styles and a few emojis.

const (
	IconSword   = "⚔️"
	IconSparkle = "✨"
	IconDone    = "✅"
	IconTrophy  = "🏆"
	IconBolt    = "⚡"
	IconFire    = "🔥"
	IconTarget  = "🎯"
	IconLoop    = "🔁"
	IconCoin    = "🪙"
	IconGem     = "💎"
	IconScroll  = "📜"
	IconWarn    = "⚠️"
	IconError   = "🧨"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cGold    = lipgloss.Color("220") // gold accent
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cGold)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)
	Muted = lipgloss.NewStyle().Foreground(cMuted)

	Panel       = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold)

	BadgeLevelUp = lipgloss.NewStyle().Bold(true).Foreground(cGold).Render("LEVEL UP")
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// XPBar renders a fixed-width progress bar toward the next level.
func XPBar(current, needed, width int) string {
	if width < 4 {
		width = 10
	}
	filled := 0
	if needed > 0 {
		filled = current * width / needed
		if filled > width {
			filled = width
		}
	}
	bar := Gold.Render(strings.Repeat("█", filled)) + Muted.Render(strings.Repeat("░", width-filled))
	return fmt.Sprintf("%s %d/%d", bar, current, needed)
}

// DifficultyBadge renders a tier as stars plus its name.
func DifficultyBadge(tier int, name string) string {
	if tier < 1 {
		tier = 1
	}
	if tier > 6 {
		tier = 6
	}
	return Warn.Render(strings.Repeat("★", tier)) + " " + Muted.Render(name)
}

// StreakBadge renders a streak count; hot streaks get the fire.
func StreakBadge(streak int) string {
	if streak >= 7 {
		return Bad.Render(fmt.Sprintf("%s %d", IconFire, streak))
	}
	return Warn.Render(fmt.Sprintf("%s %d", IconFire, streak))
}
