package status

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bnema/mystic-tarot-cli/internal/application"
	"github.com/charmbracelet/lipgloss"
)

const barWidth = 24

type RenderOptions struct {
	Now time.Time
}

// Render draws the status screen: plan, quota bars, wheel and reset time.
func Render(status application.Status, opts RenderOptions) string {
	return renderView(status, opts, newStyles())
}

func renderView(status application.Status, opts RenderOptions, s styles) string {
	session := status.Session

	lines := []string{
		s.title.Render("Mystic Tarot"),
		s.header.Render(fmt.Sprintf("screen: %s", session.Screen)),
		s.section.Render(s.plan.Render(fmt.Sprintf("Plan: %s (%s)", status.Plan.Name, status.Plan.Price))),
		quotaLine("cards", session.DailyCards, session.MaxDailyCards, fmt.Sprintf("%d/%d left", status.CardsRemaining, session.MaxDailyCards), s),
		quotaLine("chat", session.ChatTimeUsed, session.MaxChatTime, fmt.Sprintf("%d/%d min left", status.ChatMinutesRemaining, session.MaxChatTime), s),
		s.detail.Render(wheelLine(status)),
		s.quotaMeta.Render(resetLine(status, opts.Now)),
	}

	if !status.CanDrawCard && !status.CanChat {
		lines = append(lines, s.warning.Render("Daily quota used up. Upgrade with `tarot plan set` or come back tomorrow."))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func quotaLine(label string, used, limit int, meta string, s styles) string {
	line := lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.quotaKey.Render(fmt.Sprintf("%-6s", label+":")),
		" ",
		renderProgressBar(usedPercent(used, limit), barWidth, s),
		" ",
		s.quotaMeta.Render(meta),
	)

	if used > limit {
		line += " " + s.warning.Render("[over plan cap]")
	}

	return line
}

func wheelLine(status application.Status) string {
	if !status.Session.HasSpunWheel {
		return "wheel: ready to spin"
	}
	if status.Session.WheelPrize == "" {
		return "wheel: spun today"
	}
	return fmt.Sprintf("wheel: spun today (%s)", status.Session.WheelPrize)
}

func resetLine(status application.Status, now time.Time) string {
	last := status.Session.LastResetDate.String()
	if last == "" {
		last = "never"
	}

	return fmt.Sprintf("last reset: %s, %s", last, formatNextReset(now))
}

func usedPercent(used, limit int) float64 {
	if limit <= 0 {
		return 100
	}
	return clampPercent(float64(used) / float64(limit) * 100)
}

func renderProgressBar(usedPercent float64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	used := clampPercent(usedPercent)
	leftFraction := (100.0 - used) / 100.0
	filled := int(math.Round(float64(width) * leftFraction))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}

	empty := width - filled
	fillSegment := s.barFill.Render(strings.Repeat("=", filled))
	emptySegment := s.barEmpty.Render(strings.Repeat("-", empty))

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		fillSegment,
		emptySegment,
		s.barBracket.Render("]"),
	)
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// formatNextReset describes the next local midnight. The reset itself only
// happens on the first load after it.
func formatNextReset(now time.Time) string {
	if now.IsZero() {
		return "next reset at midnight"
	}

	year, month, day := now.Date()
	midnight := time.Date(year, month, day+1, 0, 0, 0, 0, now.Location())
	remaining := midnight.Sub(now)

	hours := int(math.Ceil(remaining.Hours()))
	if hours <= 1 {
		minutes := max(int(math.Ceil(remaining.Minutes())), 1)
		suffix := "minutes"
		if minutes == 1 {
			suffix = "minute"
		}
		return fmt.Sprintf("next reset in %d %s (00:00)", minutes, suffix)
	}

	return fmt.Sprintf("next reset in %d hours (00:00)", hours)
}
