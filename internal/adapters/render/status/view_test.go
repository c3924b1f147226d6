package status

import (
	"strings"
	"testing"
	"time"

	"github.com/bnema/mystic-tarot-cli/internal/application"
	"github.com/bnema/mystic-tarot-cli/internal/domain"
	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2026, 2, 14, 11, 0, 0, 0, time.UTC)

func TestRenderFreshDemoSession(t *testing.T) {
	session := domain.NewSession(domain.DateOf(testNow))

	output := Render(statusFor(session), RenderOptions{Now: testNow})

	assert.Contains(t, output, "Mystic Tarot")
	assert.Contains(t, output, "screen: wheel")
	assert.Contains(t, output, "Plan: Demonstração (Grátis)")
	assert.Contains(t, output, "1/1 left")
	assert.Contains(t, output, "10/10 min left")
	assert.Contains(t, output, "wheel: ready to spin")
	assert.Contains(t, output, "last reset: 2026-02-14")
	assert.Contains(t, output, "next reset in 13 hours (00:00)")
	assert.NotContains(t, output, "Daily quota used up")
}

func TestRenderExhaustedSessionWarns(t *testing.T) {
	session := domain.NewSession(domain.DateOf(testNow))
	session.UseCard()
	session.AddChatTime(10)
	session.Spin()

	output := Render(statusFor(session), RenderOptions{Now: testNow})

	assert.Contains(t, output, "0/1 left")
	assert.Contains(t, output, "0/10 min left")
	assert.Contains(t, output, "wheel: spun today (Uma carta de tarot grátis!)")
	assert.Contains(t, output, "Daily quota used up")
}

func TestRenderDowngradedSessionFlagsOverCap(t *testing.T) {
	session := domain.NewSession(domain.DateOf(testNow))
	session.ApplyPlan(domain.PlanPremium)
	for range 4 {
		session.UseCard()
	}
	session.ApplyPlan(domain.PlanStandard)

	output := Render(statusFor(session), RenderOptions{Now: testNow})

	assert.Contains(t, output, "Plan: Standard (R$ 19,90/mês)")
	assert.Contains(t, output, "[over plan cap]")
}

func TestRenderProgressBarWidth(t *testing.T) {
	s := newStyles()

	assert.Equal(t, "["+strings.Repeat("=", 12)+strings.Repeat("-", 12)+"]", stripANSI(renderProgressBar(50, 24, s)))
	assert.Equal(t, "["+strings.Repeat("-", 24)+"]", stripANSI(renderProgressBar(150, 24, s)))
	assert.Empty(t, renderProgressBar(10, 0, s))
}

func TestFormatNextReset(t *testing.T) {
	assert.Equal(t, "next reset at midnight", formatNextReset(time.Time{}))
	assert.Equal(t, "next reset in 30 minutes (00:00)", formatNextReset(time.Date(2026, 2, 14, 23, 30, 0, 0, time.UTC)))
	assert.Equal(t, "next reset in 1 minute (00:00)", formatNextReset(time.Date(2026, 2, 14, 23, 59, 30, 0, time.UTC)))
}

func statusFor(session domain.Session) application.Status {
	return application.Status{
		Session:              session,
		Plan:                 session.Plan.Info(),
		CardsRemaining:       session.CardsRemaining(),
		ChatMinutesRemaining: session.ChatMinutesRemaining(),
		CanDrawCard:          session.CardsRemaining() > 0,
		CanChat:              session.ChatMinutesRemaining() > 0,
		Today:                session.LastResetDate,
	}
}

func stripANSI(s string) string {
	out := make([]rune, 0, len(s))
	inEscape := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEscape = true
		case inEscape && (r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'):
			inEscape = false
		case !inEscape:
			out = append(out, r)
		}
	}
	return string(out)
}
