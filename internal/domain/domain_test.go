package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanLimits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		plan Plan
		want PlanLimits
	}{
		{plan: PlanDemo, want: PlanLimits{MaxCards: 1, MaxChatTime: 10}},
		{plan: PlanStandard, want: PlanLimits{MaxCards: 3, MaxChatTime: 30}},
		{plan: PlanPremium, want: PlanLimits{MaxCards: 5, MaxChatTime: 60}},
		{plan: "gold", want: PlanLimits{MaxCards: 1, MaxChatTime: 10}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(string(tc.plan), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.plan.Limits())
		})
	}
}

func TestParsePlan(t *testing.T) {
	t.Parallel()

	plan, err := ParsePlan(" Premium ")
	require.NoError(t, err)
	assert.Equal(t, PlanPremium, plan)

	_, err = ParsePlan("gold")
	require.ErrorIs(t, err, ErrInvalidPlan)
	assert.ErrorContains(t, err, "\"gold\"")
}

func TestPlansReturnsCopyInDisplayOrder(t *testing.T) {
	t.Parallel()

	plans := Plans()
	require.Len(t, plans, 3)
	assert.Equal(t, []Plan{PlanDemo, PlanStandard, PlanPremium}, []Plan{plans[0].Plan, plans[1].Plan, plans[2].Plan})

	plans[0].Limits.MaxCards = 99
	assert.Equal(t, 1, PlanDemo.Limits().MaxCards)
}

func TestParseScreen(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"wheel", "cards", "chat", "plans", "products"} {
		screen, err := ParseScreen(raw)
		require.NoError(t, err)
		assert.Equal(t, Screen(raw), screen)
	}

	_, err := ParseScreen("settings")
	require.ErrorIs(t, err, ErrInvalidScreen)
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	want := Date{Year: 2026, Month: time.February, Day: 14}

	got, err := ParseDate("2026-02-14")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	got, err = ParseDate("Sat Feb 14 2026")
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, "2026-02-14", got.String())

	_, err = ParseDate("yesterday")
	require.ErrorIs(t, err, ErrInvalidDate)
}

func TestDateOfDropsTimeOfDay(t *testing.T) {
	t.Parallel()

	morning := DateOf(time.Date(2026, 2, 14, 0, 0, 1, 0, time.UTC))
	night := DateOf(time.Date(2026, 2, 14, 23, 59, 59, 0, time.UTC))

	assert.Equal(t, morning, night)
	assert.True(t, Date{}.IsZero())
	assert.Empty(t, Date{}.String())
}

func TestDateTextRoundTrip(t *testing.T) {
	t.Parallel()

	want := Date{Year: 2026, Month: time.October, Day: 16}
	text, err := want.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "2026-10-16", string(text))

	var got Date
	require.NoError(t, got.UnmarshalText(text))
	assert.Equal(t, want, got)

	require.NoError(t, got.UnmarshalText(nil))
	assert.True(t, got.IsZero())
}

func TestDeckIsCopiedAndCardAtWraps(t *testing.T) {
	t.Parallel()

	cards := Deck()
	require.Len(t, cards, 5)
	cards[0].Name = "changed"
	assert.Equal(t, "O Louco", Deck()[0].Name)

	assert.Equal(t, "O Louco", CardAt(0).Name)
	assert.Equal(t, "A Lua", CardAt(4).Name)
	assert.Equal(t, "O Louco", CardAt(5).Name)
	assert.Equal(t, "A Imperatriz", CardAt(-1).Name)
}
