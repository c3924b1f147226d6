package domain

// WheelPrize is the fixed reward granted by the onboarding wheel.
const WheelPrize = "Uma carta de tarot grátis!"

// Session is the persisted entitlement and navigation record of the device.
type Session struct {
	Plan          Plan   `json:"currentPlan"`
	DailyCards    int    `json:"dailyCards"`
	MaxDailyCards int    `json:"maxDailyCards"`
	ChatTimeUsed  int    `json:"chatTimeUsed"`
	MaxChatTime   int    `json:"maxChatTime"`
	HasSpunWheel  bool   `json:"hasSpunWheel"`
	Screen        Screen `json:"currentScreen"`
	WheelPrize    string `json:"wheelPrize,omitempty"`
	LastResetDate Date   `json:"lastResetDate"`
}

func NewSession(today Date) Session {
	limits := PlanDemo.Limits()
	return Session{
		Plan:          PlanDemo,
		MaxDailyCards: limits.MaxCards,
		MaxChatTime:   limits.MaxChatTime,
		Screen:        ScreenWheel,
		LastResetDate: today,
	}
}

// ApplyPlan switches the plan and its caps. Usage already counted today is kept,
// even when it now sits above a lower cap.
func (s *Session) ApplyPlan(plan Plan) {
	limits := plan.Limits()
	s.Plan = plan
	s.MaxDailyCards = limits.MaxCards
	s.MaxChatTime = limits.MaxChatTime
}

// UseCard consumes one card when the cap allows it.
func (s *Session) UseCard() bool {
	if s.DailyCards >= s.MaxDailyCards {
		return false
	}
	s.DailyCards++
	return true
}

// AddChatTime adds minutes, saturating at MaxChatTime. Usage already above the
// cap after a downgrade is left untouched.
func (s *Session) AddChatTime(minutes int) {
	if minutes <= 0 || s.ChatTimeUsed >= s.MaxChatTime {
		return
	}
	s.ChatTimeUsed = min(s.ChatTimeUsed+minutes, s.MaxChatTime)
}

func (s *Session) Spin() {
	s.HasSpunWheel = true
	s.WheelPrize = WheelPrize
	s.Screen = ScreenCards
}

func (s Session) NeedsReset(today Date) bool {
	return s.LastResetDate != today
}

func (s *Session) ResetDaily(today Date) {
	s.DailyCards = 0
	s.ChatTimeUsed = 0
	s.HasSpunWheel = false
	s.LastResetDate = today
}

// Normalize repairs a record read from storage: unknown enums fall back to
// defaults, caps are re-derived from the plan and negative counters are zeroed.
// It reports whether anything changed.
func (s *Session) Normalize() bool {
	before := *s

	if !s.Plan.Valid() {
		s.Plan = PlanDemo
	}
	limits := s.Plan.Limits()
	s.MaxDailyCards = limits.MaxCards
	s.MaxChatTime = limits.MaxChatTime

	s.DailyCards = max(s.DailyCards, 0)
	s.ChatTimeUsed = max(s.ChatTimeUsed, 0)

	if !s.Screen.Valid() {
		s.Screen = ScreenWheel
		if s.HasSpunWheel {
			s.Screen = ScreenCards
		}
	}

	return *s != before
}

func (s Session) CardsRemaining() int {
	return max(s.MaxDailyCards-s.DailyCards, 0)
}

func (s Session) ChatMinutesRemaining() int {
	return max(s.MaxChatTime-s.ChatTimeUsed, 0)
}
