package keyvalue

import "github.com/bnema/mystic-tarot-cli/internal/domain"

type sessionStateSchema struct {
	CurrentPlan   string  `json:"currentPlan"`
	DailyCards    int     `json:"dailyCards"`
	MaxDailyCards int     `json:"maxDailyCards"`
	ChatTimeUsed  int     `json:"chatTimeUsed"`
	MaxChatTime   int     `json:"maxChatTime"`
	HasSpunWheel  bool    `json:"hasSpunWheel"`
	CurrentScreen string  `json:"currentScreen"`
	WheelPrize    *string `json:"wheelPrize"`
	LastResetDate string  `json:"lastResetDate,omitempty"`
}

func toSchema(session domain.Session) sessionStateSchema {
	var prize *string
	if session.WheelPrize != "" {
		value := session.WheelPrize
		prize = &value
	}

	return sessionStateSchema{
		CurrentPlan:   string(session.Plan),
		DailyCards:    session.DailyCards,
		MaxDailyCards: session.MaxDailyCards,
		ChatTimeUsed:  session.ChatTimeUsed,
		MaxChatTime:   session.MaxChatTime,
		HasSpunWheel:  session.HasSpunWheel,
		CurrentScreen: string(session.Screen),
		WheelPrize:    prize,
		LastResetDate: session.LastResetDate.String(),
	}
}

func fromSchema(state sessionStateSchema) domain.Session {
	session := domain.Session{
		Plan:          domain.Plan(state.CurrentPlan),
		DailyCards:    state.DailyCards,
		MaxDailyCards: state.MaxDailyCards,
		ChatTimeUsed:  state.ChatTimeUsed,
		MaxChatTime:   state.MaxChatTime,
		HasSpunWheel:  state.HasSpunWheel,
		Screen:        domain.Screen(state.CurrentScreen),
	}
	if state.WheelPrize != nil {
		session.WheelPrize = *state.WheelPrize
	}
	if date, err := domain.ParseDate(state.LastResetDate); err == nil {
		session.LastResetDate = date
	}

	return session
}
