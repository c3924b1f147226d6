package domain

import (
	"fmt"
	"strings"
)

type Screen string

const (
	ScreenWheel    Screen = "wheel"
	ScreenCards    Screen = "cards"
	ScreenChat     Screen = "chat"
	ScreenPlans    Screen = "plans"
	ScreenProducts Screen = "products"
)

func (s Screen) Valid() bool {
	switch s {
	case ScreenWheel, ScreenCards, ScreenChat, ScreenPlans, ScreenProducts:
		return true
	default:
		return false
	}
}

func ParseScreen(raw string) (Screen, error) {
	screen := Screen(strings.ToLower(strings.TrimSpace(raw)))
	if !screen.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidScreen, raw)
	}
	return screen, nil
}
