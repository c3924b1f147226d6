package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version        int            `toml:"version"`
	LastDailyReset string         `toml:"last_daily_reset,omitempty"`
	Session        *sessionSchema `toml:"session,omitempty"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported state schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type sessionSchema struct {
	CurrentPlan   string `toml:"current_plan"`
	DailyCards    int    `toml:"daily_cards"`
	MaxDailyCards int    `toml:"max_daily_cards"`
	ChatTimeUsed  int    `toml:"chat_time_used"`
	MaxChatTime   int    `toml:"max_chat_time"`
	HasSpunWheel  bool   `toml:"has_spun_wheel"`
	CurrentScreen string `toml:"current_screen"`
	WheelPrize    string `toml:"wheel_prize,omitempty"`
	LastResetDate string `toml:"last_reset_date,omitempty"`
}
