package application

import "github.com/bnema/mystic-tarot-cli/internal/domain"

type Status struct {
	Session              domain.Session  `json:"session"`
	Plan                 domain.PlanInfo `json:"plan"`
	CardsRemaining       int             `json:"cardsRemaining"`
	ChatMinutesRemaining int             `json:"chatMinutesRemaining"`
	CanDrawCard          bool            `json:"canDrawCard"`
	CanChat              bool            `json:"canChat"`
	Today                domain.Date     `json:"today"`
}

func (s *StateStore) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	return statusFromSession(s.session, s.today())
}

func statusFromSession(session domain.Session, today domain.Date) Status {
	cards := session.CardsRemaining()
	minutes := session.ChatMinutesRemaining()

	return Status{
		Session:              session,
		Plan:                 session.Plan.Info(),
		CardsRemaining:       cards,
		ChatMinutesRemaining: minutes,
		CanDrawCard:          cards > 0,
		CanChat:              minutes > 0,
		Today:                today,
	}
}
