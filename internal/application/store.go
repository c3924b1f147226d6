package application

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/bnema/mystic-tarot-cli/internal/domain"
	"github.com/bnema/mystic-tarot-cli/internal/ports"
)

// StateStore is the only owner of the session record. Every read and write
// goes through its methods; callers get copies.
//
// Mutators hold the store mutex for the whole read-modify-write, so UseCard
// never grants more than MaxDailyCards even with concurrent callers. Saves are
// handed to a background persister and never block the caller.
type StateStore struct {
	mu        sync.Mutex
	session   domain.Session
	repo      ports.SessionRepository
	clock     ports.Clock
	location  *time.Location
	logger    *slog.Logger
	persister *persister
	closed    bool
}

type Option func(*StateStore)

func WithLogger(logger *slog.Logger) Option {
	return func(s *StateStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithLocation sets the zone used to decide the calendar day.
func WithLocation(location *time.Location) Option {
	return func(s *StateStore) {
		if location != nil {
			s.location = location
		}
	}
}

func NewStateStore(repo ports.SessionRepository, clock ports.Clock, opts ...Option) *StateStore {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	store := &StateStore{
		repo:     repo,
		clock:    clock,
		location: time.Local,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(store)
	}

	store.session = domain.NewSession(store.today())
	store.persister = newPersister(repo, store.logger)

	return store
}

// Load reads the saved record and applies the daily reset when the calendar
// day changed since the last one. A missing or unreadable record yields the
// demo defaults; errors never reach the caller.
func (s *StateStore) Load(ctx context.Context) domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.today()
	session, err := s.repo.Load(ctx)
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		s.logger.InfoContext(ctx, "no saved session, starting fresh", "plan", domain.PlanDemo)
		s.session = domain.NewSession(today)
		s.persistLocked(ctx)
		return s.session
	case err != nil:
		s.logger.WarnContext(ctx, "saved session unreadable, falling back to defaults", "error", err)
		s.session = domain.NewSession(today)
		s.persistLocked(ctx)
		return s.session
	}

	dirty := false
	if session.Normalize() {
		s.logger.WarnContext(ctx, "repaired saved session", "plan", session.Plan, "screen", session.Screen)
		dirty = true
	}

	if session.NeedsReset(today) {
		s.logger.InfoContext(ctx, "daily reset",
			"last_reset", session.LastResetDate.String(),
			"today", today.String(),
		)
		session.ResetDaily(today)
		dirty = true
	}

	s.session = session
	if dirty {
		s.persistLocked(ctx)
	}

	return s.session
}

// UpdatePlan switches tier and caps. Usage already counted today is kept.
func (s *StateStore) UpdatePlan(ctx context.Context, plan domain.Plan) {
	if !plan.Valid() {
		s.logger.WarnContext(ctx, "ignoring unknown plan", "plan", plan)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.session.Plan
	s.session.ApplyPlan(plan)
	s.logger.InfoContext(ctx, "plan updated",
		"from", previous,
		"to", plan,
		"max_daily_cards", s.session.MaxDailyCards,
		"max_chat_time", s.session.MaxChatTime,
	)
	s.persistLocked(ctx)
}

// UseCard consumes one card draw. It reports false, without touching state,
// once the daily cap is reached.
func (s *StateStore) UseCard(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.session.UseCard() {
		s.logger.DebugContext(ctx, "card quota exhausted",
			"daily_cards", s.session.DailyCards,
			"max_daily_cards", s.session.MaxDailyCards,
		)
		return false
	}

	s.persistLocked(ctx)
	return true
}

// UseChatTime records chat minutes, saturating at the plan cap. It returns
// the minutes actually charged, which is less than asked once the cap is hit.
func (s *StateStore) UseChatTime(ctx context.Context, minutes int) int {
	if minutes <= 0 {
		s.logger.WarnContext(ctx, "ignoring non-positive chat minutes", "minutes", minutes)
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.session.ChatTimeUsed
	s.session.AddChatTime(minutes)
	charged := s.session.ChatTimeUsed - before
	if charged == 0 {
		return 0
	}

	s.persistLocked(ctx)
	return charged
}

// SpinWheel marks the onboarding wheel as spun and moves to the cards screen.
// Calling it again stores the same values.
func (s *StateStore) SpinWheel(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session.Spin()
	s.persistLocked(ctx)
}

func (s *StateStore) SetScreen(ctx context.Context, screen domain.Screen) {
	if !screen.Valid() {
		s.logger.WarnContext(ctx, "ignoring unknown screen", "screen", screen)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.session.Screen = screen
	s.persistLocked(ctx)
}

// ResetDaily zeroes the daily counters and the wheel flag, stamping today.
func (s *StateStore) ResetDaily(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session.ResetDaily(s.today())
	s.persistLocked(ctx)
}

func (s *StateStore) Snapshot() domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.session
}

// Close waits for pending saves. Mutations after Close stay in memory only.
func (s *StateStore) Close(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	return s.persister.close(ctx)
}

func (s *StateStore) today() domain.Date {
	return domain.DateOf(s.clock.Now().In(s.location))
}

func (s *StateStore) persistLocked(ctx context.Context) {
	if s.closed {
		s.logger.WarnContext(ctx, "store closed, change kept in memory only")
		return
	}
	s.persister.submit(ctx, s.session)
}
