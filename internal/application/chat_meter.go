package application

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultChatTick = time.Second
	ticksPerMinute  = 60
)

type ChatProgress struct {
	SessionID        string
	Elapsed          int
	MinutesRecorded  int
	RemainingSeconds int
}

type ChatResult struct {
	SessionID       string
	Elapsed         int
	MinutesRecorded int
	Exhausted       bool
}

// ChatMeter drives the chat screen timer: it ticks once per interval and
// records one chat minute every 60 ticks until the quota runs out, the
// optional minute budget is spent, or the context is cancelled.
type ChatMeter struct {
	store     *StateStore
	interval  time.Duration
	logger    *slog.Logger
	onTick    func(ChatProgress)
	newTicker func(time.Duration) (<-chan time.Time, func())
}

type ChatMeterOption func(*ChatMeter)

func WithTickInterval(interval time.Duration) ChatMeterOption {
	return func(m *ChatMeter) {
		if interval > 0 {
			m.interval = interval
		}
	}
}

func WithProgress(fn func(ChatProgress)) ChatMeterOption {
	return func(m *ChatMeter) {
		m.onTick = fn
	}
}

func WithMeterLogger(logger *slog.Logger) ChatMeterOption {
	return func(m *ChatMeter) {
		if logger != nil {
			m.logger = logger
		}
	}
}

func NewChatMeter(store *StateStore, opts ...ChatMeterOption) *ChatMeter {
	meter := &ChatMeter{
		store:     store,
		interval:  DefaultChatTick,
		logger:    slog.New(slog.DiscardHandler),
		onTick:    func(ChatProgress) {},
		newTicker: systemTicker,
	}
	for _, opt := range opts {
		opt(meter)
	}
	return meter
}

// Run meters one chat session. budget limits the minutes recorded by this
// run; zero means until the daily quota is gone. Cancellation ends the session
// normally and is not reported as an error.
func (m *ChatMeter) Run(ctx context.Context, budget int) ChatResult {
	result := ChatResult{SessionID: uuid.NewString()}
	logger := m.logger.With("chat_session", result.SessionID)

	if !m.store.Status().CanChat {
		logger.InfoContext(ctx, "chat quota exhausted before start")
		result.Exhausted = true
		return result
	}

	ticks, stop := m.newTicker(m.interval)
	defer stop()

	logger.InfoContext(ctx, "chat session started", "budget_minutes", budget)
	for {
		select {
		case <-ctx.Done():
			logger.InfoContext(ctx, "chat session left",
				"elapsed_ticks", result.Elapsed,
				"minutes", result.MinutesRecorded,
			)
			return result
		case <-ticks:
		}

		result.Elapsed++
		if result.Elapsed%ticksPerMinute == 0 {
			result.MinutesRecorded += m.store.UseChatTime(ctx, 1)
		}

		status := m.store.Status()
		m.onTick(ChatProgress{
			SessionID:        result.SessionID,
			Elapsed:          result.Elapsed,
			MinutesRecorded:  result.MinutesRecorded,
			RemainingSeconds: remainingSeconds(status.ChatMinutesRemaining, result.Elapsed),
		})

		if !status.CanChat {
			logger.InfoContext(ctx, "chat quota exhausted", "minutes", result.MinutesRecorded)
			result.Exhausted = true
			return result
		}
		if budget > 0 && result.MinutesRecorded >= budget {
			logger.InfoContext(ctx, "chat session budget spent", "minutes", result.MinutesRecorded)
			return result
		}
	}
}

func remainingSeconds(minutesLeft, elapsed int) int {
	return max(minutesLeft*ticksPerMinute-elapsed%ticksPerMinute, 0)
}

func systemTicker(interval time.Duration) (<-chan time.Time, func()) {
	ticker := time.NewTicker(interval)
	return ticker.C, ticker.Stop
}
