package application

import (
	"context"
	"log/slog"
	"time"

	"github.com/bnema/mystic-tarot-cli/internal/domain"
	"github.com/bnema/mystic-tarot-cli/internal/ports"
)

const saveTimeout = 5 * time.Second

type pendingSave struct {
	ctx     context.Context
	session domain.Session
}

// persister writes snapshots on its own goroutine. Only the latest pending
// snapshot is kept; an older one still waiting is replaced.
type persister struct {
	repo    ports.SessionRepository
	logger  *slog.Logger
	pending chan pendingSave
	quit    chan struct{}
	done    chan struct{}
}

func newPersister(repo ports.SessionRepository, logger *slog.Logger) *persister {
	p := &persister{
		repo:    repo,
		logger:  logger,
		pending: make(chan pendingSave, 1),
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go p.run()
	return p
}

// submit must not be called concurrently; the store mutex serializes callers.
func (p *persister) submit(ctx context.Context, session domain.Session) {
	item := pendingSave{ctx: context.WithoutCancel(ctx), session: session}
	for {
		select {
		case p.pending <- item:
			return
		default:
		}

		select {
		case <-p.pending:
		default:
		}
	}
}

func (p *persister) run() {
	defer close(p.done)

	for {
		select {
		case item := <-p.pending:
			p.save(item)
		case <-p.quit:
			select {
			case item := <-p.pending:
				p.save(item)
			default:
			}
			return
		}
	}
}

func (p *persister) save(item pendingSave) {
	ctx, cancel := context.WithTimeout(item.ctx, saveTimeout)
	defer cancel()

	if err := p.repo.Save(ctx, item.session); err != nil {
		p.logger.ErrorContext(ctx, "persist session", "error", err)
		return
	}
	p.logger.DebugContext(ctx, "session persisted",
		"plan", item.session.Plan,
		"daily_cards", item.session.DailyCards,
		"chat_time_used", item.session.ChatTimeUsed,
	)
}

func (p *persister) close(ctx context.Context) error {
	close(p.quit)

	select {
	case <-p.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
