package ports

import (
	"context"

	"github.com/bnema/mystic-tarot-cli/internal/domain"
)

// SessionRepository persists the single session record of the device.
// Load returns domain.ErrSessionNotFound when nothing has been saved yet.
type SessionRepository interface {
	Load(ctx context.Context) (domain.Session, error)
	Save(ctx context.Context, session domain.Session) error
}
