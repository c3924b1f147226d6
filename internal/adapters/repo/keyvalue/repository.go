// Package keyvalue stores the session record under the two device storage
// keys: sessionState (JSON record) and lastDailyReset (date string).
package keyvalue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bnema/mystic-tarot-cli/internal/domain"
	"github.com/bnema/mystic-tarot-cli/internal/ports"
)

const (
	SessionStateKey   = "sessionState"
	LastDailyResetKey = "lastDailyReset"
)

type Repository struct {
	store ports.KeyValueStore
}

var _ ports.SessionRepository = (*Repository)(nil)

func NewRepository(store ports.KeyValueStore) *Repository {
	return &Repository{store: store}
}

// Load decodes the record. The in-record lastResetDate wins; the
// lastDailyReset key is only consulted when the record has no usable date.
func (r *Repository) Load(ctx context.Context) (domain.Session, error) {
	raw, err := r.store.Get(ctx, SessionStateKey)
	if err != nil {
		if errors.Is(err, ports.ErrKeyNotFound) {
			return domain.Session{}, domain.ErrSessionNotFound
		}
		return domain.Session{}, fmt.Errorf("read session state: %w", err)
	}

	var state sessionStateSchema
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return domain.Session{}, fmt.Errorf("decode session state: %w", err)
	}

	session := fromSchema(state)
	if session.LastResetDate.IsZero() {
		session.LastResetDate, err = r.lastDailyReset(ctx)
		if err != nil {
			return domain.Session{}, err
		}
	}

	return session, nil
}

func (r *Repository) Save(ctx context.Context, session domain.Session) error {
	data, err := json.Marshal(toSchema(session))
	if err != nil {
		return fmt.Errorf("encode session state: %w", err)
	}

	if err := r.store.Put(ctx, SessionStateKey, string(data)); err != nil {
		return fmt.Errorf("write session state: %w", err)
	}

	if session.LastResetDate.IsZero() {
		return nil
	}
	if err := r.store.Put(ctx, LastDailyResetKey, session.LastResetDate.String()); err != nil {
		return fmt.Errorf("write last daily reset: %w", err)
	}

	return nil
}

func (r *Repository) lastDailyReset(ctx context.Context) (domain.Date, error) {
	raw, err := r.store.Get(ctx, LastDailyResetKey)
	if err != nil {
		if errors.Is(err, ports.ErrKeyNotFound) {
			return domain.Date{}, nil
		}
		return domain.Date{}, fmt.Errorf("read last daily reset: %w", err)
	}

	date, err := domain.ParseDate(raw)
	if err != nil {
		return domain.Date{}, nil
	}
	return date, nil
}
