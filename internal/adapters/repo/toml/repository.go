package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bnema/mystic-tarot-cli/internal/domain"
	"github.com/bnema/mystic-tarot-cli/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
)

const (
	stateFileMode   = 0o600
	stateDirMode    = 0o700
	tempFilePattern = ".state-*.toml.tmp"
)

// Repository keeps the session record in a single versioned TOML file.
type Repository struct {
	statePath string
	mu        *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.SessionRepository = (*Repository)(nil)

func NewRepository(statePath string) (*Repository, error) {
	if strings.TrimSpace(statePath) == "" {
		return nil, errors.New("state path is empty")
	}

	statePath, err := normalizeStatePath(statePath)
	if err != nil {
		return nil, err
	}

	return &Repository{statePath: statePath, mu: lockForPath(statePath)}, nil
}

func (r *Repository) Load(ctx context.Context) (domain.Session, error) {
	if err := ctx.Err(); err != nil {
		return domain.Session{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return domain.Session{}, err
	}
	if file.Session == nil {
		return domain.Session{}, domain.ErrSessionNotFound
	}

	session := fromSchema(*file.Session)
	if session.LastResetDate.IsZero() {
		if date, err := domain.ParseDate(file.LastDailyReset); err == nil {
			session.LastResetDate = date
		}
	}

	return session, nil
}

func (r *Repository) Save(ctx context.Context, session domain.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	encoded := toSchema(session)
	file := fileSchema{
		Version:        currentSchemaVersion,
		LastDailyReset: encoded.LastResetDate,
		Session:        &encoded,
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.writeSchema(file)
}

func (r *Repository) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(r.statePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSchema{}, nil
		}
		return fileSchema{}, fmt.Errorf("read state file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode state file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func normalizeStatePath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve state path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func (r *Repository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(r.statePath), stateDirMode); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode state file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.statePath), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp state file: %w", err)
	}

	if err := tempFile.Chmod(stateFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp state file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp state file: %w", err)
	}

	if err := os.Rename(tempName, r.statePath); err != nil {
		return fmt.Errorf("replace state file: %w", err)
	}

	cleanup = false
	return nil
}

func toSchema(session domain.Session) sessionSchema {
	return sessionSchema{
		CurrentPlan:   string(session.Plan),
		DailyCards:    session.DailyCards,
		MaxDailyCards: session.MaxDailyCards,
		ChatTimeUsed:  session.ChatTimeUsed,
		MaxChatTime:   session.MaxChatTime,
		HasSpunWheel:  session.HasSpunWheel,
		CurrentScreen: string(session.Screen),
		WheelPrize:    session.WheelPrize,
		LastResetDate: session.LastResetDate.String(),
	}
}

func fromSchema(state sessionSchema) domain.Session {
	session := domain.Session{
		Plan:          domain.Plan(state.CurrentPlan),
		DailyCards:    state.DailyCards,
		MaxDailyCards: state.MaxDailyCards,
		ChatTimeUsed:  state.ChatTimeUsed,
		MaxChatTime:   state.MaxChatTime,
		HasSpunWheel:  state.HasSpunWheel,
		Screen:        domain.Screen(state.CurrentScreen),
		WheelPrize:    state.WheelPrize,
	}
	if date, err := domain.ParseDate(state.LastResetDate); err == nil {
		session.LastResetDate = date
	}

	return session
}
