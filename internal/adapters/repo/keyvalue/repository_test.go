package keyvalue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	filestore "github.com/bnema/mystic-tarot-cli/internal/adapters/kv/file"
	"github.com/bnema/mystic-tarot-cli/internal/domain"
	"github.com/bnema/mystic-tarot-cli/internal/ports"
	"github.com/bnema/mystic-tarot-cli/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testToday = domain.Date{Year: 2026, Month: time.February, Day: 14}

func TestRepositoryRoundTrip(t *testing.T) {
	t.Parallel()

	repo := NewRepository(filestore.NewStore(t.TempDir()))

	session := domain.NewSession(testToday)
	session.ApplyPlan(domain.PlanStandard)
	session.UseCard()
	session.AddChatTime(7)
	session.Spin()

	require.NoError(t, repo.Save(context.Background(), session))

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, session, got)
}

func TestRepositoryLoadMissingReturnsNotFound(t *testing.T) {
	t.Parallel()

	repo := NewRepository(filestore.NewStore(t.TempDir()))

	_, err := repo.Load(context.Background())
	require.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestRepositoryWritesStorageLayout(t *testing.T) {
	t.Parallel()

	kv := filestore.NewStore(t.TempDir())
	repo := NewRepository(kv)

	require.NoError(t, repo.Save(context.Background(), domain.NewSession(testToday)))

	raw, err := kv.Get(context.Background(), SessionStateKey)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &fields))
	assert.Equal(t, "demo", fields["currentPlan"])
	assert.EqualValues(t, 0, fields["dailyCards"])
	assert.EqualValues(t, 1, fields["maxDailyCards"])
	assert.EqualValues(t, 0, fields["chatTimeUsed"])
	assert.EqualValues(t, 10, fields["maxChatTime"])
	assert.Equal(t, false, fields["hasSpunWheel"])
	assert.Equal(t, "wheel", fields["currentScreen"])
	assert.Contains(t, fields, "wheelPrize")
	assert.Nil(t, fields["wheelPrize"])
	assert.Equal(t, "2026-02-14", fields["lastResetDate"])

	lastReset, err := kv.Get(context.Background(), LastDailyResetKey)
	require.NoError(t, err)
	assert.Equal(t, "2026-02-14", lastReset)
}

func TestRepositoryLoadFallsBackToLastDailyResetKey(t *testing.T) {
	t.Parallel()

	kv := filestore.NewStore(t.TempDir())
	require.NoError(t, kv.Put(context.Background(), SessionStateKey,
		`{"currentPlan":"premium","dailyCards":2,"maxDailyCards":5,"chatTimeUsed":15,"maxChatTime":60,"hasSpunWheel":true,"currentScreen":"chat","wheelPrize":"Uma carta de tarot grátis!"}`))
	require.NoError(t, kv.Put(context.Background(), LastDailyResetKey, "Fri Feb 13 2026"))

	got, err := NewRepository(kv).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.Session{
		Plan:          domain.PlanPremium,
		DailyCards:    2,
		MaxDailyCards: 5,
		ChatTimeUsed:  15,
		MaxChatTime:   60,
		HasSpunWheel:  true,
		Screen:        domain.ScreenChat,
		WheelPrize:    domain.WheelPrize,
		LastResetDate: domain.Date{Year: 2026, Month: time.February, Day: 13},
	}, got)
}

func TestRepositoryLoadWithoutAnyDateLeavesZeroDate(t *testing.T) {
	t.Parallel()

	kv := filestore.NewStore(t.TempDir())
	require.NoError(t, kv.Put(context.Background(), SessionStateKey, `{"currentPlan":"demo","currentScreen":"wheel","wheelPrize":null}`))

	got, err := NewRepository(kv).Load(context.Background())
	require.NoError(t, err)
	assert.True(t, got.LastResetDate.IsZero())
}

func TestRepositoryLoadCorruptStateReturnsDecodeError(t *testing.T) {
	t.Parallel()

	kv := filestore.NewStore(t.TempDir())
	require.NoError(t, kv.Put(context.Background(), SessionStateKey, `{"currentPlan":`))

	_, err := NewRepository(kv).Load(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrSessionNotFound)
	assert.ErrorContains(t, err, "decode session state")
}

func TestRepositorySaveStopsWhenStateWriteFails(t *testing.T) {
	t.Parallel()

	kv := mocks.NewMockKeyValueStore(t)
	putErr := errors.New("quota exceeded")
	kv.EXPECT().Put(mock.Anything, SessionStateKey, mock.Anything).Return(putErr)

	err := NewRepository(kv).Save(context.Background(), domain.NewSession(testToday))
	require.ErrorIs(t, err, putErr)
	assert.ErrorContains(t, err, "write session state")
}

func TestRepositoryLoadPropagatesStoreFailure(t *testing.T) {
	t.Parallel()

	kv := mocks.NewMockKeyValueStore(t)
	getErr := errors.New("permission denied")
	kv.EXPECT().Get(mock.Anything, SessionStateKey).Return("", getErr)

	_, err := NewRepository(kv).Load(context.Background())
	require.ErrorIs(t, err, getErr)
	assert.NotErrorIs(t, err, ports.ErrKeyNotFound)
}
