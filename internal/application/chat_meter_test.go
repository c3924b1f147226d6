package application

import (
	"context"
	"testing"
	"time"

	"github.com/bnema/mystic-tarot-cli/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatMeterRecordsOneMinutePerSixtyTicksUntilQuotaEnds(t *testing.T) {
	store, _ := newLoadedStore(t, nil)

	var progress []ChatProgress
	meter := newTestMeter(store, 1000, WithProgress(func(p ChatProgress) {
		progress = append(progress, p)
	}))

	result := meter.Run(context.Background(), 0)

	assert.True(t, result.Exhausted)
	assert.Equal(t, 600, result.Elapsed)
	assert.Equal(t, 10, result.MinutesRecorded)
	assert.Equal(t, 10, store.Snapshot().ChatTimeUsed)

	_, err := uuid.Parse(result.SessionID)
	require.NoError(t, err)

	require.Len(t, progress, 600)
	assert.Equal(t, 599, progress[0].RemainingSeconds)
	assert.Equal(t, 540, progress[59].RemainingSeconds)
	assert.Equal(t, 1, progress[59].MinutesRecorded)
	assert.Equal(t, 0, progress[599].RemainingSeconds)
}

func TestChatMeterStopsWhenBudgetSpent(t *testing.T) {
	store, _ := newLoadedStore(t, nil)
	store.UpdatePlan(context.Background(), domain.PlanStandard)

	result := newTestMeter(store, 1000).Run(context.Background(), 2)

	assert.False(t, result.Exhausted)
	assert.Equal(t, 120, result.Elapsed)
	assert.Equal(t, 2, result.MinutesRecorded)
	assert.Equal(t, 2, store.Snapshot().ChatTimeUsed)
}

func TestChatMeterPartialMinuteIsNotRecorded(t *testing.T) {
	store, _ := newLoadedStore(t, nil)
	ctx, cancel := context.WithCancel(context.Background())

	ticks := make(chan time.Time, 59)
	for range 59 {
		ticks <- testNow
	}

	meter := NewChatMeter(store, WithProgress(func(p ChatProgress) {
		if p.Elapsed == 59 {
			cancel()
		}
	}))
	meter.newTicker = func(time.Duration) (<-chan time.Time, func()) {
		return ticks, func() {}
	}

	result := meter.Run(ctx, 0)

	assert.Equal(t, 59, result.Elapsed)
	assert.Equal(t, 0, result.MinutesRecorded)
	assert.Equal(t, 0, store.Snapshot().ChatTimeUsed)
}

func TestChatMeterCountsOnlyChargedMinutes(t *testing.T) {
	store, _ := newLoadedStore(t, nil)
	ctx := context.Background()

	meter := newTestMeter(store, 60, WithProgress(func(p ChatProgress) {
		if p.Elapsed == 59 {
			// another screen spends the rest of the quota mid-minute
			store.UseChatTime(ctx, 10)
		}
	}))

	result := meter.Run(ctx, 0)

	assert.True(t, result.Exhausted)
	assert.Equal(t, 60, result.Elapsed)
	assert.Zero(t, result.MinutesRecorded)
	assert.Equal(t, 10, store.Snapshot().ChatTimeUsed)
}

func TestChatMeterReturnsImmediatelyWhenQuotaAlreadyUsed(t *testing.T) {
	store, _ := newLoadedStore(t, nil)
	store.UseChatTime(context.Background(), 10)

	result := newTestMeter(store, 0).Run(context.Background(), 0)

	assert.True(t, result.Exhausted)
	assert.Zero(t, result.Elapsed)
}

func TestChatMeterCancelledContextEndsSession(t *testing.T) {
	store, _ := newLoadedStore(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := newTestMeter(store, 0).Run(ctx, 0)

	assert.False(t, result.Exhausted)
	assert.Zero(t, result.Elapsed)
	assert.Zero(t, store.Snapshot().ChatTimeUsed)
}

func newTestMeter(store *StateStore, ticks int, opts ...ChatMeterOption) *ChatMeter {
	ch := make(chan time.Time, ticks)
	for range ticks {
		ch <- testNow
	}

	meter := NewChatMeter(store, opts...)
	meter.newTicker = func(time.Duration) (<-chan time.Time, func()) {
		return ch, func() {}
	}
	return meter
}
