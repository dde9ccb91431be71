package usage_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sirwalterjones/sessionremind/internal/repository/memory"
	"github.com/sirwalterjones/sessionremind/internal/service/usage"
)

func TestIncrementAndRead(t *testing.T) {
	ctx := context.Background()
	svc := usage.NewService(memory.NewUsageStore(), time.UTC)

	require.NoError(t, svc.Increment(ctx, "owner-1"))
	require.NoError(t, svc.Increment(ctx, "owner-1"))

	u, err := svc.Current(ctx, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, 2, u.SentCount)
}

func TestPeriodsRollOverMonthly(t *testing.T) {
	ctx := context.Background()
	svc := usage.NewService(memory.NewUsageStore(), time.UTC)

	january := time.Date(2025, 1, 31, 23, 0, 0, 0, time.UTC)
	february := time.Date(2025, 2, 1, 1, 0, 0, 0, time.UTC)

	svc.WithClock(func() time.Time { return january })
	require.NoError(t, svc.Increment(ctx, "owner-1"))

	svc.WithClock(func() time.Time { return february })
	require.NoError(t, svc.Increment(ctx, "owner-1"))

	u, err := svc.Current(ctx, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, "2025-02", u.Period)
	assert.Equal(t, 1, u.SentCount)
}

func TestUnknownOwnerReadsZero(t *testing.T) {
	svc := usage.NewService(memory.NewUsageStore(), time.UTC)

	u, err := svc.Current(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Equal(t, 0, u.SentCount)
}
