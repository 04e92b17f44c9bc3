package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpiryCutoff(t *testing.T) {
	nairobi := time.FixedZone("EAT", 3*3600)

	// 23:30 UTC on the 14th is already 02:30 on the 15th in Nairobi.
	now := time.Date(2026, 9, 14, 23, 30, 0, 0, time.UTC)
	date, slot := expiryCutoff(now, nairobi)
	assert.Equal(t, "2026-09-15", date)
	assert.Equal(t, "02:30", slot)

	// Slots render zero-padded so string comparison stays chronological.
	now = time.Date(2026, 9, 15, 6, 5, 0, 0, nairobi)
	date, slot = expiryCutoff(now, nairobi)
	assert.Equal(t, "2026-09-15", date)
	assert.Equal(t, "06:05", slot)
	assert.Less(t, slot, "10:00")
}

func TestSweepUsesBusinessTimezoneCutoff(t *testing.T) {
	nairobi := time.FixedZone("EAT", 3*3600)
	repo := newFakeBookingRepo()

	var gotDate, gotSlot string
	repo.deleteExpired = func(ctx context.Context, today, nowSlot string) (int64, error) {
		gotDate, gotSlot = today, nowSlot
		return 3, nil
	}

	svc := &DefaultBookingService{
		Repo: repo,
		Loc:  nairobi,
		Now: func() time.Time {
			return time.Date(2026, 9, 14, 23, 30, 0, 0, time.UTC)
		},
	}

	deleted, err := svc.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)
	assert.Equal(t, "2026-09-15", gotDate)
	assert.Equal(t, "02:30", gotSlot)
}
