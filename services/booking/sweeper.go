package booking

import (
	"context"
	"time"

	"velour/utils"

	"go.uber.org/zap"
)

// expiryCutoff renders the sweep boundary for a given instant: bookings dated
// before the returned date, or dated on it with a slot before the returned
// slot, have fully elapsed.
func expiryCutoff(now time.Time, loc *time.Location) (date, slot string) {
	local := now.In(loc)
	return local.Format("2006-01-02"), local.Format("15:04")
}

// Sweep deletes every booking whose slot has elapsed in the business timezone.
// It is called on a fixed schedule; a failed cycle is reported to the caller,
// logged, and retried on the next scheduled run with no carried state.
func (s *DefaultBookingService) Sweep(ctx context.Context) (int64, error) {
	today, nowSlot := expiryCutoff(s.now(), s.Loc)

	deleted, err := s.Repo.DeleteExpired(ctx, today, nowSlot)
	if err != nil {
		utils.GetLogger().Error("expired booking sweep failed", zap.Error(err))
		return 0, err
	}
	if deleted > 0 {
		utils.GetLogger().Info("expired bookings removed",
			zap.Int64("count", deleted),
			zap.String("cutoffDate", today),
			zap.String("cutoffSlot", nowSlot),
		)
	}
	return deleted, nil
}
