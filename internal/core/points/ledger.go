// Package points is the accounting core: signed deltas applied to a user's
// counters with a zero floor, cascaded to the user's groups, with medals
// re-derived from the resulting monthly total.
package points

import (
	"context"
	"errors"
	"fmt"
	"time"
	"untrashapi/internal/core"
	"untrashapi/internal/store"
	"untrashapi/pkg/schemas"

	"go.uber.org/zap"
)

type Ledger struct {
	users  store.UserStore
	groups store.GroupStore
	logger *zap.Logger
	now    func() time.Time
}

func NewLedger(users store.UserStore, groups store.GroupStore, logger *zap.Logger) *Ledger {
	return &Ledger{
		users:  users,
		groups: groups,
		logger: logger,
		now:    time.Now,
	}
}

// ApplyDelta credits or debits a user and cascades the same signed delta to
// every joined group. Each counter is floored at zero independently. A
// missing user is a logged no-op: points are a best-effort side effect of a
// transition that already happened. The ledger does not deduplicate; callers
// guard against double invocation with conditional state transitions.
func (l *Ledger) ApplyDelta(ctx context.Context, userId string, delta int) error {

	user, err := l.users.AdjustUserPoints(ctx, userId, delta)
	if errors.Is(err, core.ErrNotFound) {
		l.logger.Warn("points skipped, user not found",
			zap.String("user_id", userId),
			zap.Int("delta", delta),
		)
		return nil
	}
	if err != nil {
		return fmt.Errorf("in ApplyDelta:\n%w", err)
	}

	// re-derive medals from the new monthly total. The write is conditional
	// on the monthly value it was derived from: if it no longer matches, a
	// concurrent delta already reconciled against a newer total.
	period := PeriodKey(l.now())
	medals := Reconcile(user.Medals, period, user.MonthlyPoints)
	if ok, err := l.users.SetUserMedals(ctx, userId, user.MonthlyPoints, medals); err != nil {
		return fmt.Errorf("in ApplyDelta:\n%w", err)
	} else if !ok {
		l.logger.Debug("medal write superseded by concurrent update",
			zap.String("user_id", userId),
		)
	}

	for _, groupId := range user.JoinedGroups {
		if err := l.groups.AdjustGroupPoints(ctx, groupId, delta); err != nil && !errors.Is(err, core.ErrNotFound) {
			l.logger.Warn("group points not applied",
				zap.String("group_id", groupId),
				zap.Int("delta", delta),
				zap.Error(err),
			)
		}
	}

	return nil

}

// Override sets absolute counter values, each floored at zero, and either
// clears the medal map outright or re-derives the current period from the new
// monthly total. This bypasses the delta path entirely; admin resets only.
func (l *Ledger) Override(ctx context.Context, userId string, total, monthly, weekly int, clearMedals bool) (*schemas.User, error) {

	user, err := l.users.GetUser(ctx, userId)
	if err != nil {
		return nil, err
	}

	total = max(0, total)
	monthly = max(0, monthly)
	weekly = max(0, weekly)

	var medals map[string][]string
	if clearMedals {
		medals = map[string][]string{}
	} else {
		medals = Reconcile(user.Medals, PeriodKey(l.now()), monthly)
	}

	if err := l.users.OverrideUserPoints(ctx, userId, total, monthly, weekly, medals); err != nil {
		return nil, fmt.Errorf("in Override:\n%w", err)
	}

	user.TotalPoints = total
	user.MonthlyPoints = monthly
	user.WeeklyPoints = weekly
	user.Medals = medals
	return user, nil

}
