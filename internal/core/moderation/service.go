// Package moderation aggregates the pending work from both lifecycles for
// admin review and exposes the absolute point override. Capability checks
// (is_admin) live in the HTTP middleware; this package assumes they passed.
package moderation

import (
	"context"
	"errors"
	"fmt"
	"untrashapi/internal/core"
	"untrashapi/internal/core/points"
	"untrashapi/internal/store"
	"untrashapi/pkg/schemas"

	"go.uber.org/zap"
)

type Service struct {
	users   store.UserStore
	reports store.ReportStore
	areas   store.AreaStore
	ledger  *points.Ledger
	logger  *zap.Logger
}

func NewService(users store.UserStore, reports store.ReportStore, areas store.AreaStore, ledger *points.Ledger, logger *zap.Logger) *Service {
	return &Service{
		users:   users,
		reports: reports,
		areas:   areas,
		ledger:  ledger,
		logger:  logger,
	}
}

type PendingCollection struct {
	schemas.TrashReport
	CollectorName  string `json:"collector_name,omitempty"`
	CollectorEmail string `json:"collector_email,omitempty"`
}

type PendingArea struct {
	schemas.AreaCleaning
	UserName  string `json:"user_name,omitempty"`
	UserEmail string `json:"user_email,omitempty"`
}

// PendingCounts is derived, never stored: Total is recomputed from the two
// underlying collections on every call.
type PendingCounts struct {
	PendingCollections int64 `json:"pending_collections"`
	PendingAreas       int64 `json:"pending_areas"`
	TotalPending       int64 `json:"total_pending"`
}

// PendingCollections lists collected-but-unverified reports enriched with the
// collector's display identity.
func (s *Service) PendingCollections(ctx context.Context) ([]PendingCollection, error) {

	reports, err := s.reports.PendingCollections(ctx, 100)
	if err != nil {
		return nil, fmt.Errorf("in PendingCollections:\n%w", err)
	}

	pending := make([]PendingCollection, len(reports))
	for i, report := range reports {
		pending[i] = PendingCollection{TrashReport: report}
		if report.CollectorId == "" {
			continue
		}
		collector, err := s.users.GetUser(ctx, report.CollectorId)
		if err != nil {
			if !errors.Is(err, core.ErrNotFound) {
				s.logger.Warn("collector lookup failed", zap.Error(err))
			}
			continue
		}
		pending[i].CollectorName = collector.Name
		pending[i].CollectorEmail = collector.Email
	}

	return pending, nil

}

// PendingAreas lists unapproved area claims enriched with the submitter's
// display identity.
func (s *Service) PendingAreas(ctx context.Context) ([]PendingArea, error) {

	areas, err := s.areas.PendingAreas(ctx, 100)
	if err != nil {
		return nil, fmt.Errorf("in PendingAreas:\n%w", err)
	}

	pending := make([]PendingArea, len(areas))
	for i, area := range areas {
		pending[i] = PendingArea{AreaCleaning: area}
		submitter, err := s.users.GetUser(ctx, area.UserId)
		if err != nil {
			if !errors.Is(err, core.ErrNotFound) {
				s.logger.Warn("submitter lookup failed", zap.Error(err))
			}
			continue
		}
		pending[i].UserName = submitter.Name
		pending[i].UserEmail = submitter.Email
	}

	return pending, nil

}

func (s *Service) Counts(ctx context.Context) (*PendingCounts, error) {

	collections, err := s.reports.CountPendingCollections(ctx)
	if err != nil {
		return nil, fmt.Errorf("in Counts:\n%w", err)
	}
	areas, err := s.areas.CountPendingAreas(ctx)
	if err != nil {
		return nil, fmt.Errorf("in Counts:\n%w", err)
	}

	return &PendingCounts{
		PendingCollections: collections,
		PendingAreas:       areas,
		TotalPending:       collections + areas,
	}, nil

}

// ResetPoints writes absolute counter values for a user, floored at zero,
// and clears or re-derives medals.
func (s *Service) ResetPoints(ctx context.Context, userId string, total, monthly, weekly int, clearMedals bool) (*schemas.User, error) {
	return s.ledger.Override(ctx, userId, total, monthly, weekly, clearMedals)
}
