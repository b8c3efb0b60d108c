// Package reports is the trash report state machine:
// reported -> collected -> verified, with admin reject looping back to
// reported and admin delete reversing any points already paid.
package reports

import (
	"context"
	"errors"
	"fmt"
	"time"
	"untrashapi/internal/core"
	"untrashapi/internal/core/points"
	"untrashapi/internal/store"
	"untrashapi/internal/vision"
	"untrashapi/pkg/config"
	"untrashapi/pkg/schemas"
	"untrashapi/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	reports store.ReportStore
	ledger  *points.Ledger
	oracle  vision.Oracle
	logger  *zap.Logger
	now     func() time.Time
	newId   func() string
}

func NewService(reports store.ReportStore, ledger *points.Ledger, oracle vision.Oracle, logger *zap.Logger) *Service {
	return &Service{
		reports: reports,
		ledger:  ledger,
		oracle:  oracle,
		logger:  logger,
		now:     time.Now,
		newId:   func() string { return utils.NewId("trash") },
	}
}

// Deduction itemizes a point reversal made by Delete.
type Deduction struct {
	UserId string `json:"user_id"`
	Points int    `json:"points"`
	Role   string `json:"role"`
}

// trashVisible queries the oracle and swallows failures: the outcome defaults
// to "not visible" on error so the enclosing transition never blocks on it.
func (s *Service) trashVisible(ctx context.Context, imageUrl string) bool {

	visible, err := s.oracle.TrashVisible(ctx, imageUrl)
	if err != nil {
		s.logger.Warn("image verification failed", zap.Error(err))
		return false
	}
	return visible

}

// Report creates a report and immediately pays the reporter the flat reward.
// Reporting is the only transition paid without admin approval: the trust
// cost of a report is low, a collection claim is not.
func (s *Service) Report(ctx context.Context, reporterId string, location schemas.Location, imageUrl string, thumbnailUrl string) (*schemas.TrashReport, error) {

	report := &schemas.TrashReport{
		ReportId:      s.newId(),
		Location:      location,
		ImageUrl:      imageUrl,
		ThumbnailUrl:  thumbnailUrl,
		Status:        schemas.StatusReported,
		ReporterId:    reporterId,
		AiVerified:    s.trashVisible(ctx, imageUrl),
		PointsAwarded: config.REPORT_REWARD,
		CreatedAt:     s.now().UTC(),
	}

	if err := s.reports.InsertReport(ctx, report); err != nil {
		return nil, fmt.Errorf("in Report:\n%w", err)
	}

	if err := s.ledger.ApplyDelta(ctx, reporterId, config.REPORT_REWARD); err != nil {
		s.logger.Warn("report reward not applied",
			zap.String("report_id", report.ReportId),
			zap.Error(err),
		)
	}

	return report, nil

}

// Collect marks a report as collected with a proof photo. The oracle is
// consulted with inverted semantics: trash still visible means the collection
// is not verified. No points move until an admin approves.
func (s *Service) Collect(ctx context.Context, reportId string, collectorId string, proofImageUrl string) (*schemas.TrashReport, error) {

	report, err := s.reports.GetReport(ctx, reportId)
	if err != nil {
		return nil, err
	}
	if report.Status == schemas.StatusCollected {
		return nil, core.ErrAlreadyCollected
	}

	aiVerified := !s.trashVisible(ctx, proofImageUrl)

	pendingPoints := config.COLLECT_REWARD_UNVERIFIED
	if aiVerified {
		pendingPoints = config.COLLECT_REWARD_VERIFIED
	}

	collectedAt := s.now().UTC()
	upd := &store.CollectedUpdate{
		CollectorId:        collectorId,
		CollectedAt:        collectedAt,
		CollectionImageUrl: proofImageUrl,
		AiVerified:         aiVerified,
		PointsAwarded:      pendingPoints,
	}

	ok, err := s.reports.MarkReportCollected(ctx, reportId, upd)
	if err != nil {
		return nil, fmt.Errorf("in Collect:\n%w", err)
	}
	if !ok {
		// lost a race since the read above
		if _, err := s.reports.GetReport(ctx, reportId); errors.Is(err, core.ErrNotFound) {
			return nil, core.ErrNotFound
		}
		return nil, core.ErrAlreadyCollected
	}

	report.Status = schemas.StatusCollected
	report.CollectorId = collectorId
	report.CollectedAt = &collectedAt
	report.CollectionImageUrl = proofImageUrl
	report.AiVerified = aiVerified
	report.AdminVerified = false
	report.PointsAwarded = pendingPoints
	report.PointsGiven = false
	return report, nil

}

// Approve verifies a collection and pays the collector the stored pending
// amount. The transition is a conditional update, so a second approval fails
// instead of paying twice.
func (s *Service) Approve(ctx context.Context, reportId string) (*schemas.TrashReport, error) {

	updated, ok, err := s.reports.ApproveCollection(ctx, reportId)
	if err != nil {
		return nil, fmt.Errorf("in Approve:\n%w", err)
	}
	if !ok {
		report, err := s.reports.GetReport(ctx, reportId)
		if err != nil {
			return nil, err
		}
		if report.Status != schemas.StatusCollected {
			return nil, core.ErrNotCollected
		}
		return nil, core.ErrAlreadyVerified
	}

	if updated.CollectorId != "" {
		if err := s.ledger.ApplyDelta(ctx, updated.CollectorId, updated.PointsAwarded); err != nil {
			s.logger.Warn("collection reward not applied",
				zap.String("report_id", reportId),
				zap.Error(err),
			)
		}
	}

	return updated, nil

}

// Reject reverts a collected report to its post-report shape, clearing every
// collection field. No points were paid, so none move.
func (s *Service) Reject(ctx context.Context, reportId string) error {

	ok, err := s.reports.RevertCollection(ctx, reportId)
	if err != nil {
		return fmt.Errorf("in Reject:\n%w", err)
	}
	if !ok {
		if _, err := s.reports.GetReport(ctx, reportId); errors.Is(err, core.ErrNotFound) {
			return core.ErrNotFound
		}
		return core.ErrNotCollected
	}
	return nil

}

// Delete removes a report and reverses whatever was paid: always the
// reporter's flat reward, plus the collector's stored amount when
// points_given is set. Deductions use the same zero floor and group cascade
// as credits.
func (s *Service) Delete(ctx context.Context, reportId string) ([]Deduction, error) {

	report, err := s.reports.DeleteReport(ctx, reportId)
	if err != nil {
		return nil, err
	}

	var deductions []Deduction

	if report.ReporterId != "" {
		if err := s.ledger.ApplyDelta(ctx, report.ReporterId, -config.REPORT_REWARD); err != nil {
			s.logger.Warn("reporter deduction not applied", zap.Error(err))
		}
		deductions = append(deductions, Deduction{
			UserId: report.ReporterId,
			Points: config.REPORT_REWARD,
			Role:   "reporter",
		})
	}

	if report.CollectorId != "" && report.PointsGiven && report.PointsAwarded > 0 {
		if err := s.ledger.ApplyDelta(ctx, report.CollectorId, -report.PointsAwarded); err != nil {
			s.logger.Warn("collector deduction not applied", zap.Error(err))
		}
		deductions = append(deductions, Deduction{
			UserId: report.CollectorId,
			Points: report.PointsAwarded,
			Role:   "collector",
		})
	}

	return deductions, nil

}

func (s *Service) Get(ctx context.Context, reportId string) (*schemas.TrashReport, error) {
	return s.reports.GetReport(ctx, reportId)
}

// List returns the public feed. Without an explicit status it shows all
// reported items plus collected items from the trailing window, so the feed
// does not accumulate old completed work. Synthetic/test entries are excluded
// unless asked for.
func (s *Service) List(ctx context.Context, status string, includeTest bool, limit int64) ([]schemas.TrashReport, error) {

	if limit <= 0 {
		limit = config.DEFAULT_LIMIT
	}
	filter := store.ReportFilter{
		Status:      status,
		IncludeTest: includeTest,
		Limit:       limit,
	}
	if status == "" {
		filter.CollectedSince = s.now().UTC().Add(-config.COLLECTED_FEED_WINDOW)
	}
	return s.reports.ListReports(ctx, filter)

}

// AdminUpdate patches the admin-editable fields of a report.
func (s *Service) AdminUpdate(ctx context.Context, reportId string, fields map[string]any) error {

	if _, err := s.reports.GetReport(ctx, reportId); err != nil {
		return err
	}
	if len(fields) == 0 {
		return nil
	}
	if err := s.reports.UpdateReport(ctx, reportId, fields); err != nil {
		return fmt.Errorf("in AdminUpdate:\n%w", err)
	}
	return nil

}
