// Package areas is the area-cleaning state machine: a claim is submitted
// unapproved, then either approved (points paid, terminal) or rejected
// (deleted). Approved claims count as clean zones until they expire.
package areas

import (
	"context"
	"fmt"
	"time"
	"untrashapi/internal/core"
	"untrashapi/internal/core/points"
	"untrashapi/internal/store"
	"untrashapi/pkg/config"
	"untrashapi/pkg/schemas"
	"untrashapi/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	areas  store.AreaStore
	ledger *points.Ledger
	logger *zap.Logger
	now    func() time.Time
	newId  func() string
}

func NewService(areas store.AreaStore, ledger *points.Ledger, logger *zap.Logger) *Service {
	return &Service{
		areas:  areas,
		ledger: ledger,
		logger: logger,
		now:    time.Now,
		newId:  func() string { return utils.NewId("area") },
	}
}

// Reward computes the points for a cleaned area: rate per 100 square meters,
// floored at a minimum so tiny areas cannot be gamed for cheap submissions.
func Reward(areaSize float64) int {

	reward := int(areaSize / 100 * config.AREA_RATE_PER_100M2)
	return max(config.AREA_MIN_REWARD, reward)

}

// Submit records an area-cleaning claim. Points are computed now and fixed;
// they are paid only on admin approval. The clean-zone window starts at
// submission regardless of approval state.
func (s *Service) Submit(ctx context.Context, userId string, center schemas.Location, polygon [][]float64, areaSize float64, imageUrl string) (*schemas.AreaCleaning, error) {

	now := s.now().UTC()
	area := &schemas.AreaCleaning{
		AreaId:         s.newId(),
		UserId:         userId,
		CenterLocation: center,
		PolygonCoords:  polygon,
		AreaSize:       areaSize,
		ImageUrl:       imageUrl,
		AiVerified:     false,
		AdminApproved:  false,
		PointsAwarded:  Reward(areaSize),
		ExpiresAt:      now.Add(config.CLEAN_ZONE_TTL),
		CreatedAt:      now,
	}

	if err := s.areas.InsertArea(ctx, area); err != nil {
		return nil, fmt.Errorf("in Submit:\n%w", err)
	}
	return area, nil

}

// Approve marks a claim approved and pays the stored points. The conditional
// update makes a second approval fail rather than pay twice.
func (s *Service) Approve(ctx context.Context, areaId string) (*schemas.AreaCleaning, error) {

	updated, ok, err := s.areas.ApproveArea(ctx, areaId)
	if err != nil {
		return nil, fmt.Errorf("in Approve:\n%w", err)
	}
	if !ok {
		if _, err := s.areas.GetArea(ctx, areaId); err != nil {
			return nil, err
		}
		return nil, core.ErrAlreadyApproved
	}

	if err := s.ledger.ApplyDelta(ctx, updated.UserId, updated.PointsAwarded); err != nil {
		s.logger.Warn("area reward not applied",
			zap.String("area_id", areaId),
			zap.Error(err),
		)
	}

	return updated, nil

}

// Reject deletes the claim outright. No points ever moved, so there is
// nothing to reverse.
func (s *Service) Reject(ctx context.Context, areaId string) error {

	ok, err := s.areas.DeleteArea(ctx, areaId)
	if err != nil {
		return fmt.Errorf("in Reject:\n%w", err)
	}
	if !ok {
		return core.ErrNotFound
	}
	return nil

}

// ActiveZones returns claims currently visible as clean zones: admin approved
// and unexpired. Unapproved claims never appear regardless of their timer.
func (s *Service) ActiveZones(ctx context.Context) ([]schemas.AreaCleaning, error) {
	return s.areas.ActiveAreas(ctx, s.now().UTC(), 1000)
}
