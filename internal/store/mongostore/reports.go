package mongostore

import (
	"context"
	"errors"
	"time"
	"untrashapi/internal/core"
	"untrashapi/internal/store"
	"untrashapi/pkg/schemas"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// synthetic/test entries excluded from the public feed
const testUrlPattern = `(placeholder|test|via\.placeholder|example\.com)`

func (s *Store) InsertReport(ctx context.Context, report *schemas.TrashReport) error {
	_, err := s.reports().InsertOne(ctx, report)
	return err
}

func (s *Store) GetReport(ctx context.Context, reportId string) (*schemas.TrashReport, error) {

	var report schemas.TrashReport
	if err := s.reports().FindOne(ctx, bson.M{"report_id": reportId}).Decode(&report); err != nil {
		return nil, notFoundErr(err)
	}
	return &report, nil

}

func (s *Store) ListReports(ctx context.Context, filter store.ReportFilter) ([]schemas.TrashReport, error) {

	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	} else {
		query["$or"] = bson.A{
			bson.M{"status": schemas.StatusReported},
			bson.M{
				"status":       schemas.StatusCollected,
				"collected_at": bson.M{"$gte": filter.CollectedSince},
			},
		}
	}
	if !filter.IncludeTest {
		query["image_url"] = bson.M{
			"$not": bson.Regex{Pattern: testUrlPattern, Options: "i"},
		}
	}

	cursor, err := s.reports().Find(ctx, query,
		options.Find().SetSort(bson.M{"created_at": -1}).SetLimit(filter.Limit),
	)
	if err != nil {
		return nil, err
	}
	var reports []schemas.TrashReport
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, err
	}
	return reports, nil

}

func (s *Store) UpdateReport(ctx context.Context, reportId string, fields map[string]any) error {

	res, err := s.reports().UpdateOne(ctx,
		bson.M{"report_id": reportId},
		bson.M{"$set": fields},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return core.ErrNotFound
	}
	return nil

}

// MarkReportCollected transitions reported -> collected only if the report is
// still in reported status.
func (s *Store) MarkReportCollected(ctx context.Context, reportId string, upd *store.CollectedUpdate) (bool, error) {

	res, err := s.reports().UpdateOne(ctx,
		bson.M{"report_id": reportId, "status": schemas.StatusReported},
		bson.M{"$set": bson.M{
			"status":               schemas.StatusCollected,
			"collector_id":         upd.CollectorId,
			"collected_at":         upd.CollectedAt,
			"collection_image_url": upd.CollectionImageUrl,
			"ai_verified":          upd.AiVerified,
			"admin_verified":       false,
			"points_awarded":       upd.PointsAwarded,
			"points_given":         false,
		}},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount == 1, nil

}

// ApproveCollection flips admin_verified and points_given in one conditional
// update, so a concurrent second approval cannot match.
func (s *Store) ApproveCollection(ctx context.Context, reportId string) (*schemas.TrashReport, bool, error) {

	var report schemas.TrashReport
	err := s.reports().FindOneAndUpdate(ctx,
		bson.M{
			"report_id":      reportId,
			"status":         schemas.StatusCollected,
			"admin_verified": false,
		},
		bson.M{"$set": bson.M{"admin_verified": true, "points_given": true}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&report)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return &report, true, nil

}

// RevertCollection rolls the report back to its pre-collection shape.
func (s *Store) RevertCollection(ctx context.Context, reportId string) (bool, error) {

	res, err := s.reports().UpdateOne(ctx,
		bson.M{"report_id": reportId, "status": schemas.StatusCollected},
		bson.M{
			"$set": bson.M{"status": schemas.StatusReported},
			"$unset": bson.M{
				"collector_id":         "",
				"collected_at":         "",
				"collection_image_url": "",
				"ai_verified":          "",
				"admin_verified":       "",
				"points_awarded":       "",
				"points_given":         "",
			},
		},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount == 1, nil

}

func (s *Store) DeleteReport(ctx context.Context, reportId string) (*schemas.TrashReport, error) {

	var report schemas.TrashReport
	if err := s.reports().FindOneAndDelete(ctx, bson.M{"report_id": reportId}).Decode(&report); err != nil {
		return nil, notFoundErr(err)
	}
	return &report, nil

}

func (s *Store) PendingCollections(ctx context.Context, limit int64) ([]schemas.TrashReport, error) {

	cursor, err := s.reports().Find(ctx,
		bson.M{"status": schemas.StatusCollected, "admin_verified": false},
		options.Find().SetSort(bson.M{"collected_at": -1}).SetLimit(limit),
	)
	if err != nil {
		return nil, err
	}
	var reports []schemas.TrashReport
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, err
	}
	return reports, nil

}

func (s *Store) CountPendingCollections(ctx context.Context) (int64, error) {
	return s.reports().CountDocuments(ctx, bson.M{
		"status":         schemas.StatusCollected,
		"admin_verified": false,
	})
}

func (s *Store) CountReportsSince(ctx context.Context, since time.Time) (int64, error) {
	return s.reports().CountDocuments(ctx, bson.M{
		"created_at": bson.M{"$gte": since},
	})
}

func (s *Store) CountCollectionsSince(ctx context.Context, since time.Time) (int64, error) {
	return s.reports().CountDocuments(ctx, bson.M{
		"status":       schemas.StatusCollected,
		"collected_at": bson.M{"$gte": since},
	})
}

func (s *Store) ReportedLocations(ctx context.Context, limit int64) ([]schemas.Location, error) {

	cursor, err := s.reports().Find(ctx,
		bson.M{"status": schemas.StatusReported},
		options.Find().SetLimit(limit).SetProjection(bson.M{"location": 1}),
	)
	if err != nil {
		return nil, err
	}
	var docs []struct {
		Location schemas.Location `bson:"location"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	locations := make([]schemas.Location, len(docs))
	for i, doc := range docs {
		locations[i] = doc.Location
	}
	return locations, nil

}
