package mongostore

import (
	"context"
	"errors"
	"time"
	"untrashapi/pkg/schemas"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

func (s *Store) InsertArea(ctx context.Context, area *schemas.AreaCleaning) error {
	_, err := s.areas().InsertOne(ctx, area)
	return err
}

func (s *Store) GetArea(ctx context.Context, areaId string) (*schemas.AreaCleaning, error) {

	var area schemas.AreaCleaning
	if err := s.areas().FindOne(ctx, bson.M{"area_id": areaId}).Decode(&area); err != nil {
		return nil, notFoundErr(err)
	}
	return &area, nil

}

// ApproveArea only matches while the claim is still unapproved.
func (s *Store) ApproveArea(ctx context.Context, areaId string) (*schemas.AreaCleaning, bool, error) {

	var area schemas.AreaCleaning
	err := s.areas().FindOneAndUpdate(ctx,
		bson.M{"area_id": areaId, "admin_approved": false},
		bson.M{"$set": bson.M{"admin_approved": true, "ai_verified": true}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&area)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return &area, true, nil

}

func (s *Store) DeleteArea(ctx context.Context, areaId string) (bool, error) {

	res, err := s.areas().DeleteOne(ctx, bson.M{"area_id": areaId})
	if err != nil {
		return false, err
	}
	return res.DeletedCount == 1, nil

}

func (s *Store) ActiveAreas(ctx context.Context, now time.Time, limit int64) ([]schemas.AreaCleaning, error) {
	return s.findAreas(ctx, bson.M{
		"expires_at":     bson.M{"$gt": now},
		"admin_approved": true,
	}, limit)
}

func (s *Store) UnexpiredAreas(ctx context.Context, now time.Time, limit int64) ([]schemas.AreaCleaning, error) {
	return s.findAreas(ctx, bson.M{
		"expires_at": bson.M{"$gt": now},
	}, limit)
}

func (s *Store) PendingAreas(ctx context.Context, limit int64) ([]schemas.AreaCleaning, error) {

	cursor, err := s.areas().Find(ctx,
		bson.M{"admin_approved": false},
		options.Find().SetSort(bson.M{"created_at": -1}).SetLimit(limit),
	)
	if err != nil {
		return nil, err
	}
	var areas []schemas.AreaCleaning
	if err := cursor.All(ctx, &areas); err != nil {
		return nil, err
	}
	return areas, nil

}

func (s *Store) CountPendingAreas(ctx context.Context) (int64, error) {
	return s.areas().CountDocuments(ctx, bson.M{"admin_approved": false})
}

func (s *Store) findAreas(ctx context.Context, query bson.M, limit int64) ([]schemas.AreaCleaning, error) {

	cursor, err := s.areas().Find(ctx, query, options.Find().SetLimit(limit))
	if err != nil {
		return nil, err
	}
	var areas []schemas.AreaCleaning
	if err := cursor.All(ctx, &areas); err != nil {
		return nil, err
	}
	return areas, nil

}
