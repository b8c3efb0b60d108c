package mongostore

import (
	"context"
	"untrashapi/internal/core"
	"untrashapi/internal/store"
	"untrashapi/pkg/schemas"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

func (s *Store) InsertGroup(ctx context.Context, group *schemas.Group) error {
	_, err := s.groups().InsertOne(ctx, group)
	return err
}

func (s *Store) GetGroup(ctx context.Context, groupId string) (*schemas.Group, error) {

	var group schemas.Group
	if err := s.groups().FindOne(ctx, bson.M{"group_id": groupId}).Decode(&group); err != nil {
		return nil, notFoundErr(err)
	}
	return &group, nil

}

func (s *Store) ListGroups(ctx context.Context, limit int64) ([]schemas.Group, error) {

	cursor, err := s.groups().Find(ctx, bson.M{},
		options.Find().SetSort(bson.M{"created_at": -1}).SetLimit(limit),
	)
	if err != nil {
		return nil, err
	}
	var groups []schemas.Group
	if err := cursor.All(ctx, &groups); err != nil {
		return nil, err
	}
	return groups, nil

}

func (s *Store) DeleteGroup(ctx context.Context, groupId string) error {

	res, err := s.groups().DeleteOne(ctx, bson.M{"group_id": groupId})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return core.ErrNotFound
	}
	return nil

}

func (s *Store) AddGroupMember(ctx context.Context, groupId string, userId string) error {

	_, err := s.groups().UpdateOne(ctx,
		bson.M{"group_id": groupId},
		bson.M{"$addToSet": bson.M{"member_ids": userId}},
	)
	return err

}

func (s *Store) RemoveGroupMember(ctx context.Context, groupId string, userId string) error {

	_, err := s.groups().UpdateOne(ctx,
		bson.M{"group_id": groupId},
		bson.M{"$pull": bson.M{"member_ids": userId, "admin_ids": userId}},
	)
	return err

}

// AdjustGroupPoints applies the delta with an independent zero floor on each
// group counter, atomically.
func (s *Store) AdjustGroupPoints(ctx context.Context, groupId string, delta int) error {

	floored := func(field string) bson.M {
		return bson.M{"$max": bson.A{0, bson.M{"$add": bson.A{"$" + field, delta}}}}
	}
	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"total_points":  floored("total_points"),
			"weekly_points": floored("weekly_points"),
		}}},
	}

	res, err := s.groups().UpdateOne(ctx, bson.M{"group_id": groupId}, pipeline)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return core.ErrNotFound
	}
	return nil

}

func (s *Store) WeeklyGroupRankings(ctx context.Context, limit int64) ([]store.RankedGroup, error) {

	cursor, err := s.groups().Find(ctx, bson.M{},
		options.Find().
			SetSort(bson.M{"weekly_points": -1}).
			SetLimit(limit).
			SetProjection(bson.M{"group_id": 1, "name": 1, "weekly_points": 1}),
	)
	if err != nil {
		return nil, err
	}
	var ranked []store.RankedGroup
	if err := cursor.All(ctx, &ranked); err != nil {
		return nil, err
	}
	return ranked, nil

}

func (s *Store) ResetGroupCounters(ctx context.Context) error {
	_, err := s.groups().UpdateMany(ctx, bson.M{}, bson.M{"$set": bson.M{"weekly_points": 0}})
	return err
}
