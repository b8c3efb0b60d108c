package mongostore

import (
	"context"
	"time"
	"untrashapi/internal/core"
	"untrashapi/pkg/schemas"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

func (s *Store) InsertEvent(ctx context.Context, event *schemas.GroupEvent) error {
	_, err := s.events().InsertOne(ctx, event)
	return err
}

func (s *Store) GetEvent(ctx context.Context, eventId string) (*schemas.GroupEvent, error) {

	var event schemas.GroupEvent
	if err := s.events().FindOne(ctx, bson.M{"event_id": eventId}).Decode(&event); err != nil {
		return nil, notFoundErr(err)
	}
	return &event, nil

}

func (s *Store) GroupEvents(ctx context.Context, groupId string, limit int64) ([]schemas.GroupEvent, error) {

	cursor, err := s.events().Find(ctx,
		bson.M{"group_id": groupId},
		options.Find().SetSort(bson.M{"event_date": 1}).SetLimit(limit),
	)
	if err != nil {
		return nil, err
	}
	var events []schemas.GroupEvent
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil

}

func (s *Store) UpcomingEvents(ctx context.Context, groupIds []string, after time.Time, limit int64) ([]schemas.GroupEvent, error) {

	if len(groupIds) == 0 {
		return nil, nil
	}
	cursor, err := s.events().Find(ctx,
		bson.M{
			"group_id":   bson.M{"$in": groupIds},
			"event_date": bson.M{"$gte": after},
		},
		options.Find().SetSort(bson.M{"event_date": 1}).SetLimit(limit),
	)
	if err != nil {
		return nil, err
	}
	var events []schemas.GroupEvent
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil

}

func (s *Store) DeleteEvent(ctx context.Context, eventId string) error {

	res, err := s.events().DeleteOne(ctx, bson.M{"event_id": eventId})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return core.ErrNotFound
	}
	return nil

}

func (s *Store) DeleteGroupEvents(ctx context.Context, groupId string) error {
	_, err := s.events().DeleteMany(ctx, bson.M{"group_id": groupId})
	return err
}
