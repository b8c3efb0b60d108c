package mongostore

import (
	"context"
	"untrashapi/pkg/schemas"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

func (s *Store) InsertNotification(ctx context.Context, notification *schemas.Notification) error {
	_, err := s.notifications().InsertOne(ctx, notification)
	return err
}

func (s *Store) UserNotifications(ctx context.Context, userId string, limit int64) ([]schemas.Notification, error) {

	cursor, err := s.notifications().Find(ctx,
		bson.M{"user_id": userId},
		options.Find().SetSort(bson.M{"created_at": -1}).SetLimit(limit),
	)
	if err != nil {
		return nil, err
	}
	var notifications []schemas.Notification
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil

}

func (s *Store) GetNotificationPreferences(ctx context.Context, userId string) (*schemas.NotificationPreferences, error) {

	var prefs schemas.NotificationPreferences
	if err := s.preferences().FindOne(ctx, bson.M{"user_id": userId}).Decode(&prefs); err != nil {
		return nil, notFoundErr(err)
	}
	return &prefs, nil

}

// SaveNotificationPreferences upserts a partial update. On first write the
// untouched fields are seeded from the defaults, so a later read never sees
// zero values for preferences the user did not set.
func (s *Store) SaveNotificationPreferences(ctx context.Context, userId string, fields map[string]any) error {

	defaults := schemas.DefaultNotificationPreferences(userId)
	onInsert := bson.M{"user_id": userId}
	seed := map[string]bool{
		"email_notifications":  defaults.EmailNotifications,
		"push_notifications":   defaults.PushNotifications,
		"notify_new_events":    defaults.NotifyNewEvents,
		"notify_nearby_trash":  defaults.NotifyNearbyTrash,
		"notify_group_updates": defaults.NotifyGroupUpdates,
	}
	for key, value := range seed {
		if _, ok := fields[key]; !ok {
			onInsert[key] = value
		}
	}

	_, err := s.preferences().UpdateOne(ctx,
		bson.M{"user_id": userId},
		bson.M{"$set": fields, "$setOnInsert": onInsert},
		options.UpdateOne().SetUpsert(true),
	)
	return err

}
