package schemas

import (
	"time"
)

type Notification struct {
	UserId    string    `bson:"user_id" json:"user_id"`
	Type      string    `bson:"type" json:"type"`
	Title     string    `bson:"title" json:"title"`
	Message   string    `bson:"message" json:"message"`
	Read      bool      `bson:"read" json:"read"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

type NotificationPreferences struct {
	UserId             string `bson:"user_id" json:"user_id"`
	EmailNotifications bool   `bson:"email_notifications" json:"email_notifications"`
	PushNotifications  bool   `bson:"push_notifications" json:"push_notifications"`
	NotifyNewEvents    bool   `bson:"notify_new_events" json:"notify_new_events"`
	NotifyNearbyTrash  bool   `bson:"notify_nearby_trash" json:"notify_nearby_trash"`
	NotifyGroupUpdates bool   `bson:"notify_group_updates" json:"notify_group_updates"`
}

// DefaultNotificationPreferences mirrors the defaults applied when a user has
// never saved preferences.
func DefaultNotificationPreferences(userId string) *NotificationPreferences {
	return &NotificationPreferences{
		UserId:             userId,
		EmailNotifications: true,
		PushNotifications:  false,
		NotifyNewEvents:    true,
		NotifyNearbyTrash:  false,
		NotifyGroupUpdates: true,
	}
}
