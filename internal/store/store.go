// Package store defines the storage contracts consumed by the lifecycle
// services. Implementations must make every check-then-act transition a
// single conditional update: the bool results report whether the expected
// prior state matched, which is what prevents double payments under
// concurrent admin actions.
package store

import (
	"context"
	"time"
	"untrashapi/pkg/schemas"
)

// ReportFilter selects trash reports for the public feed. With an empty
// Status the default feed applies: every reported item plus collected items
// newer than CollectedSince.
type ReportFilter struct {
	Status         string
	CollectedSince time.Time
	IncludeTest    bool
	Limit          int64
}

// CollectedUpdate carries the fields written by the reported -> collected
// transition.
type CollectedUpdate struct {
	CollectorId        string
	CollectedAt        time.Time
	CollectionImageUrl string
	AiVerified         bool
	PointsAwarded      int
}

type RankedUser struct {
	UserId       string `bson:"user_id" json:"user_id"`
	Name         string `bson:"name" json:"name"`
	Picture      string `bson:"picture,omitempty" json:"picture,omitempty"`
	WeeklyPoints int    `bson:"weekly_points" json:"weekly_points"`
}

type RankedGroup struct {
	GroupId      string `bson:"group_id" json:"group_id"`
	Name         string `bson:"name" json:"name"`
	WeeklyPoints int    `bson:"weekly_points" json:"weekly_points"`
}

type UserStore interface {
	InsertUser(ctx context.Context, user *schemas.User) error
	GetUser(ctx context.Context, userId string) (*schemas.User, error)
	GetUserByEmail(ctx context.Context, email string) (*schemas.User, error)
	UpdateUserProfile(ctx context.Context, userId string, name string, picture string, isAdmin bool) error
	ListUsers(ctx context.Context, limit int64) ([]schemas.User, error)
	SetUserBanned(ctx context.Context, userId string, banned bool) error

	// AdjustUserPoints atomically applies delta to all three counters,
	// flooring each at zero independently, and returns the updated document.
	AdjustUserPoints(ctx context.Context, userId string, delta int) (*schemas.User, error)
	// SetUserMedals writes the medal map only if monthly_points still equals
	// the value the medals were derived from.
	SetUserMedals(ctx context.Context, userId string, derivedFromMonthly int, medals map[string][]string) (bool, error)
	// OverrideUserPoints sets absolute counter values. The only absolute
	// write path; used by the admin reset.
	OverrideUserPoints(ctx context.Context, userId string, total, monthly, weekly int, medals map[string][]string) error

	AddJoinedGroup(ctx context.Context, userId string, groupId string) error
	RemoveJoinedGroup(ctx context.Context, userId string, groupId string) error
	RemoveGroupFromMembers(ctx context.Context, groupId string, memberIds []string) error

	WeeklyUserRankings(ctx context.Context, limit int64) ([]RankedUser, error)
	ResetUserCounters(ctx context.Context, weekly bool, monthly bool) error
}

type GroupStore interface {
	InsertGroup(ctx context.Context, group *schemas.Group) error
	GetGroup(ctx context.Context, groupId string) (*schemas.Group, error)
	ListGroups(ctx context.Context, limit int64) ([]schemas.Group, error)
	DeleteGroup(ctx context.Context, groupId string) error
	AddGroupMember(ctx context.Context, groupId string, userId string) error
	RemoveGroupMember(ctx context.Context, groupId string, userId string) error

	// AdjustGroupPoints atomically applies delta to the group's total and
	// weekly counters, flooring each at zero.
	AdjustGroupPoints(ctx context.Context, groupId string, delta int) error

	WeeklyGroupRankings(ctx context.Context, limit int64) ([]RankedGroup, error)
	ResetGroupCounters(ctx context.Context) error
}

type ReportStore interface {
	InsertReport(ctx context.Context, report *schemas.TrashReport) error
	GetReport(ctx context.Context, reportId string) (*schemas.TrashReport, error)
	ListReports(ctx context.Context, filter ReportFilter) ([]schemas.TrashReport, error)
	UpdateReport(ctx context.Context, reportId string, fields map[string]any) error

	// MarkReportCollected succeeds only from status=reported.
	MarkReportCollected(ctx context.Context, reportId string, upd *CollectedUpdate) (bool, error)
	// ApproveCollection succeeds only from status=collected with
	// admin_verified=false, setting admin_verified and points_given.
	ApproveCollection(ctx context.Context, reportId string) (*schemas.TrashReport, bool, error)
	// RevertCollection rolls a collected report back to its post-report
	// shape, unsetting every collection field.
	RevertCollection(ctx context.Context, reportId string) (bool, error)
	// DeleteReport removes the document and returns it so payments can be
	// reversed.
	DeleteReport(ctx context.Context, reportId string) (*schemas.TrashReport, error)

	PendingCollections(ctx context.Context, limit int64) ([]schemas.TrashReport, error)
	CountPendingCollections(ctx context.Context) (int64, error)
	CountReportsSince(ctx context.Context, since time.Time) (int64, error)
	CountCollectionsSince(ctx context.Context, since time.Time) (int64, error)
	ReportedLocations(ctx context.Context, limit int64) ([]schemas.Location, error)
}

type AreaStore interface {
	InsertArea(ctx context.Context, area *schemas.AreaCleaning) error
	GetArea(ctx context.Context, areaId string) (*schemas.AreaCleaning, error)

	// ApproveArea succeeds only while admin_approved=false, setting
	// admin_approved and ai_verified.
	ApproveArea(ctx context.Context, areaId string) (*schemas.AreaCleaning, bool, error)
	DeleteArea(ctx context.Context, areaId string) (bool, error)

	ActiveAreas(ctx context.Context, now time.Time, limit int64) ([]schemas.AreaCleaning, error)
	UnexpiredAreas(ctx context.Context, now time.Time, limit int64) ([]schemas.AreaCleaning, error)
	PendingAreas(ctx context.Context, limit int64) ([]schemas.AreaCleaning, error)
	CountPendingAreas(ctx context.Context) (int64, error)
}

type EventStore interface {
	InsertEvent(ctx context.Context, event *schemas.GroupEvent) error
	GetEvent(ctx context.Context, eventId string) (*schemas.GroupEvent, error)
	GroupEvents(ctx context.Context, groupId string, limit int64) ([]schemas.GroupEvent, error)
	UpcomingEvents(ctx context.Context, groupIds []string, after time.Time, limit int64) ([]schemas.GroupEvent, error)
	DeleteEvent(ctx context.Context, eventId string) error
	DeleteGroupEvents(ctx context.Context, groupId string) error
}

type NotificationStore interface {
	InsertNotification(ctx context.Context, notification *schemas.Notification) error
	UserNotifications(ctx context.Context, userId string, limit int64) ([]schemas.Notification, error)
	GetNotificationPreferences(ctx context.Context, userId string) (*schemas.NotificationPreferences, error)
	SaveNotificationPreferences(ctx context.Context, userId string, fields map[string]any) error
}

// Store is the full surface the API wiring depends on.
type Store interface {
	UserStore
	GroupStore
	ReportStore
	AreaStore
	EventStore
	NotificationStore
}
