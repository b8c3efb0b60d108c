// Package memstore is an in-memory store.Store used by tests. It mirrors the
// conditional-update semantics of the Mongo implementation, including the
// zero floors and the guarded state transitions.
package memstore

import (
	"context"
	"regexp"
	"sort"
	"sync"
	"time"
	"untrashapi/internal/core"
	"untrashapi/internal/store"
	"untrashapi/pkg/schemas"
)

var testUrlRe = regexp.MustCompile(`(?i)(placeholder|test|via\.placeholder|example\.com)`)

type Store struct {
	mu            sync.Mutex
	users         map[string]*schemas.User
	groups        map[string]*schemas.Group
	reports       map[string]*schemas.TrashReport
	areas         map[string]*schemas.AreaCleaning
	events        map[string]*schemas.GroupEvent
	notifications []*schemas.Notification
	preferences   map[string]*schemas.NotificationPreferences
}

func New() *Store {
	return &Store{
		users:       make(map[string]*schemas.User),
		groups:      make(map[string]*schemas.Group),
		reports:     make(map[string]*schemas.TrashReport),
		areas:       make(map[string]*schemas.AreaCleaning),
		events:      make(map[string]*schemas.GroupEvent),
		preferences: make(map[string]*schemas.NotificationPreferences),
	}
}

var _ store.Store = (*Store)(nil)

/* users */

func (s *Store) InsertUser(_ context.Context, user *schemas.User) error {

	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *user
	s.users[user.UserId] = &cp
	return nil

}

func (s *Store) GetUser(_ context.Context, userId string) (*schemas.User, error) {

	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userId]
	if !ok {
		return nil, core.ErrNotFound
	}
	return copyUser(user), nil

}

func (s *Store) GetUserByEmail(_ context.Context, email string) (*schemas.User, error) {

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.Email == email {
			return copyUser(user), nil
		}
	}
	return nil, core.ErrNotFound

}

func (s *Store) UpdateUserProfile(_ context.Context, userId string, name string, picture string, isAdmin bool) error {

	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userId]
	if !ok {
		return core.ErrNotFound
	}
	user.Name = name
	user.Picture = picture
	if isAdmin {
		user.IsAdmin = true
	}
	return nil

}

func (s *Store) ListUsers(_ context.Context, limit int64) ([]schemas.User, error) {

	s.mu.Lock()
	defer s.mu.Unlock()

	var users []schemas.User
	for _, user := range s.users {
		users = append(users, *copyUser(user))
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})
	return clip(users, limit), nil

}

func (s *Store) SetUserBanned(_ context.Context, userId string, banned bool) error {

	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userId]
	if !ok {
		return core.ErrNotFound
	}
	user.IsBanned = banned
	return nil

}

func (s *Store) AdjustUserPoints(_ context.Context, userId string, delta int) (*schemas.User, error) {

	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userId]
	if !ok {
		return nil, core.ErrNotFound
	}
	user.TotalPoints = max(0, user.TotalPoints+delta)
	user.MonthlyPoints = max(0, user.MonthlyPoints+delta)
	user.WeeklyPoints = max(0, user.WeeklyPoints+delta)
	return copyUser(user), nil

}

func (s *Store) SetUserMedals(_ context.Context, userId string, derivedFromMonthly int, medals map[string][]string) (bool, error) {

	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userId]
	if !ok || user.MonthlyPoints != derivedFromMonthly {
		return false, nil
	}
	user.Medals = copyMedals(medals)
	return true, nil

}

func (s *Store) OverrideUserPoints(_ context.Context, userId string, total, monthly, weekly int, medals map[string][]string) error {

	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userId]
	if !ok {
		return core.ErrNotFound
	}
	user.TotalPoints = total
	user.MonthlyPoints = monthly
	user.WeeklyPoints = weekly
	user.Medals = copyMedals(medals)
	return nil

}

func (s *Store) AddJoinedGroup(_ context.Context, userId string, groupId string) error {

	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userId]
	if !ok {
		return core.ErrNotFound
	}
	for _, id := range user.JoinedGroups {
		if id == groupId {
			return nil
		}
	}
	user.JoinedGroups = append(user.JoinedGroups, groupId)
	return nil

}

func (s *Store) RemoveJoinedGroup(_ context.Context, userId string, groupId string) error {

	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userId]
	if !ok {
		return core.ErrNotFound
	}
	user.JoinedGroups = remove(user.JoinedGroups, groupId)
	return nil

}

func (s *Store) RemoveGroupFromMembers(_ context.Context, groupId string, memberIds []string) error {

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, userId := range memberIds {
		if user, ok := s.users[userId]; ok {
			user.JoinedGroups = remove(user.JoinedGroups, groupId)
		}
	}
	return nil

}

func (s *Store) WeeklyUserRankings(_ context.Context, limit int64) ([]store.RankedUser, error) {

	s.mu.Lock()
	defer s.mu.Unlock()

	var ranked []store.RankedUser
	for _, user := range s.users {
		ranked = append(ranked, store.RankedUser{
			UserId:       user.UserId,
			Name:         user.Name,
			Picture:      user.Picture,
			WeeklyPoints: user.WeeklyPoints,
		})
	}
	sort.Slice(ranked, func(i, j int) bool {
		return ranked[i].WeeklyPoints > ranked[j].WeeklyPoints
	})
	return clip(ranked, limit), nil

}

func (s *Store) ResetUserCounters(_ context.Context, weekly bool, monthly bool) error {

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if weekly {
			user.WeeklyPoints = 0
		}
		if monthly {
			user.MonthlyPoints = 0
		}
	}
	return nil

}

/* groups */

func (s *Store) InsertGroup(_ context.Context, group *schemas.Group) error {

	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *group
	s.groups[group.GroupId] = &cp
	return nil

}

func (s *Store) GetGroup(_ context.Context, groupId string) (*schemas.Group, error) {

	s.mu.Lock()
	defer s.mu.Unlock()

	group, ok := s.groups[groupId]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *group
	cp.MemberIds = append([]string(nil), group.MemberIds...)
	cp.AdminIds = append([]string(nil), group.AdminIds...)
	return &cp, nil

}

func (s *Store) ListGroups(_ context.Context, limit int64) ([]schemas.Group, error) {

	s.mu.Lock()
	defer s.mu.Unlock()

	var groups []schemas.Group
	for _, group := range s.groups {
		groups = append(groups, *group)
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].CreatedAt.After(groups[j].CreatedAt)
	})
	return clip(groups, limit), nil

}

func (s *Store) DeleteGroup(_ context.Context, groupId string) error {

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.groups[groupId]; !ok {
		return core.ErrNotFound
	}
	delete(s.groups, groupId)
	return nil

}

func (s *Store) AddGroupMember(_ context.Context, groupId string, userId string) error {

	s.mu.Lock()
	defer s.mu.Unlock()

	group, ok := s.groups[groupId]
	if !ok {
		return core.ErrNotFound
	}
	for _, id := range group.MemberIds {
		if id == userId {
			return nil
		}
	}
	group.MemberIds = append(group.MemberIds, userId)
	return nil

}

func (s *Store) RemoveGroupMember(_ context.Context, groupId string, userId string) error {

	s.mu.Lock()
	defer s.mu.Unlock()

	group, ok := s.groups[groupId]
	if !ok {
		return core.ErrNotFound
	}
	group.MemberIds = remove(group.MemberIds, userId)
	group.AdminIds = remove(group.AdminIds, userId)
	return nil

}

func (s *Store) AdjustGroupPoints(_ context.Context, groupId string, delta int) error {

	s.mu.Lock()
	defer s.mu.Unlock()

	group, ok := s.groups[groupId]
	if !ok {
		return core.ErrNotFound
	}
	group.TotalPoints = max(0, group.TotalPoints+delta)
	group.WeeklyPoints = max(0, group.WeeklyPoints+delta)
	return nil

}

func (s *Store) WeeklyGroupRankings(_ context.Context, limit int64) ([]store.RankedGroup, error) {

	s.mu.Lock()
	defer s.mu.Unlock()

	var ranked []store.RankedGroup
	for _, group := range s.groups {
		ranked = append(ranked, store.RankedGroup{
			GroupId:      group.GroupId,
			Name:         group.Name,
			WeeklyPoints: group.WeeklyPoints,
		})
	}
	sort.Slice(ranked, func(i, j int) bool {
		return ranked[i].WeeklyPoints > ranked[j].WeeklyPoints
	})
	return clip(ranked, limit), nil

}

func (s *Store) ResetGroupCounters(_ context.Context) error {

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, group := range s.groups {
		group.WeeklyPoints = 0
	}
	return nil

}

/* reports */

func (s *Store) InsertReport(_ context.Context, report *schemas.TrashReport) error {

	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *report
	s.reports[report.ReportId] = &cp
	return nil

}

func (s *Store) GetReport(_ context.Context, reportId string) (*schemas.TrashReport, error) {

	s.mu.Lock()
	defer s.mu.Unlock()

	report, ok := s.reports[reportId]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *report
	return &cp, nil

}

func (s *Store) ListReports(_ context.Context, filter store.ReportFilter) ([]schemas.TrashReport, error) {

	s.mu.Lock()
	defer s.mu.Unlock()

	var reports []schemas.TrashReport
	for _, report := range s.reports {
		if !filter.IncludeTest && testUrlRe.MatchString(report.ImageUrl) {
			continue
		}
		if filter.Status != "" {
			if report.Status != filter.Status {
				continue
			}
		} else if report.Status == schemas.StatusCollected {
			if report.CollectedAt == nil || report.CollectedAt.Before(filter.CollectedSince) {
				continue
			}
		}
		reports = append(reports, *report)
	}
	sort.Slice(reports, func(i, j int) bool {
		return reports[i].CreatedAt.After(reports[j].CreatedAt)
	})
	return clip(reports, filter.Limit), nil

}

func (s *Store) UpdateReport(_ context.Context, reportId string, fields map[string]any) error {

	s.mu.Lock()
	defer s.mu.Unlock()

	report, ok := s.reports[reportId]
	if !ok {
		return core.ErrNotFound
	}
	for key, value := range fields {
		switch key {
		case "status":
			report.Status = value.(string)
		case "image_url":
			report.ImageUrl = value.(string)
		case "thumbnail_url":
			report.ThumbnailUrl = value.(string)
		case "ai_verified":
			report.AiVerified = value.(bool)
		case "admin_verified":
			report.AdminVerified = value.(bool)
		case "location":
			report.Location = value.(schemas.Location)
		}
	}
	return nil

}

func (s *Store) MarkReportCollected(_ context.Context, reportId string, upd *store.CollectedUpdate) (bool, error) {

	s.mu.Lock()
	defer s.mu.Unlock()

	report, ok := s.reports[reportId]
	if !ok || report.Status != schemas.StatusReported {
		return false, nil
	}
	collectedAt := upd.CollectedAt
	report.Status = schemas.StatusCollected
	report.CollectorId = upd.CollectorId
	report.CollectedAt = &collectedAt
	report.CollectionImageUrl = upd.CollectionImageUrl
	report.AiVerified = upd.AiVerified
	report.AdminVerified = false
	report.PointsAwarded = upd.PointsAwarded
	report.PointsGiven = false
	return true, nil

}

func (s *Store) ApproveCollection(_ context.Context, reportId string) (*schemas.TrashReport, bool, error) {

	s.mu.Lock()
	defer s.mu.Unlock()

	report, ok := s.reports[reportId]
	if !ok || report.Status != schemas.StatusCollected || report.AdminVerified {
		return nil, false, nil
	}
	report.AdminVerified = true
	report.PointsGiven = true
	cp := *report
	return &cp, true, nil

}

func (s *Store) RevertCollection(_ context.Context, reportId string) (bool, error) {

	s.mu.Lock()
	defer s.mu.Unlock()

	report, ok := s.reports[reportId]
	if !ok || report.Status != schemas.StatusCollected {
		return false, nil
	}
	report.Status = schemas.StatusReported
	report.CollectorId = ""
	report.CollectedAt = nil
	report.CollectionImageUrl = ""
	report.AiVerified = false
	report.AdminVerified = false
	report.PointsAwarded = 0
	report.PointsGiven = false
	return true, nil

}

func (s *Store) DeleteReport(_ context.Context, reportId string) (*schemas.TrashReport, error) {

	s.mu.Lock()
	defer s.mu.Unlock()

	report, ok := s.reports[reportId]
	if !ok {
		return nil, core.ErrNotFound
	}
	delete(s.reports, reportId)
	return report, nil

}

func (s *Store) PendingCollections(_ context.Context, limit int64) ([]schemas.TrashReport, error) {

	s.mu.Lock()
	defer s.mu.Unlock()

	var reports []schemas.TrashReport
	for _, report := range s.reports {
		if report.Status == schemas.StatusCollected && !report.AdminVerified {
			reports = append(reports, *report)
		}
	}
	sort.Slice(reports, func(i, j int) bool {
		ci, cj := reports[i].CollectedAt, reports[j].CollectedAt
		if ci == nil || cj == nil {
			return cj == nil
		}
		return ci.After(*cj)
	})
	return clip(reports, limit), nil

}

func (s *Store) CountPendingCollections(_ context.Context) (int64, error) {

	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for _, report := range s.reports {
		if report.Status == schemas.StatusCollected && !report.AdminVerified {
			n++
		}
	}
	return n, nil

}

func (s *Store) CountReportsSince(_ context.Context, since time.Time) (int64, error) {

	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for _, report := range s.reports {
		if !report.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil

}

func (s *Store) CountCollectionsSince(_ context.Context, since time.Time) (int64, error) {

	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for _, report := range s.reports {
		if report.Status == schemas.StatusCollected &&
			report.CollectedAt != nil && !report.CollectedAt.Before(since) {
			n++
		}
	}
	return n, nil

}

func (s *Store) ReportedLocations(_ context.Context, limit int64) ([]schemas.Location, error) {

	s.mu.Lock()
	defer s.mu.Unlock()

	var locations []schemas.Location
	for _, report := range s.reports {
		if report.Status == schemas.StatusReported {
			locations = append(locations, report.Location)
		}
	}
	return clip(locations, limit), nil

}

/* areas */

func (s *Store) InsertArea(_ context.Context, area *schemas.AreaCleaning) error {

	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *area
	s.areas[area.AreaId] = &cp
	return nil

}

func (s *Store) GetArea(_ context.Context, areaId string) (*schemas.AreaCleaning, error) {

	s.mu.Lock()
	defer s.mu.Unlock()

	area, ok := s.areas[areaId]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *area
	return &cp, nil

}

func (s *Store) ApproveArea(_ context.Context, areaId string) (*schemas.AreaCleaning, bool, error) {

	s.mu.Lock()
	defer s.mu.Unlock()

	area, ok := s.areas[areaId]
	if !ok || area.AdminApproved {
		return nil, false, nil
	}
	area.AdminApproved = true
	area.AiVerified = true
	cp := *area
	return &cp, true, nil

}

func (s *Store) DeleteArea(_ context.Context, areaId string) (bool, error) {

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.areas[areaId]; !ok {
		return false, nil
	}
	delete(s.areas, areaId)
	return true, nil

}

func (s *Store) ActiveAreas(_ context.Context, now time.Time, limit int64) ([]schemas.AreaCleaning, error) {
	return s.filterAreas(func(a *schemas.AreaCleaning) bool {
		return a.AdminApproved && a.ExpiresAt.After(now)
	}, limit), nil
}

func (s *Store) UnexpiredAreas(_ context.Context, now time.Time, limit int64) ([]schemas.AreaCleaning, error) {
	return s.filterAreas(func(a *schemas.AreaCleaning) bool {
		return a.ExpiresAt.After(now)
	}, limit), nil
}

func (s *Store) PendingAreas(_ context.Context, limit int64) ([]schemas.AreaCleaning, error) {

	areas := s.filterAreas(func(a *schemas.AreaCleaning) bool {
		return !a.AdminApproved
	}, limit)
	sort.Slice(areas, func(i, j int) bool {
		return areas[i].CreatedAt.After(areas[j].CreatedAt)
	})
	return areas, nil

}

func (s *Store) CountPendingAreas(_ context.Context) (int64, error) {

	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for _, area := range s.areas {
		if !area.AdminApproved {
			n++
		}
	}
	return n, nil

}

func (s *Store) filterAreas(keep func(*schemas.AreaCleaning) bool, limit int64) []schemas.AreaCleaning {

	s.mu.Lock()
	defer s.mu.Unlock()

	var areas []schemas.AreaCleaning
	for _, area := range s.areas {
		if keep(area) {
			areas = append(areas, *area)
		}
	}
	return clip(areas, limit)

}

/* events */

func (s *Store) InsertEvent(_ context.Context, event *schemas.GroupEvent) error {

	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *event
	s.events[event.EventId] = &cp
	return nil

}

func (s *Store) GetEvent(_ context.Context, eventId string) (*schemas.GroupEvent, error) {

	s.mu.Lock()
	defer s.mu.Unlock()

	event, ok := s.events[eventId]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *event
	return &cp, nil

}

func (s *Store) GroupEvents(_ context.Context, groupId string, limit int64) ([]schemas.GroupEvent, error) {

	s.mu.Lock()
	defer s.mu.Unlock()

	var events []schemas.GroupEvent
	for _, event := range s.events {
		if event.GroupId == groupId {
			events = append(events, *event)
		}
	}
	sortEvents(events)
	return clip(events, limit), nil

}

func (s *Store) UpcomingEvents(_ context.Context, groupIds []string, after time.Time, limit int64) ([]schemas.GroupEvent, error) {

	if len(groupIds) == 0 {
		return nil, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	wanted := make(map[string]bool, len(groupIds))
	for _, id := range groupIds {
		wanted[id] = true
	}
	var events []schemas.GroupEvent
	for _, event := range s.events {
		if wanted[event.GroupId] && !event.EventDate.Before(after) {
			events = append(events, *event)
		}
	}
	sortEvents(events)
	return clip(events, limit), nil

}

func (s *Store) DeleteEvent(_ context.Context, eventId string) error {

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[eventId]; !ok {
		return core.ErrNotFound
	}
	delete(s.events, eventId)
	return nil

}

func (s *Store) DeleteGroupEvents(_ context.Context, groupId string) error {

	s.mu.Lock()
	defer s.mu.Unlock()

	for id, event := range s.events {
		if event.GroupId == groupId {
			delete(s.events, id)
		}
	}
	return nil

}

/* notifications */

func (s *Store) InsertNotification(_ context.Context, notification *schemas.Notification) error {

	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *notification
	s.notifications = append(s.notifications, &cp)
	return nil

}

func (s *Store) UserNotifications(_ context.Context, userId string, limit int64) ([]schemas.Notification, error) {

	s.mu.Lock()
	defer s.mu.Unlock()

	var notifications []schemas.Notification
	for _, n := range s.notifications {
		if n.UserId == userId {
			notifications = append(notifications, *n)
		}
	}
	sort.Slice(notifications, func(i, j int) bool {
		return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
	})
	return clip(notifications, limit), nil

}

func (s *Store) GetNotificationPreferences(_ context.Context, userId string) (*schemas.NotificationPreferences, error) {

	s.mu.Lock()
	defer s.mu.Unlock()

	prefs, ok := s.preferences[userId]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *prefs
	return &cp, nil

}

func (s *Store) SaveNotificationPreferences(_ context.Context, userId string, fields map[string]any) error {

	s.mu.Lock()
	defer s.mu.Unlock()

	prefs, ok := s.preferences[userId]
	if !ok {
		prefs = schemas.DefaultNotificationPreferences(userId)
		s.preferences[userId] = prefs
	}
	for key, value := range fields {
		switch key {
		case "email_notifications":
			prefs.EmailNotifications = value.(bool)
		case "push_notifications":
			prefs.PushNotifications = value.(bool)
		case "notify_new_events":
			prefs.NotifyNewEvents = value.(bool)
		case "notify_nearby_trash":
			prefs.NotifyNearbyTrash = value.(bool)
		case "notify_group_updates":
			prefs.NotifyGroupUpdates = value.(bool)
		}
	}
	return nil

}

/* helpers */

func copyUser(user *schemas.User) *schemas.User {

	cp := *user
	cp.Medals = copyMedals(user.Medals)
	cp.JoinedGroups = append([]string(nil), user.JoinedGroups...)
	return &cp

}

func copyMedals(medals map[string][]string) map[string][]string {

	if medals == nil {
		return nil
	}
	cp := make(map[string][]string, len(medals))
	for period, tiers := range medals {
		cp[period] = append([]string(nil), tiers...)
	}
	return cp

}

func remove(ids []string, id string) []string {

	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out

}

func sortEvents(events []schemas.GroupEvent) {
	sort.Slice(events, func(i, j int) bool {
		return events[i].EventDate.Before(events[j].EventDate)
	})
}

func clip[T any](items []T, limit int64) []T {

	if limit > 0 && int64(len(items)) > limit {
		return items[:limit]
	}
	return items

}
