package schemas

import (
	"time"
)

// Group point totals are a cascade target of the points ledger: every delta
// applied to a member is applied to each joined group, floored at zero
// independently.
type Group struct {
	GroupId      string    `bson:"group_id" json:"group_id"`
	Name         string    `bson:"name" json:"name"`
	Description  string    `bson:"description,omitempty" json:"description,omitempty"`
	AdminIds     []string  `bson:"admin_ids" json:"admin_ids"`
	MemberIds    []string  `bson:"member_ids" json:"member_ids"`
	TotalPoints  int       `bson:"total_points" json:"total_points"`
	WeeklyPoints int       `bson:"weekly_points" json:"weekly_points"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}

type GroupEvent struct {
	EventId     string    `bson:"event_id" json:"event_id"`
	GroupId     string    `bson:"group_id" json:"group_id"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	Location    *Location `bson:"location,omitempty" json:"location,omitempty"`
	EventDate   time.Time `bson:"event_date" json:"event_date"`
	CreatedBy   string    `bson:"created_by" json:"created_by"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}
