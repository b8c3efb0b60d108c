package schemas

import (
	"time"
)

// User carries identity plus the mutable accounting fields. The three point
// counters are independent rolling windows and never go below zero. Medals
// are bucketed by calendar-month period key, e.g. {"2025-01": ["bronze"]}.
type User struct {
	UserId        string              `bson:"user_id" json:"user_id"`
	Email         string              `bson:"email" json:"email"`
	Name          string              `bson:"name" json:"name"`
	Picture       string              `bson:"picture,omitempty" json:"picture,omitempty"`
	TotalPoints   int                 `bson:"total_points" json:"total_points"`
	MonthlyPoints int                 `bson:"monthly_points" json:"monthly_points"`
	WeeklyPoints  int                 `bson:"weekly_points" json:"weekly_points"`
	Medals        map[string][]string `bson:"medals" json:"medals"`
	JoinedGroups  []string            `bson:"joined_groups" json:"joined_groups"`
	IsAdmin       bool                `bson:"is_admin" json:"is_admin"`
	IsBanned      bool                `bson:"is_banned" json:"is_banned"`
	CreatedAt     time.Time           `bson:"created_at" json:"created_at"`
}
