package schemas

import (
	"time"
)

// AreaCleaning is created unapproved and mutated exactly once, by admin
// approval. ExpiresAt only affects clean-zone visibility, not points.
type AreaCleaning struct {
	AreaId         string      `bson:"area_id" json:"area_id"`
	UserId         string      `bson:"user_id" json:"user_id"`
	CenterLocation Location    `bson:"center_location" json:"center_location"`
	PolygonCoords  [][]float64 `bson:"polygon_coords" json:"polygon_coords"`
	AreaSize       float64     `bson:"area_size" json:"area_size"`
	ImageUrl       string      `bson:"image_url" json:"image_url"`
	AiVerified     bool        `bson:"ai_verified" json:"ai_verified"`
	AdminApproved  bool        `bson:"admin_approved" json:"admin_approved"`
	PointsAwarded  int         `bson:"points_awarded" json:"points_awarded"`
	ExpiresAt      time.Time   `bson:"expires_at" json:"expires_at"`
	CreatedAt      time.Time   `bson:"created_at" json:"created_at"`
}
