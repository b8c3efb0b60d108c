package schemas

import (
	"time"
)

const (
	StatusReported  = "reported"
	StatusCollected = "collected"
)

type Location struct {
	Lat     float64 `bson:"lat" json:"lat" validate:"min=-90,max=90"`
	Lng     float64 `bson:"lng" json:"lng" validate:"min=-180,max=180"`
	Address string  `bson:"address,omitempty" json:"address,omitempty"`
}

// TrashReport moves reported -> collected -> (admin approve | admin reject).
// PointsAwarded holds the pending collection reward until an admin approves;
// PointsGiven guards against paying it twice.
type TrashReport struct {
	ReportId           string     `bson:"report_id" json:"report_id"`
	Location           Location   `bson:"location" json:"location"`
	ImageUrl           string     `bson:"image_url" json:"image_url"`
	ThumbnailUrl       string     `bson:"thumbnail_url,omitempty" json:"thumbnail_url,omitempty"`
	Status             string     `bson:"status" json:"status"`
	ReporterId         string     `bson:"reporter_id" json:"reporter_id"`
	CollectorId        string     `bson:"collector_id,omitempty" json:"collector_id,omitempty"`
	CollectionImageUrl string     `bson:"collection_image_url,omitempty" json:"collection_image_url,omitempty"`
	AiVerified         bool       `bson:"ai_verified" json:"ai_verified"`
	AdminVerified      bool       `bson:"admin_verified" json:"admin_verified"`
	PointsAwarded      int        `bson:"points_awarded" json:"points_awarded"`
	PointsGiven        bool       `bson:"points_given" json:"points_given"`
	CreatedAt          time.Time  `bson:"created_at" json:"created_at"`
	CollectedAt        *time.Time `bson:"collected_at,omitempty" json:"collected_at,omitempty"`
}
