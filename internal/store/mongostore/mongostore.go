// Package mongostore implements the storage contracts on MongoDB. State
// transitions that also move points are filtered updates, so the expected
// prior state is checked and changed in one atomic step.
package mongostore

import (
	"context"
	"errors"
	"untrashapi/internal/core"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type Store struct {
	db *mongo.Database
}

func NewStore(db *mongo.Database) *Store {
	return &Store{db: db}
}

func (s *Store) users() *mongo.Collection         { return s.db.Collection("users") }
func (s *Store) groups() *mongo.Collection        { return s.db.Collection("groups") }
func (s *Store) reports() *mongo.Collection       { return s.db.Collection("trash_reports") }
func (s *Store) areas() *mongo.Collection         { return s.db.Collection("area_cleanings") }
func (s *Store) events() *mongo.Collection        { return s.db.Collection("group_events") }
func (s *Store) notifications() *mongo.Collection { return s.db.Collection("notifications") }
func (s *Store) preferences() *mongo.Collection {
	return s.db.Collection("notification_preferences")
}

// EnsureIndexes creates the unique id indexes. Called once at startup.
func (s *Store) EnsureIndexes(ctx context.Context) error {

	for coll, key := range map[string]string{
		"users":          "user_id",
		"groups":         "group_id",
		"trash_reports":  "report_id",
		"area_cleanings": "area_id",
		"group_events":   "event_id",
	} {
		_, err := s.db.Collection(coll).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: key, Value: 1}},
			Options: options.Index().SetUnique(true),
		})
		if err != nil {
			return err
		}
	}
	return nil

}

func notFoundErr(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return core.ErrNotFound
	}
	return err
}
