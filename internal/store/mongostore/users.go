package mongostore

import (
	"context"
	"fmt"
	"untrashapi/internal/core"
	"untrashapi/internal/store"
	"untrashapi/pkg/schemas"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

func (s *Store) InsertUser(ctx context.Context, user *schemas.User) error {
	_, err := s.users().InsertOne(ctx, user)
	return err
}

func (s *Store) GetUser(ctx context.Context, userId string) (*schemas.User, error) {

	var user schemas.User
	if err := s.users().FindOne(ctx, bson.M{"user_id": userId}).Decode(&user); err != nil {
		return nil, notFoundErr(err)
	}
	return &user, nil

}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*schemas.User, error) {

	var user schemas.User
	if err := s.users().FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		return nil, notFoundErr(err)
	}
	return &user, nil

}

func (s *Store) UpdateUserProfile(ctx context.Context, userId string, name string, picture string, isAdmin bool) error {

	fields := bson.M{
		"name":    name,
		"picture": picture,
	}
	// admin provisioning only ever promotes, never demotes
	if isAdmin {
		fields["is_admin"] = true
	}
	res, err := s.users().UpdateOne(ctx, bson.M{"user_id": userId}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return core.ErrNotFound
	}
	return nil

}

func (s *Store) ListUsers(ctx context.Context, limit int64) ([]schemas.User, error) {

	cursor, err := s.users().Find(ctx, bson.M{},
		options.Find().SetSort(bson.M{"created_at": -1}).SetLimit(limit),
	)
	if err != nil {
		return nil, err
	}
	var users []schemas.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil

}

func (s *Store) SetUserBanned(ctx context.Context, userId string, banned bool) error {

	res, err := s.users().UpdateOne(ctx,
		bson.M{"user_id": userId},
		bson.M{"$set": bson.M{"is_banned": banned}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return core.ErrNotFound
	}
	return nil

}

// AdjustUserPoints applies the delta with a zero floor to all three counters
// in one atomic pipeline update and returns the updated document.
func (s *Store) AdjustUserPoints(ctx context.Context, userId string, delta int) (*schemas.User, error) {

	floored := func(field string) bson.M {
		return bson.M{"$max": bson.A{0, bson.M{"$add": bson.A{"$" + field, delta}}}}
	}
	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"total_points":   floored("total_points"),
			"monthly_points": floored("monthly_points"),
			"weekly_points":  floored("weekly_points"),
		}}},
	}

	var user schemas.User
	err := s.users().FindOneAndUpdate(ctx,
		bson.M{"user_id": userId},
		pipeline,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&user)
	if err != nil {
		return nil, notFoundErr(err)
	}
	return &user, nil

}

// SetUserMedals is conditional on monthly_points still holding the value the
// medal set was derived from.
func (s *Store) SetUserMedals(ctx context.Context, userId string, derivedFromMonthly int, medals map[string][]string) (bool, error) {

	res, err := s.users().UpdateOne(ctx,
		bson.M{"user_id": userId, "monthly_points": derivedFromMonthly},
		bson.M{"$set": bson.M{"medals": medals}},
	)
	if err != nil {
		return false, fmt.Errorf("in SetUserMedals:\n%w", err)
	}
	return res.MatchedCount == 1, nil

}

func (s *Store) OverrideUserPoints(ctx context.Context, userId string, total, monthly, weekly int, medals map[string][]string) error {

	res, err := s.users().UpdateOne(ctx,
		bson.M{"user_id": userId},
		bson.M{"$set": bson.M{
			"total_points":   total,
			"monthly_points": monthly,
			"weekly_points":  weekly,
			"medals":         medals,
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return core.ErrNotFound
	}
	return nil

}

func (s *Store) AddJoinedGroup(ctx context.Context, userId string, groupId string) error {

	_, err := s.users().UpdateOne(ctx,
		bson.M{"user_id": userId},
		bson.M{"$addToSet": bson.M{"joined_groups": groupId}},
	)
	return err

}

func (s *Store) RemoveJoinedGroup(ctx context.Context, userId string, groupId string) error {

	_, err := s.users().UpdateOne(ctx,
		bson.M{"user_id": userId},
		bson.M{"$pull": bson.M{"joined_groups": groupId}},
	)
	return err

}

func (s *Store) RemoveGroupFromMembers(ctx context.Context, groupId string, memberIds []string) error {

	if len(memberIds) == 0 {
		return nil
	}
	_, err := s.users().UpdateMany(ctx,
		bson.M{"user_id": bson.M{"$in": memberIds}},
		bson.M{"$pull": bson.M{"joined_groups": groupId}},
	)
	return err

}

func (s *Store) WeeklyUserRankings(ctx context.Context, limit int64) ([]store.RankedUser, error) {

	cursor, err := s.users().Find(ctx, bson.M{},
		options.Find().
			SetSort(bson.M{"weekly_points": -1}).
			SetLimit(limit).
			SetProjection(bson.M{"user_id": 1, "name": 1, "picture": 1, "weekly_points": 1}),
	)
	if err != nil {
		return nil, err
	}
	var ranked []store.RankedUser
	if err := cursor.All(ctx, &ranked); err != nil {
		return nil, err
	}
	return ranked, nil

}

func (s *Store) ResetUserCounters(ctx context.Context, weekly bool, monthly bool) error {

	fields := bson.M{}
	if weekly {
		fields["weekly_points"] = 0
	}
	if monthly {
		fields["monthly_points"] = 0
	}
	if len(fields) == 0 {
		return nil
	}
	_, err := s.users().UpdateMany(ctx, bson.M{}, bson.M{"$set": fields})
	return err

}
