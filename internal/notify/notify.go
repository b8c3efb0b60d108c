// Package notify records notifications and delivers them by email when the
// recipient opted in. Delivery is strictly best-effort: failures are logged
// and never surface to the caller.
package notify

import (
	"context"
	"errors"
	"fmt"
	"time"
	"untrashapi/internal/core"
	"untrashapi/internal/store"
	"untrashapi/pkg/config"
	"untrashapi/pkg/schemas"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Service struct {
	store    store.NotificationStore
	users    store.UserStore
	sesCli   *ses.Client
	redisCli *redis.Client
	logger   *zap.Logger
}

func NewService(notifications store.NotificationStore, users store.UserStore, sesCli *ses.Client, redisCli *redis.Client, logger *zap.Logger) *Service {
	return &Service{
		store:    notifications,
		users:    users,
		sesCli:   sesCli,
		redisCli: redisCli,
		logger:   logger,
	}
}

// Notify logs a notification for the user and, preferences permitting, sends
// an email.
func (s *Service) Notify(ctx context.Context, userId string, notificationType string, title string, message string) {

	notification := &schemas.Notification{
		UserId:    userId,
		Type:      notificationType,
		Title:     title,
		Message:   message,
		Read:      false,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.InsertNotification(ctx, notification); err != nil {
		s.logger.Warn("notification not recorded", zap.String("user_id", userId), zap.Error(err))
		return
	}

	prefs, err := s.store.GetNotificationPreferences(ctx, userId)
	if errors.Is(err, core.ErrNotFound) {
		prefs = schemas.DefaultNotificationPreferences(userId)
	} else if err != nil {
		s.logger.Warn("preferences lookup failed", zap.String("user_id", userId), zap.Error(err))
		return
	}

	if !prefs.EmailNotifications {
		return
	}
	if notificationType == "new_event" && !prefs.NotifyNewEvents {
		return
	}

	if err := s.sendEmail(ctx, userId, title, message); err != nil {
		s.logger.Warn("notification email not sent", zap.String("user_id", userId), zap.Error(err))
	}

}

func (s *Service) sendEmail(ctx context.Context, userId string, subject string, message string) error {

	if s.sesCli == nil || s.redisCli == nil {
		return nil
	}

	user, err := s.users.GetUser(ctx, userId)
	if err != nil {
		return fmt.Errorf("in sendEmail:\n%w", err)
	}

	// rate limit per recipient
	cooldownKey := fmt.Sprintf("email:notify:cooldown:%s", user.Email)
	ttl, err := s.redisCli.TTL(ctx, cooldownKey).Result()
	if err != nil {
		return fmt.Errorf("in sendEmail:\n%w", err)
	}
	if ttl > 0 {
		return nil
	}
	if _, err := s.redisCli.Set(ctx, cooldownKey, "1", config.EMAIL_COOLDOWN).Result(); err != nil {
		return fmt.Errorf("in sendEmail:\n%w", err)
	}

	html := fmt.Sprintf(`
		<!DOCTYPE html>
		<html lang="en">
		<body style="margin: 0; padding: 0; font-family: sans-serif;">
			<div style="padding: 24px;">
				<div style="font-size: 20px; font-weight: bold;">%s</div>
				<div style="padding-top: 12px; font-size: 16px;">%s</div>
				<div style="font-size: 12px; color: #888; padding-top: 24px;">UnTrash</div>
			</div>
		</body>
		</html>`, subject, message)

	emailInput := &ses.SendEmailInput{
		Source: aws.String(config.SES_SENDER),
		Destination: &types.Destination{
			ToAddresses: []string{user.Email},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data: aws.String(subject),
			},
			Body: &types.Body{
				Html: &types.Content{Data: aws.String(html)},
			},
		},
	}

	if _, err := s.sesCli.SendEmail(ctx, emailInput); err != nil {
		return fmt.Errorf("in sendEmail:\n%w", err)
	}
	return nil

}
