package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
)

// ErrPushNotConfigured is returned when dispatch is requested but no
// push credentials are configured.
var ErrPushNotConfigured = errors.New("push sender not configured")

// PushSender dispatches a push notification to a single device token.
// Delivery is best-effort; the service surfaces failures but offers no
// delivery guarantee.
type PushSender interface {
	Send(ctx context.Context, token, title, body string) error
}

// NotificationService handles direct push dispatch to device tokens.
type NotificationService struct {
	sender PushSender
	log    zerolog.Logger
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(sender PushSender, log zerolog.Logger) *NotificationService {
	return &NotificationService{sender: sender, log: log}
}

// Send pushes a title and body to one device token.
func (s *NotificationService) Send(ctx context.Context, token, title, body string) error {
	if s.sender == nil {
		return ErrPushNotConfigured
	}
	if err := s.sender.Send(ctx, token, title, body); err != nil {
		s.log.Error().Err(err).Msg("Push dispatch failed")
		return err
	}
	return nil
}
