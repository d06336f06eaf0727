package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

type fakePushSender struct {
	sent      []string
	SendError error
}

func (f *fakePushSender) Send(_ context.Context, token, _, _ string) error {
	if f.SendError != nil {
		return f.SendError
	}
	f.sent = append(f.sent, token)
	return nil
}

func TestNotificationSend(t *testing.T) {
	sender := &fakePushSender{}
	svc := NewNotificationService(sender, zerolog.Nop())

	if err := svc.Send(context.Background(), "device-token", "Closure", "Group A is closed tomorrow"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if len(sender.sent) != 1 || sender.sent[0] != "device-token" {
		t.Errorf("sent = %v, want [device-token]", sender.sent)
	}

	sender.SendError = errors.New("upstream 401")
	if err := svc.Send(context.Background(), "device-token", "t", "b"); err == nil {
		t.Error("expected dispatch failure to surface")
	}
}

func TestNotificationSend_NotConfigured(t *testing.T) {
	svc := NewNotificationService(nil, zerolog.Nop())

	if err := svc.Send(context.Background(), "device-token", "t", "b"); !errors.Is(err, ErrPushNotConfigured) {
		t.Errorf("got %v, want ErrPushNotConfigured", err)
	}
}
