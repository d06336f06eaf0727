package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// FCMSender implements PushSender against the FCM HTTP API.
type FCMSender struct {
	endpoint  string
	serverKey string
	client    *http.Client
}

// NewFCMSender creates an FCMSender. Returns nil (dispatch disabled)
// when no server key is configured.
func NewFCMSender(endpoint, serverKey string) *FCMSender {
	if serverKey == "" {
		return nil
	}
	return &FCMSender{
		endpoint:  endpoint,
		serverKey: serverKey,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

type fcmNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type fcmMessage struct {
	To           string          `json:"to"`
	Notification fcmNotification `json:"notification"`
}

// Send posts one notification message to FCM.
func (f *FCMSender) Send(ctx context.Context, token, title, body string) error {
	payload, err := json.Marshal(fcmMessage{
		To:           token,
		Notification: fcmNotification{Title: title, Body: body},
	})
	if err != nil {
		return fmt.Errorf("marshal fcm message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build fcm request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "key="+f.serverKey)

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("send fcm request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fcm responded with status %d", resp.StatusCode)
	}
	return nil
}
