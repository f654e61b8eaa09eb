// AngelaMos | 2026
// fcm.go

package push

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	"github.com/deenhub-app/admin-backend/internal/config"
)

// Client is the push-delivery provider surface the dispatcher depends
// on. Tests substitute a fake; production wires FCM.
type Client interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
	SendMulticast(
		ctx context.Context,
		message *messaging.MulticastMessage,
	) (*messaging.BatchResponse, error)
}

// MulticastLimit is FCM's hard cap on tokens per multicast call.
const MulticastLimit = 500

type FCMClient struct {
	client *messaging.Client
}

func NewFCMClient(
	ctx context.Context,
	cfg config.FirebaseConfig,
) (*FCMClient, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	conf := &firebase.Config{ProjectID: cfg.ProjectID}
	app, err := firebase.NewApp(ctx, conf, opts...)
	if err != nil {
		return nil, fmt.Errorf("create firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("create messaging client: %w", err)
	}

	return &FCMClient{client: client}, nil
}

func (c *FCMClient) Send(
	ctx context.Context,
	message *messaging.Message,
) (string, error) {
	id, err := c.client.Send(ctx, message)
	if err != nil {
		return "", fmt.Errorf("fcm send: %w", err)
	}
	return id, nil
}

func (c *FCMClient) SendMulticast(
	ctx context.Context,
	message *messaging.MulticastMessage,
) (*messaging.BatchResponse, error) {
	resp, err := c.client.SendMulticast(ctx, message)
	if err != nil {
		return nil, fmt.Errorf("fcm multicast: %w", err)
	}
	return resp, nil
}

// Notification builds the shared notification payload with the mobile
// app's default sound and priority settings.
func Notification(title, body string) *messaging.Notification {
	return &messaging.Notification{
		Title: title,
		Body:  body,
	}
}

// AndroidConfig and APNSConfig mirror what the mobile client expects
// for foreground alert delivery.
func AndroidConfig() *messaging.AndroidConfig {
	return &messaging.AndroidConfig{Priority: "high"}
}

func APNSConfig(title, body string) *messaging.APNSConfig {
	return &messaging.APNSConfig{
		Headers: map[string]string{"apns-priority": "10"},
		Payload: &messaging.APNSPayload{
			Aps: &messaging.Aps{
				Alert: &messaging.ApsAlert{
					Title: title,
					Body:  body,
				},
				Sound: "default",
			},
		},
	}
}

var _ Client = (*FCMClient)(nil)
