package notify

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// FCMDispatcher delivers messages through Firebase Cloud Messaging.
type FCMDispatcher struct {
	client *messaging.Client
}

// NewFCMDispatcher builds a dispatcher from a service-account JSON blob.
func NewFCMDispatcher(ctx context.Context, credentialsJSON []byte) (*FCMDispatcher, error) {

	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsJSON(credentialsJSON))
	if err != nil {
		return nil, fmt.Errorf("firebase init error: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("fcm client error: %w", err)
	}

	return &FCMDispatcher{client: client}, nil
}

func (d *FCMDispatcher) Send(ctx context.Context, token, title, body string, data map[string]string) error {

	msg := &messaging.Message{
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data:  data,
		Token: token,
	}

	if _, err := d.client.Send(ctx, msg); err != nil {
		return fmt.Errorf("fcm send error: %w", err)
	}

	return nil
}
