package fcm

import (
	"context"
	"fmt"
	"log"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	"thoughtfolio-backend/pkg/metrics"
)

// Notification is the payload of a push sent to every device of a user
type Notification struct {
	Title string
	Body  string
	Data  map[string]string
	Link  string // opened when the notification is clicked on web
}

// Client sends pushes through Firebase Cloud Messaging
type Client struct {
	messaging *messaging.Client
}

// NewClient initializes Firebase. An empty credentials path falls back to
// application default credentials.
func NewClient(ctx context.Context, credentialsFile string) (*Client, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}
	mc, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get messaging client: %w", err)
	}

	log.Println("[FCM] Client initialized")
	return &Client{messaging: mc}, nil
}

func buildMulticast(tokens []string, n Notification) *messaging.MulticastMessage {
	msg := &messaging.MulticastMessage{
		Tokens: tokens,
		Notification: &messaging.Notification{
			Title: n.Title,
			Body:  n.Body,
		},
		Data: n.Data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
		},
	}
	if n.Link != "" {
		msg.Webpush = &messaging.WebpushConfig{
			FCMOptions: &messaging.WebpushFCMOptions{Link: n.Link},
		}
	}
	return msg
}

// SendToDevices pushes to all tokens and returns the ones FCM rejected as
// unregistered or invalid, so the caller can forget them
func (c *Client) SendToDevices(ctx context.Context, tokens []string, n Notification) ([]string, error) {
	if len(tokens) == 0 {
		return nil, nil
	}

	resp, err := c.messaging.SendEachForMulticast(ctx, buildMulticast(tokens, n))
	if err != nil {
		metrics.Get().PushNotifications.WithLabelValues("error").Add(float64(len(tokens)))
		return nil, fmt.Errorf("failed to send FCM multicast message: %w", err)
	}
	metrics.Get().PushNotifications.WithLabelValues("sent").Add(float64(resp.SuccessCount))
	metrics.Get().PushNotifications.WithLabelValues("failed").Add(float64(resp.FailureCount))

	var stale []string
	for i, r := range resp.Responses {
		if r.Success {
			continue
		}
		if messaging.IsUnregistered(r.Error) || messaging.IsInvalidArgument(r.Error) {
			stale = append(stale, tokens[i])
		}
		log.Printf("[FCM] send to device %d failed: %v", i, r.Error)
	}
	return stale, nil
}
