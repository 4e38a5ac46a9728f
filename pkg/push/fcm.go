package push

import (
	"context"
	"encoding/json"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
	"google.golang.org/api/option"
	"liyu1981.xyz/guardian-alert-service/pkg/common"
)

const AndroidChannelID = "guardiancare-notifications"

type fcmSender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

type FCMProvider struct {
	client fcmSender
	logger *zap.Logger
}

// NewFCMProvider uses credentialsFile when set, otherwise the application
// default credentials.
func NewFCMProvider(ctx context.Context, credentialsFile string) (*FCMProvider, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("push: initialize firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("push: get messaging client: %w", err)
	}

	return newFCMProvider(client), nil
}

func newFCMProvider(client fcmSender) *FCMProvider {
	return &FCMProvider{
		client: client,
		logger: common.GetLoggerWith(common.LoggerNamePush, zap.String(common.LoggerFieldCategory, "fcm")),
	}
}

func (p *FCMProvider) Send(ctx context.Context, token string, msg Message) (string, error) {
	id, err := p.client.Send(ctx, buildFCMMessage(token, msg))
	if err != nil {
		if messaging.IsUnregistered(err) || messaging.IsSenderIDMismatch(err) {
			return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
		}
		return "", fmt.Errorf("push: fcm send: %w", err)
	}
	p.logger.Debug("FCM message sent", zap.String("token", common.MaskToken(token)), zap.String("messageId", id))
	return id, nil
}

func buildFCMMessage(token string, msg Message) *messaging.Message {
	badge := 1
	return &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: msg.Title,
			Body:  msg.Body,
		},
		Data: StringifyData(msg.Data),
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				Sound:     "default",
				Priority:  messaging.PriorityHigh,
				ChannelID: AndroidChannelID,
			},
		},
		APNS: &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Sound: "default",
					Badge: &badge,
				},
			},
		},
	}
}

// StringifyData flattens a payload into the string map push providers accept.
// Nil values are dropped, maps and slices become JSON.
func StringifyData(data map[string]any) map[string]string {
	out := make(map[string]string, len(data))
	for k, v := range data {
		switch val := v.(type) {
		case nil:
			continue
		case string:
			out[k] = val
		case map[string]any, []any:
			b, err := json.Marshal(val)
			if err != nil {
				continue
			}
			out[k] = string(b)
		default:
			out[k] = fmt.Sprint(val)
		}
	}
	return out
}
