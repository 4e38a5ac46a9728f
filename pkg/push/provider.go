package push

import (
	"context"
	"errors"

	"liyu1981.xyz/guardian-alert-service/pkg/models"
)

//go:generate mockgen -destination=./mocks/mock_provider.go -package=mocks liyu1981.xyz/guardian-alert-service/pkg/push Provider

// ErrInvalidToken marks a token the provider will never deliver to again.
var ErrInvalidToken = errors.New("push token is invalid or unregistered")

type Message struct {
	Title string
	Body  string
	Data  map[string]any
}

// Provider delivers one message to one device token and returns the
// provider message id.
type Provider interface {
	Send(ctx context.Context, token string, msg Message) (string, error)
}

// Classify maps a Send error onto the recorded attempt result.
func Classify(err error) models.AttemptResult {
	switch {
	case err == nil:
		return models.AttemptResultDelivered
	case errors.Is(err, ErrInvalidToken):
		return models.AttemptResultInvalidToken
	default:
		return models.AttemptResultOtherError
	}
}
