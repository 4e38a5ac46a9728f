package bus

import (
	"context"
	"fmt"

	"cloud.google.com/go/pubsub"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// TopicAttribute carries the device topic of a relayed message.
const TopicAttribute = "topic"

// PubSubSource receives device messages relayed into a Pub/Sub subscription.
type PubSubSource struct {
	adapter *Adapter
	client  *pubsub.Client
	sub     *pubsub.Subscription
}

func NewPubSubSource(ctx context.Context, adapter *Adapter, projectID, subscription, credentialsFile string) (*PubSubSource, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := pubsub.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("create pubsub client: %w", err)
	}
	return newPubSubSource(adapter, client, subscription), nil
}

func newPubSubSource(adapter *Adapter, client *pubsub.Client, subscription string) *PubSubSource {
	return &PubSubSource{
		adapter: adapter,
		client:  client,
		sub:     client.Subscription(subscription),
	}
}

// Start blocks until ctx is done or the subscription fails.
func (s *PubSubSource) Start(ctx context.Context) error {
	getLogger().Info("Listening for device messages", zap.String("subscription", s.sub.ID()))
	if err := s.sub.Receive(ctx, s.receive); err != nil {
		return fmt.Errorf("receive from %s: %w", s.sub.ID(), err)
	}
	return nil
}

func (s *PubSubSource) receive(_ context.Context, msg *pubsub.Message) {
	topic, ok := msg.Attributes[TopicAttribute]
	if !ok {
		getLogger().Warn("Ignored pubsub message without topic attribute", zap.String("messageId", msg.ID))
		msg.Ack()
		return
	}
	s.adapter.Handle(topic, msg.Data)
	msg.Ack()
}

func (s *PubSubSource) Close() {
	if err := s.client.Close(); err != nil {
		getLogger().Warn("Failed to close pubsub client", zap.Error(err))
	}
}
