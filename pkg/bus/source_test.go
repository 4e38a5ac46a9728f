package bus

import (
	"context"
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/pubsub"
	"cloud.google.com/go/pubsub/pstest"
	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"google.golang.org/api/option"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"liyu1981.xyz/guardian-alert-service/pkg/common"
	"liyu1981.xyz/guardian-alert-service/pkg/guardian"
	"liyu1981.xyz/guardian-alert-service/pkg/guardian/mocks"
)

type doneToken struct {
	err error
}

func (t doneToken) Wait() bool                       { return true }
func (t doneToken) WaitTimeout(_ time.Duration) bool { return true }
func (t doneToken) Error() error                     { return t.err }

func (t doneToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}

type fakeSubscriber struct {
	filters  map[string]byte
	callback mqtt.MessageHandler
	err      error
}

func (f *fakeSubscriber) SubscribeMultiple(filters map[string]byte, callback mqtt.MessageHandler) mqtt.Token {
	f.filters = filters
	f.callback = callback
	return doneToken{err: f.err}
}

type fakeMessage struct {
	topic   string
	payload []byte
}

func (m fakeMessage) Duplicate() bool   { return false }
func (m fakeMessage) Qos() byte         { return mqttQoS }
func (m fakeMessage) Retained() bool    { return false }
func (m fakeMessage) Topic() string     { return m.topic }
func (m fakeMessage) MessageID() uint16 { return 1 }
func (m fakeMessage) Payload() []byte   { return m.payload }
func (m fakeMessage) Ack()              {}

func TestMQTTSource_SubscribeAndDeliver(t *testing.T) {
	common.SetTestLoggerNop()
	ctrl := gomock.NewController(t)
	pipeline := mocks.NewMockIPipeline(ctrl)

	adapter := NewAdapter(pipeline, AdapterOptions{Namespace: "lab"})
	source := NewMQTTSource(adapter, MQTTOptions{BrokerURL: "tcp://127.0.0.1:1"})

	sub := &fakeSubscriber{}
	require.NoError(t, source.subscribe(sub))
	assert.Equal(t, map[string]byte{
		"lab/device/+/fall":   1,
		"lab/device/+/status": 1,
	}, sub.filters)

	pipeline.EXPECT().HandleStatus(gomock.Any(), "m5-01", gomock.Any()).
		DoAndReturn(func(ctx context.Context, deviceID string, event guardian.StatusEvent) error {
			require.NotNil(t, event.WifiStrength)
			assert.Equal(t, -61.0, *event.WifiStrength)
			return nil
		}).Times(1)

	sub.callback(nil, fakeMessage{topic: "lab/device/m5-01/status", payload: []byte(`{"wifiStrength":-61}`)})
	adapter.Wait()
}

func TestMQTTSource_SubscribeError(t *testing.T) {
	common.SetTestLoggerNop()
	ctrl := gomock.NewController(t)

	adapter := NewAdapter(mocks.NewMockIPipeline(ctrl), AdapterOptions{})
	source := NewMQTTSource(adapter, MQTTOptions{BrokerURL: "tcp://127.0.0.1:1"})

	refused := errors.New("not authorized")
	assert.ErrorIs(t, source.subscribe(&fakeSubscriber{err: refused}), refused)
}

func TestMQTTSource_StartStopsWithContext(t *testing.T) {
	common.SetTestLoggerNop()
	ctrl := gomock.NewController(t)

	adapter := NewAdapter(mocks.NewMockIPipeline(ctrl), AdapterOptions{})
	source := NewMQTTSource(adapter, MQTTOptions{BrokerURL: "tcp://127.0.0.1:1"})
	defer source.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	assert.NoError(t, source.Start(ctx))
}

func TestPubSubSource(t *testing.T) {
	common.SetTestLoggerNop()
	ctrl := gomock.NewController(t)
	pipeline := mocks.NewMockIPipeline(ctrl)

	srv := pstest.NewServer()
	t.Cleanup(func() { _ = srv.Close() })

	conn, err := grpc.NewClient(srv.Addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client, err := pubsub.NewClient(ctx, "guardian-test", option.WithGRPCConn(conn))
	require.NoError(t, err)

	topic, err := client.CreateTopic(ctx, "device-relay")
	require.NoError(t, err)
	defer topic.Stop()
	_, err = client.CreateSubscription(ctx, "device-relay-sub", pubsub.SubscriptionConfig{Topic: topic})
	require.NoError(t, err)

	adapter := NewAdapter(pipeline, AdapterOptions{})
	source := newPubSubSource(adapter, client, "device-relay-sub")

	received := make(chan string, 1)
	pipeline.EXPECT().HandleStatus(gomock.Any(), "m5-07", gomock.Any()).
		DoAndReturn(func(ctx context.Context, deviceID string, event guardian.StatusEvent) error {
			received <- event.IPAddress
			return nil
		}).Times(1)

	stopped := make(chan error, 1)
	go func() { stopped <- source.Start(ctx) }()

	// a message without the topic attribute is acked and dropped
	_, err = topic.Publish(ctx, &pubsub.Message{Data: []byte(`{}`)}).Get(ctx)
	require.NoError(t, err)
	_, err = topic.Publish(ctx, &pubsub.Message{
		Data:       []byte(`{"ipAddress":"10.0.0.7"}`),
		Attributes: map[string]string{TopicAttribute: "guardiancare/device/m5-07/status"},
	}).Get(ctx)
	require.NoError(t, err)

	select {
	case ip := <-received:
		assert.Equal(t, "10.0.0.7", ip)
	case <-time.After(5 * time.Second):
		t.Fatal("status message was not delivered")
	}

	cancel()
	require.NoError(t, <-stopped)
	adapter.Wait()
	source.Close()
}
