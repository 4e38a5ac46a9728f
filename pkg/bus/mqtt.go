package bus

import (
	"context"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const mqttQoS byte = 1

type MQTTOptions struct {
	BrokerURL string
	ClientID  string
	Username  string
	Password  string
}

type subscriber interface {
	SubscribeMultiple(filters map[string]byte, callback mqtt.MessageHandler) mqtt.Token
}

// MQTTSource subscribes to the fall and status topics of every device. The
// subscriptions are renewed on each (re)connect.
type MQTTSource struct {
	adapter *Adapter
	client  mqtt.Client
}

func NewMQTTSource(adapter *Adapter, opts MQTTOptions) *MQTTSource {
	s := &MQTTSource{adapter: adapter}

	clientID := opts.ClientID
	if clientID == "" {
		clientID = "guardian-" + uuid.NewString()[:8]
	}

	clientOpts := mqtt.NewClientOptions().
		AddBroker(opts.BrokerURL).
		SetClientID(clientID).
		SetUsername(opts.Username).
		SetPassword(opts.Password).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetMaxReconnectInterval(time.Minute).
		SetOrderMatters(false).
		SetOnConnectHandler(func(c mqtt.Client) {
			if err := s.subscribe(c); err != nil {
				getLogger().Error("Failed to subscribe to device topics", zap.Error(err))
			}
		}).
		SetConnectionLostHandler(func(_ mqtt.Client, err error) {
			getLogger().Warn("MQTT connection lost", zap.Error(err))
		}).
		SetReconnectingHandler(func(_ mqtt.Client, _ *mqtt.ClientOptions) {
			getLogger().Info("Reconnecting to MQTT broker")
		})

	s.client = mqtt.NewClient(clientOpts)
	return s
}

func (s *MQTTSource) subscribe(c subscriber) error {
	filters := map[string]byte{}
	for _, f := range Filters(s.adapter.Namespace()) {
		filters[f] = mqttQoS
	}
	token := c.SubscribeMultiple(filters, s.onMessage)
	token.Wait()
	if err := token.Error(); err != nil {
		return fmt.Errorf("subscribe %v: %w", Filters(s.adapter.Namespace()), err)
	}
	getLogger().Info("Subscribed to device topics", zap.Strings("filters", Filters(s.adapter.Namespace())))
	return nil
}

func (s *MQTTSource) onMessage(_ mqtt.Client, msg mqtt.Message) {
	s.adapter.Handle(msg.Topic(), msg.Payload())
}

// Start connects and blocks until ctx is done. Reconnects are handled by the
// client.
func (s *MQTTSource) Start(ctx context.Context) error {
	token := s.client.Connect()
	select {
	case <-token.Done():
		if err := token.Error(); err != nil {
			return fmt.Errorf("connect to mqtt broker: %w", err)
		}
	case <-ctx.Done():
		return nil
	}
	<-ctx.Done()
	return nil
}

func (s *MQTTSource) Close() {
	s.client.Disconnect(250)
}
