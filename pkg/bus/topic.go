package bus

import (
	"errors"
	"fmt"
	"strings"
)

var ErrMalformedTopic = errors.New("malformed topic")

type Kind string

const (
	KindFall   Kind = "fall"
	KindStatus Kind = "status"
)

const DefaultNamespace = "guardiancare"

// Topic is a parsed device topic: <namespace>/device/<deviceId>/<kind>.
type Topic struct {
	Namespace string
	DeviceID  string
	Kind      Kind
}

func (t Topic) String() string {
	return t.Namespace + "/device/" + t.DeviceID + "/" + string(t.Kind)
}

// ParseTopic accepts only topics under namespace. An empty namespace accepts
// any.
func ParseTopic(namespace, topic string) (Topic, error) {
	parts := strings.Split(topic, "/")
	if len(parts) != 4 || parts[1] != "device" {
		return Topic{}, fmt.Errorf("%w: %q", ErrMalformedTopic, topic)
	}
	if parts[0] == "" || (namespace != "" && parts[0] != namespace) {
		return Topic{}, fmt.Errorf("%w: unexpected namespace in %q", ErrMalformedTopic, topic)
	}
	deviceID := strings.TrimSpace(parts[2])
	if deviceID == "" || deviceID == "+" || deviceID == "#" {
		return Topic{}, fmt.Errorf("%w: missing device id in %q", ErrMalformedTopic, topic)
	}

	kind := Kind(parts[3])
	switch kind {
	case KindFall, KindStatus:
	default:
		return Topic{}, fmt.Errorf("%w: unknown event kind in %q", ErrMalformedTopic, topic)
	}

	return Topic{Namespace: parts[0], DeviceID: deviceID, Kind: kind}, nil
}

// Filters are the wildcard subscriptions covering every device of a
// namespace.
func Filters(namespace string) []string {
	return []string{
		namespace + "/device/+/" + string(KindFall),
		namespace + "/device/+/" + string(KindStatus),
	}
}
