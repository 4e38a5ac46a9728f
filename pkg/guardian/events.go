package guardian

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	SourceBus     = "bus"
	SourceGateway = "gateway"
	SourceManual  = "manual"
)

// EventTime is a device timestamp. Devices send either a string or epoch
// seconds/milliseconds. Numbers are normalized to RFC 3339 in UTC.
type EventTime string

func (t *EventTime) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*t = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = EventTime(strings.TrimSpace(s))
		return nil
	}
	n, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		// kept verbatim so the store rejects it and falls back to receipt time
		*t = EventTime(string(b))
		return nil
	}
	*t = EventTime(EpochToRFC3339(n))
	return nil
}

// EpochToRFC3339 treats values above 1e12 as milliseconds.
func EpochToRFC3339(n float64) string {
	var ts time.Time
	if math.Abs(n) >= 1e12 {
		ts = time.UnixMilli(int64(n))
	} else {
		sec, frac := math.Modf(n)
		ts = time.Unix(int64(sec), int64(frac*1e9))
	}
	return ts.UTC().Format(time.RFC3339Nano)
}

type FallEvent struct {
	Token      string         `json:"token"`
	DeviceID   string         `json:"deviceId,omitempty"`
	Source     string         `json:"source,omitempty"`
	Location   map[string]any `json:"location,omitempty"`
	SensorData map[string]any `json:"sensorData,omitempty"`
	Impact     any            `json:"impact,omitempty"`
	Timestamp  EventTime      `json:"timestamp,omitempty"`
}

// Metadata is the event part copied into a notification's data.
func (e FallEvent) Metadata() map[string]any {
	data := map[string]any{}
	if e.DeviceID != "" {
		data["deviceId"] = e.DeviceID
	}
	if e.Source != "" {
		data["source"] = e.Source
	}
	if e.Location != nil {
		data["location"] = e.Location
	}
	if e.SensorData != nil {
		data["sensorData"] = e.SensorData
	}
	if e.Impact != nil {
		data["impact"] = e.Impact
	}
	if e.Timestamp != "" {
		data["timestamp"] = string(e.Timestamp)
	}
	return data
}

type StatusEvent struct {
	BatteryLevel *float64  `json:"batteryLevel,omitempty"`
	WifiStrength *float64  `json:"wifiStrength,omitempty"`
	IPAddress    string    `json:"ipAddress,omitempty"`
	Timestamp    EventTime `json:"timestamp,omitempty"`
}

// FallReport describes how far a verified fall event got.
type FallReport struct {
	PersonID     string
	CheckIn      *CheckInRef
	Notification string
	Result       *DispatchResult
	// Skipped is set when the event ended early because nobody could be
	// alerted. It carries ErrPersonNotFound or ErrNoCaretakerAssigned.
	Skipped error
}

type CheckInRef struct {
	ID  uint
	Day string
}
