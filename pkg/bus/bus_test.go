package bus

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zapcore"
	"golang.org/x/time/rate"
	"liyu1981.xyz/guardian-alert-service/pkg/common"
	"liyu1981.xyz/guardian-alert-service/pkg/guardian"
	"liyu1981.xyz/guardian-alert-service/pkg/guardian/mocks"
)

func parseLogs(buf *bytes.Buffer) []map[string]any {
	var logs []map[string]any
	scanner := bufio.NewScanner(bytes.NewReader(buf.Bytes()))
	for scanner.Scan() {
		var entry map[string]any
		if err := json.Unmarshal(scanner.Bytes(), &entry); err == nil {
			logs = append(logs, entry)
		}
	}
	return logs
}

func hasLog(logs []map[string]any, msg string) bool {
	for _, l := range logs {
		if l["msg"] == msg {
			return true
		}
	}
	return false
}

func TestParseTopic(t *testing.T) {
	parsed, err := ParseTopic("guardiancare", "guardiancare/device/m5-01/fall")
	require.NoError(t, err)
	assert.Equal(t, Topic{Namespace: "guardiancare", DeviceID: "m5-01", Kind: KindFall}, parsed)
	assert.Equal(t, "guardiancare/device/m5-01/fall", parsed.String())

	parsed, err = ParseTopic("", "lab/device/m5-02/status")
	require.NoError(t, err)
	assert.Equal(t, KindStatus, parsed.Kind)
	assert.Equal(t, "lab", parsed.Namespace)

	for _, bad := range []string{
		"",
		"guardiancare/device/m5-01",
		"guardiancare/device/m5-01/fall/extra",
		"guardiancare/devices/m5-01/fall",
		"other/device/m5-01/fall",
		"guardiancare/device//fall",
		"guardiancare/device/+/fall",
		"guardiancare/device/m5-01/heartbeat",
	} {
		_, err := ParseTopic("guardiancare", bad)
		assert.ErrorIs(t, err, ErrMalformedTopic, bad)
	}
}

func TestFilters(t *testing.T) {
	assert.Equal(t, []string{"ns/device/+/fall", "ns/device/+/status"}, Filters("ns"))
}

func TestAdapter_Fall(t *testing.T) {
	common.SetTestLoggerNop()
	ctrl := gomock.NewController(t)
	pipeline := mocks.NewMockIPipeline(ctrl)

	adapter := NewAdapter(pipeline, AdapterOptions{Timeout: time.Second})

	pipeline.EXPECT().HandleFall(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, event guardian.FallEvent) (*guardian.FallReport, error) {
			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline)
			assert.Equal(t, "jwt", event.Token)
			assert.Equal(t, "m5-01", event.DeviceID)
			assert.Equal(t, guardian.SourceBus, event.Source)
			assert.Equal(t, guardian.EventTime("2025-03-01T01:00:00Z"), event.Timestamp)
			assert.Equal(t, "kitchen", event.Location["room"])
			return &guardian.FallReport{PersonID: "p1", Result: &guardian.DispatchResult{}}, nil
		}).Times(1)

	adapter.Handle("guardiancare/device/m5-01/fall",
		[]byte(`{"token":"jwt","timestamp":1740790800,"location":{"room":"kitchen"}}`))
	adapter.Wait()
}

func TestAdapter_IgnoresBadMessages(t *testing.T) {
	var buf bytes.Buffer
	common.SetTestCaptureLogger(&buf, zapcore.InfoLevel)
	ctrl := gomock.NewController(t)
	// no expectations: nothing may reach the pipeline
	pipeline := mocks.NewMockIPipeline(ctrl)

	adapter := NewAdapter(pipeline, AdapterOptions{})
	adapter.Handle("guardiancare/device/m5-01/reboot", []byte(`{}`))
	adapter.Handle("elsewhere/device/m5-01/fall", []byte(`{"token":"jwt"}`))
	adapter.Handle("guardiancare/device/m5-01/fall", []byte(`not json`))
	adapter.Handle("guardiancare/device/m5-01/status", []byte(`[1,2]`))
	adapter.Wait()

	logs := parseLogs(&buf)
	assert.True(t, hasLog(logs, "Ignored bus message"))
	assert.True(t, hasLog(logs, "Failed to handle bus message"))
}

func TestAdapter_RecoversFromPanic(t *testing.T) {
	var buf bytes.Buffer
	common.SetTestCaptureLogger(&buf, zapcore.InfoLevel)
	ctrl := gomock.NewController(t)
	pipeline := mocks.NewMockIPipeline(ctrl)

	adapter := NewAdapter(pipeline, AdapterOptions{})

	pipeline.EXPECT().HandleFall(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, event guardian.FallEvent) (*guardian.FallReport, error) {
			panic("boom")
		}).Times(1)
	pipeline.EXPECT().HandleStatus(gomock.Any(), "m5-01", gomock.Any()).Return(nil).Times(1)

	adapter.Handle("guardiancare/device/m5-01/fall", []byte(`{"token":"jwt"}`))
	adapter.Wait()
	adapter.Handle("guardiancare/device/m5-01/status", []byte(`{"batteryLevel":50}`))
	adapter.Wait()

	assert.True(t, hasLog(parseLogs(&buf), "Recovered from panic while handling bus message"))
}

func TestAdapter_SlowEventDoesNotBlockNext(t *testing.T) {
	common.SetTestLoggerNop()
	ctrl := gomock.NewController(t)
	pipeline := mocks.NewMockIPipeline(ctrl)

	adapter := NewAdapter(pipeline, AdapterOptions{Timeout: 5 * time.Second})

	release := make(chan struct{})
	secondDone := make(chan struct{})

	pipeline.EXPECT().HandleFall(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, event guardian.FallEvent) (*guardian.FallReport, error) {
			<-release
			return nil, nil
		}).Times(1)
	pipeline.EXPECT().HandleStatus(gomock.Any(), "m5-02", gomock.Any()).
		DoAndReturn(func(ctx context.Context, deviceID string, event guardian.StatusEvent) error {
			close(secondDone)
			return nil
		}).Times(1)

	adapter.Handle("guardiancare/device/m5-01/fall", []byte(`{"token":"jwt"}`))
	adapter.Handle("guardiancare/device/m5-02/status", []byte(`{}`))

	select {
	case <-secondDone:
	case <-time.After(2 * time.Second):
		t.Fatal("status message was blocked by a slow fall event")
	}
	close(release)
	adapter.Wait()
}

func TestAdapter_Timeout(t *testing.T) {
	var buf bytes.Buffer
	common.SetTestCaptureLogger(&buf, zapcore.InfoLevel)
	ctrl := gomock.NewController(t)
	pipeline := mocks.NewMockIPipeline(ctrl)

	adapter := NewAdapter(pipeline, AdapterOptions{Timeout: 20 * time.Millisecond})

	pipeline.EXPECT().HandleStatus(gomock.Any(), "m5-01", gomock.Any()).
		DoAndReturn(func(ctx context.Context, deviceID string, event guardian.StatusEvent) error {
			<-ctx.Done()
			return ctx.Err()
		}).Times(1)

	adapter.Handle("guardiancare/device/m5-01/status", []byte(`{}`))
	adapter.Wait()

	var found bool
	for _, l := range parseLogs(&buf) {
		if l["msg"] == "Failed to handle bus message" {
			found = true
			assert.Contains(t, l["error"], context.DeadlineExceeded.Error())
		}
	}
	assert.True(t, found)
}

func TestAdapter_StatusRateLimit(t *testing.T) {
	common.SetTestLoggerNop()
	ctrl := gomock.NewController(t)
	pipeline := mocks.NewMockIPipeline(ctrl)

	limiter := guardian.NewRateLimiterStore(rate.Limit(0.001), 1)
	adapter := NewAdapter(pipeline, AdapterOptions{Limiter: limiter})

	pipeline.EXPECT().HandleStatus(gomock.Any(), "m5-01", gomock.Any()).Return(nil).Times(1)
	pipeline.EXPECT().HandleStatus(gomock.Any(), "m5-02", gomock.Any()).Return(nil).Times(1)
	pipeline.EXPECT().HandleFall(gomock.Any(), gomock.Any()).Return(nil, nil).Times(3)

	for range 3 {
		adapter.Handle("guardiancare/device/m5-01/status", []byte(`{"batteryLevel":10}`))
		// falls are never throttled
		adapter.Handle("guardiancare/device/m5-01/fall", []byte(`{"token":"jwt"}`))
	}
	adapter.Handle("guardiancare/device/m5-02/status", []byte(`{}`))
	adapter.Wait()
}

func TestAdapter_FallErrorIsLogged(t *testing.T) {
	var buf bytes.Buffer
	common.SetTestCaptureLogger(&buf, zapcore.InfoLevel)
	ctrl := gomock.NewController(t)
	pipeline := mocks.NewMockIPipeline(ctrl)

	adapter := NewAdapter(pipeline, AdapterOptions{})
	pipeline.EXPECT().HandleFall(gomock.Any(), gomock.Any()).
		Return(nil, errors.Join(guardian.ErrAuthInvalid, errors.New("signature is invalid"))).Times(1)

	adapter.Handle("guardiancare/device/m5-01/fall", []byte(`{"token":"forged"}`))
	adapter.Wait()

	assert.True(t, hasLog(parseLogs(&buf), "Failed to handle bus message"))
}
