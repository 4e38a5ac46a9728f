package guardian

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"liyu1981.xyz/guardian-alert-service/pkg/common"
	"liyu1981.xyz/guardian-alert-service/pkg/models"
)

type fakeHash struct {
	hashes  map[string]map[string]any
	expires map[string]time.Duration
	failSet error
}

func newFakeHash() *fakeHash {
	return &fakeHash{hashes: map[string]map[string]any{}, expires: map[string]time.Duration{}}
}

func (f *fakeHash) HSet(ctx context.Context, key string, values ...any) *redis.IntCmd {
	if f.failSet != nil {
		cmd := redis.NewIntCmd(ctx)
		cmd.SetErr(f.failSet)
		return cmd
	}
	h, ok := f.hashes[key]
	if !ok {
		h = map[string]any{}
		f.hashes[key] = h
	}
	for _, v := range values {
		if m, ok := v.(map[string]any); ok {
			for k, val := range m {
				h[k] = val
			}
		}
	}
	return redis.NewIntResult(int64(len(h)), nil)
}

func (f *fakeHash) Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	f.expires[key] = expiration
	return redis.NewBoolResult(true, nil)
}

func TestRedisStatusRecorder(t *testing.T) {
	common.SetTestLoggerNop()

	fake := newFakeHash()
	recorder := &RedisStatusRecorder{client: fake, ttl: 10 * time.Minute}

	battery := 42.5
	err := recorder.Record(context.Background(), &models.DeviceStatus{
		DeviceID:     "m5-01",
		BatteryLevel: &battery,
		IPAddress:    "10.0.0.2",
		ReportedAt:   "2025-03-01T01:00:00Z",
	})
	require.NoError(t, err)

	key := StatusKey("m5-01")
	assert.Equal(t, "guardian:device:m5-01:status", key)
	require.Contains(t, fake.hashes, key)
	assert.Equal(t, "42.5", fake.hashes[key]["batteryLevel"])
	assert.Equal(t, "10.0.0.2", fake.hashes[key]["ipAddress"])
	assert.Equal(t, "2025-03-01T01:00:00Z", fake.hashes[key]["timestamp"])
	assert.NotContains(t, fake.hashes[key], "wifiStrength")
	assert.Equal(t, 10*time.Minute, fake.expires[key])
}

func TestRedisStatusRecorder_NoTTL(t *testing.T) {
	common.SetTestLoggerNop()

	fake := newFakeHash()
	recorder := &RedisStatusRecorder{client: fake}

	require.NoError(t, recorder.Record(context.Background(), &models.DeviceStatus{DeviceID: "m5-01"}))
	assert.Empty(t, fake.expires)
}

func TestRedisStatusRecorder_Error(t *testing.T) {
	common.SetTestLoggerNop()

	fake := newFakeHash()
	fake.failSet = errors.New("connection refused")
	recorder := &RedisStatusRecorder{client: fake, ttl: time.Minute}

	err := recorder.Record(context.Background(), &models.DeviceStatus{DeviceID: "m5-01"})
	assert.ErrorIs(t, err, fake.failSet)
	assert.Empty(t, fake.expires)
}

func TestEpochToRFC3339(t *testing.T) {
	assert.Equal(t, "2025-03-01T01:00:00Z", EpochToRFC3339(1740790800))
	assert.Equal(t, "2025-03-01T01:00:00.25Z", EpochToRFC3339(1740790800.25))
	assert.Equal(t, "2025-03-01T01:00:00.123Z", EpochToRFC3339(1740790800123))
}

func TestEventTime_Verbatim(t *testing.T) {
	var ts EventTime
	require.NoError(t, ts.UnmarshalJSON([]byte(`true`)))
	assert.Equal(t, EventTime("true"), ts)

	require.NoError(t, ts.UnmarshalJSON([]byte(`"  2025-03-01T09:00:00Z "`)))
	assert.Equal(t, EventTime("2025-03-01T09:00:00Z"), ts)
}
