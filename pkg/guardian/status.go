package guardian

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm/clause"
	"liyu1981.xyz/guardian-alert-service/pkg/common"
	"liyu1981.xyz/guardian-alert-service/pkg/db"
	"liyu1981.xyz/guardian-alert-service/pkg/models"
)

func statusLogger() *zap.Logger {
	return common.GetLoggerWith(
		common.LoggerNameGuardianCore,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryStatus),
	)
}

func (g *Guardian) handleStatus(ctx context.Context, deviceID string, event StatusEvent) error {
	deviceID = strings.TrimSpace(deviceID)
	if deviceID == "" {
		return fmt.Errorf("device id is required")
	}
	return g.Status.Record(ctx, &models.DeviceStatus{
		DeviceID:     deviceID,
		BatteryLevel: event.BatteryLevel,
		WifiStrength: event.WifiStrength,
		IPAddress:    event.IPAddress,
		ReportedAt:   string(event.Timestamp),
	})
}

// DbStatusRecorder keeps the last status of every device in device_statuses.
type DbStatusRecorder struct {
	db *db.DB
}

func NewDbStatusRecorder(database *db.DB) *DbStatusRecorder {
	return &DbStatusRecorder{db: database}
}

func (r *DbStatusRecorder) Record(ctx context.Context, status *models.DeviceStatus) error {
	status.UpdatedAt = time.Now().UTC()
	err := r.db.Conn.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "device_id"}},
		UpdateAll: true,
	}).Create(status).Error
	if err != nil {
		return fmt.Errorf("record device status: %w", err)
	}
	statusLogger().Debug("Recorded device status", zap.String("deviceId", status.DeviceID))
	return nil
}

type redisHashWriter interface {
	HSet(ctx context.Context, key string, values ...any) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// RedisStatusRecorder keeps the last status of every device in a redis hash
// that expires after ttl without reports.
type RedisStatusRecorder struct {
	client redisHashWriter
	ttl    time.Duration
}

func NewRedisStatusRecorder(client *redis.Client, ttl time.Duration) *RedisStatusRecorder {
	return &RedisStatusRecorder{client: client, ttl: ttl}
}

func StatusKey(deviceID string) string {
	return "guardian:device:" + deviceID + ":status"
}

func (r *RedisStatusRecorder) Record(ctx context.Context, status *models.DeviceStatus) error {
	key := StatusKey(status.DeviceID)
	fields := map[string]any{
		"updatedAt": time.Now().UTC().Format(time.RFC3339),
	}
	if status.BatteryLevel != nil {
		fields["batteryLevel"] = strconv.FormatFloat(*status.BatteryLevel, 'f', -1, 64)
	}
	if status.WifiStrength != nil {
		fields["wifiStrength"] = strconv.FormatFloat(*status.WifiStrength, 'f', -1, 64)
	}
	if status.IPAddress != "" {
		fields["ipAddress"] = status.IPAddress
	}
	if status.ReportedAt != "" {
		fields["timestamp"] = status.ReportedAt
	}

	if err := r.client.HSet(ctx, key, fields).Err(); err != nil {
		return fmt.Errorf("record device status: %w", err)
	}
	if r.ttl > 0 {
		if err := r.client.Expire(ctx, key, r.ttl).Err(); err != nil {
			return fmt.Errorf("expire device status: %w", err)
		}
	}
	statusLogger().Debug("Recorded device status", zap.String("deviceId", status.DeviceID), zap.String("key", key))
	return nil
}
