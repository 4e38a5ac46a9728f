package guardian

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm/clause"
	"liyu1981.xyz/guardian-alert-service/pkg/common"
	"liyu1981.xyz/guardian-alert-service/pkg/models"
)

func ParsePlatform(value string) (models.Platform, error) {
	switch p := models.Platform(strings.ToLower(strings.TrimSpace(value))); p {
	case models.PlatformAndroid, models.PlatformIOS, models.PlatformWeb:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPlatform, value)
	}
}

func (g *Guardian) registerDevice(ctx context.Context, userID, token string, platform models.Platform) (*models.RegisteredDevice, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameGuardianCore,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryDevice),
	)

	userID, token = strings.TrimSpace(userID), strings.TrimSpace(token)
	if userID == "" || token == "" {
		return nil, fmt.Errorf("user id and device token are required")
	}
	platform, err := ParsePlatform(string(platform))
	if err != nil {
		return nil, err
	}

	now := time.Now()
	device := models.RegisteredDevice{
		UserID:    userID,
		Token:     token,
		Platform:  platform,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = g.Db.Conn.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "token"}},
		DoUpdates: clause.AssignmentColumns([]string{"platform", "updated_at"}),
	}).Create(&device).Error
	if err != nil {
		return nil, fmt.Errorf("register device: %w", err)
	}

	var stored models.RegisteredDevice
	if err := g.Db.Conn.WithContext(ctx).
		First(&stored, "user_id = ? AND token = ?", userID, token).Error; err != nil {
		return nil, err
	}

	logger.Info("Registered device",
		zap.String("userId", userID),
		zap.String("token", common.MaskToken(token)),
		zap.String("platform", string(platform)),
	)
	return &stored, nil
}

func (g *Guardian) listDevicesByUser(ctx context.Context, userID string) ([]models.RegisteredDevice, error) {
	devices := []models.RegisteredDevice{}
	err := g.Db.Conn.WithContext(ctx).
		Where("user_id = ?", strings.TrimSpace(userID)).
		Order("id").
		Find(&devices).Error
	return devices, err
}

// removeDevice deletes by key. A missing row is not an error, so concurrent
// prunes of the same token are harmless.
func (g *Guardian) removeDevice(ctx context.Context, userID, token string) error {
	logger := common.GetLoggerWith(
		common.LoggerNameGuardianCore,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryDevice),
	)

	result := g.Db.Conn.WithContext(ctx).
		Where("user_id = ? AND token = ?", strings.TrimSpace(userID), strings.TrimSpace(token)).
		Delete(&models.RegisteredDevice{})
	if result.Error != nil {
		return fmt.Errorf("remove device: %w", result.Error)
	}

	logger.Info("Removed device",
		zap.String("userId", userID),
		zap.String("token", common.MaskToken(token)),
		zap.Int64("rows", result.RowsAffected),
	)
	return nil
}

type IDeviceRegistryImpl struct {
	g *Guardian
}

func (id *IDeviceRegistryImpl) Register(ctx context.Context, userID, token string, platform models.Platform) (*models.RegisteredDevice, error) {
	return id.g.registerDevice(ctx, userID, token, platform)
}

func (id *IDeviceRegistryImpl) ListByUser(ctx context.Context, userID string) ([]models.RegisteredDevice, error) {
	return id.g.listDevicesByUser(ctx, userID)
}

func (id *IDeviceRegistryImpl) Remove(ctx context.Context, userID, token string) error {
	return id.g.removeDevice(ctx, userID, token)
}

func (g *Guardian) GetIDeviceRegistry() IDeviceRegistry {
	return &IDeviceRegistryImpl{g: g}
}
