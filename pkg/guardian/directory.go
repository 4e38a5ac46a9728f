package guardian

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"liyu1981.xyz/guardian-alert-service/pkg/common"
	"liyu1981.xyz/guardian-alert-service/pkg/models"
)

// columns UpdateUser may change
var updatableUserFields = map[string]string{
	"name":        "name",
	"phone":       "phone",
	"caretakerId": "caretaker_id",
	"role":        "role",
}

func (g *Guardian) getUser(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	err := g.Db.Conn.WithContext(ctx).First(&user, "id = ?", strings.TrimSpace(userID)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: user %q", ErrNotFound, userID)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (g *Guardian) getUsersByRole(ctx context.Context, role models.UserRole) ([]models.User, error) {
	users := []models.User{}
	err := g.Db.Conn.WithContext(ctx).Where("role = ?", role).Order("id").Find(&users).Error
	return users, err
}

func (g *Guardian) getUsersByCaretaker(ctx context.Context, caretakerID string) ([]models.User, error) {
	users := []models.User{}
	err := g.Db.Conn.WithContext(ctx).
		Where("caretaker_id = ? AND role = ?", strings.TrimSpace(caretakerID), models.UserRoleElderly).
		Order("id").
		Find(&users).Error
	return users, err
}

func (g *Guardian) updateUser(ctx context.Context, userID string, fields map[string]any) (*models.User, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameGuardianCore,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryDirectory),
	)

	updates := map[string]any{}
	for key, value := range fields {
		column, ok := updatableUserFields[key]
		if !ok {
			return nil, fmt.Errorf("field %q cannot be updated", key)
		}
		updates[column] = value
	}

	user, err := g.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(updates) == 0 {
		return user, nil
	}

	if err := g.Db.Conn.WithContext(ctx).Model(user).Updates(updates).Error; err != nil {
		return nil, err
	}

	logger.Info("Updated user", zap.String("userId", user.ID), zap.Any("fields", updates))
	return g.getUser(ctx, userID)
}

func (g *Guardian) upsertUser(ctx context.Context, user *models.User) error {
	return g.Db.Conn.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "role", "caretaker_id", "phone", "updated_at"}),
	}).Create(user).Error
}

type IDirectoryImpl struct {
	g *Guardian
}

func (id *IDirectoryImpl) GetUser(ctx context.Context, userID string) (*models.User, error) {
	return id.g.getUser(ctx, userID)
}

func (id *IDirectoryImpl) GetUsersByRole(ctx context.Context, role models.UserRole) ([]models.User, error) {
	return id.g.getUsersByRole(ctx, role)
}

func (id *IDirectoryImpl) GetUsersByCaretaker(ctx context.Context, caretakerID string) ([]models.User, error) {
	return id.g.getUsersByCaretaker(ctx, caretakerID)
}

func (id *IDirectoryImpl) UpdateUser(ctx context.Context, userID string, fields map[string]any) (*models.User, error) {
	return id.g.updateUser(ctx, userID, fields)
}

func (id *IDirectoryImpl) UpsertUser(ctx context.Context, user *models.User) error {
	return id.g.upsertUser(ctx, user)
}

func (g *Guardian) GetIDirectory() IDirectory {
	return &IDirectoryImpl{g: g}
}
