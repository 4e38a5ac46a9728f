package guardian

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"liyu1981.xyz/guardian-alert-service/pkg/common"
	"liyu1981.xyz/guardian-alert-service/pkg/models"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

type ListOptions struct {
	Limit      int
	Skip       int
	UnreadOnly bool
}

func (o ListOptions) normalized() ListOptions {
	if o.Limit <= 0 {
		o.Limit = DefaultListLimit
	}
	if o.Limit > MaxListLimit {
		o.Limit = MaxListLimit
	}
	if o.Skip < 0 {
		o.Skip = 0
	}
	return o
}

func preloadRecipients(tx *gorm.DB) *gorm.DB {
	return tx.Order("position")
}

func (g *Guardian) listNotifications(ctx context.Context, userID string, opts ListOptions) ([]models.Notification, error) {
	opts = opts.normalized()
	userID = strings.TrimSpace(userID)

	tx := g.Db.Conn.WithContext(ctx).
		Model(&models.Notification{}).
		Joins("JOIN notification_recipients ON notification_recipients.notification_id = notifications.id AND notification_recipients.user_id = ?", userID)
	if opts.UnreadOnly {
		tx = tx.Where("notification_recipients.read_at IS NULL")
	}

	notifications := []models.Notification{}
	err := tx.
		Preload("Recipients", preloadRecipients).
		Order("notifications.created_at desc").
		Order("notifications.id").
		Limit(opts.Limit).
		Offset(opts.Skip).
		Find(&notifications).Error
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return notifications, nil
}

func (g *Guardian) getNotification(ctx context.Context, notificationID string) (*models.Notification, error) {
	var notification models.Notification
	err := g.Db.Conn.WithContext(ctx).
		Preload("Recipients", preloadRecipients).
		First(&notification, "id = ?", notificationID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: notification %q", ErrNotFound, notificationID)
	}
	if err != nil {
		return nil, err
	}
	return &notification, nil
}

// markRead stamps the caller's read time once. Later calls keep the first
// timestamp.
func (g *Guardian) markRead(ctx context.Context, notificationID, userID string) (*models.Notification, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameGuardianCore,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryInbox),
	)

	notificationID, userID = strings.TrimSpace(notificationID), strings.TrimSpace(userID)

	result := g.Db.Conn.WithContext(ctx).
		Model(&models.Recipient{}).
		Where("notification_id = ? AND user_id = ? AND read_at IS NULL", notificationID, userID).
		Update("read_at", time.Now().UTC())
	if result.Error != nil {
		return nil, fmt.Errorf("mark read: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := g.Db.Conn.WithContext(ctx).
			Model(&models.Recipient{}).
			Where("notification_id = ? AND user_id = ?", notificationID, userID).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, fmt.Errorf("%w: user %q is not a recipient of notification %q", ErrNotFound, userID, notificationID)
		}
	} else {
		logger.Info("Marked notification read", zap.String("notificationId", notificationID), zap.String("userId", userID))
	}

	return g.getNotification(ctx, notificationID)
}

type IInboxImpl struct {
	g *Guardian
}

func (ii *IInboxImpl) ListNotifications(ctx context.Context, userID string, opts ListOptions) ([]models.Notification, error) {
	return ii.g.listNotifications(ctx, userID, opts)
}

func (ii *IInboxImpl) MarkRead(ctx context.Context, notificationID, userID string) (*models.Notification, error) {
	return ii.g.markRead(ctx, notificationID, userID)
}

func (g *Guardian) GetIInbox() IInbox {
	return &IInboxImpl{g: g}
}
