package guardian

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"liyu1981.xyz/guardian-alert-service/pkg/common"
	"liyu1981.xyz/guardian-alert-service/pkg/models"
	"liyu1981.xyz/guardian-alert-service/pkg/push"
)

const (
	FallTitle = "Fall Detected"

	ReasonNoTokens      = "no_tokens"
	ReasonProviderError = "provider_error"
)

type TokenResult struct {
	Token     string
	Owner     string
	Result    models.AttemptResult
	MessageID string
	Err       error
}

// DispatchResult is the terminal state of one dispatch. Pruned lists the
// tokens scheduled for removal from the device registry.
type DispatchResult struct {
	NotificationID string
	Outcome        models.NotificationStatus
	Reason         string
	Attempts       []TokenResult
	Pruned         []string
}

func (r *DispatchResult) Delivered() int {
	return common.Reducer(r.Attempts, func(n int, a TokenResult) int {
		if a.Result == models.AttemptResultDelivered {
			return n + 1
		}
		return n
	}, 0)
}

func (g *Guardian) createNotification(ctx context.Context, event FallEvent, resolution *Resolution) (*models.Notification, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameGuardianCore,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryNotifier),
	)

	if resolution == nil || resolution.Person == nil || resolution.Caretaker == nil {
		return nil, fmt.Errorf("create notification: incomplete resolution")
	}

	name := resolution.Person.Name
	if name == "" {
		name = resolution.Person.ID
	}

	data := event.Metadata()
	data["type"] = string(models.NotificationTypeFallDetected)
	data["elderlyId"] = resolution.Person.ID
	data["elderlyName"] = name

	notification := models.Notification{
		ID:          uuid.NewString(),
		Type:        models.NotificationTypeFallDetected,
		SubjectID:   resolution.Person.ID,
		SubjectName: name,
		Severity:    models.SeverityHigh,
		Title:       FallTitle,
		Message:     fmt.Sprintf("A fall has been detected for %s. Immediate assistance may be required.", name),
		Data:        datatypes.JSONMap(data),
		Status:      models.NotificationStatusCreated,
		Recipients: []models.Recipient{
			{
				Position:     0,
				UserID:       resolution.Caretaker.ID,
				Role:         models.RecipientRoleCaretaker,
				DeviceTokens: datatypes.JSONSlice[string](append([]string{}, resolution.Tokens...)),
			},
		},
	}

	err := g.Db.Conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&notification).Error
	})
	if err != nil {
		return nil, fmt.Errorf("create notification: %w", err)
	}

	logger.Info("Created notification",
		zap.String("notificationId", notification.ID),
		zap.String("subjectId", notification.SubjectID),
		zap.Int("recipients", len(notification.Recipients)),
	)
	return &notification, nil
}

func pushMessageFor(n *models.Notification) push.Message {
	data := make(map[string]any, len(n.Data)+4)
	for k, v := range n.Data {
		data[k] = v
	}
	data["notificationId"] = n.ID
	data["type"] = string(n.Type)
	data["priority"] = string(n.Severity)
	data["title"] = n.Title
	return push.Message{Title: n.Title, Body: n.Message, Data: data}
}

func (g *Guardian) dispatch(ctx context.Context, n *models.Notification) *DispatchResult {
	logger := common.GetLoggerWith(
		common.LoggerNameGuardianCore,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryNotifier),
	)

	// the terminal state is written even when the caller's deadline passed
	persistCtx := context.WithoutCancel(ctx)
	result := &DispatchResult{NotificationID: n.ID}

	if err := g.setNotificationStatus(persistCtx, n, models.NotificationStatusDispatching, ""); err != nil {
		logger.Error("Failed to mark notification dispatching", zap.String("notificationId", n.ID), zap.Error(err))
	}

	owners := map[string]string{}
	var tokens []string
	for _, recipient := range n.Recipients {
		for _, token := range recipient.DeviceTokens {
			if token == "" {
				continue
			}
			if _, seen := owners[token]; seen {
				continue
			}
			owners[token] = recipient.UserID
			tokens = append(tokens, token)
		}
	}

	if len(tokens) == 0 {
		logger.Warn("Notification has no device tokens", zap.String("notificationId", n.ID))
		if err := g.setNotificationStatus(persistCtx, n, models.NotificationStatusFailed, ReasonNoTokens); err != nil {
			logger.Error("Failed to mark notification failed", zap.String("notificationId", n.ID), zap.Error(err))
		}
		result.Outcome = models.NotificationStatusFailed
		result.Reason = ReasonNoTokens
		return result
	}

	msg := pushMessageFor(n)
	attempts := make([]TokenResult, len(tokens))

	var eg errgroup.Group
	eg.SetLimit(g.Options.DispatchConcurrency)
	for i, token := range tokens {
		eg.Go(func() error {
			messageID, err := g.Push.Send(ctx, token, msg)
			attempts[i] = TokenResult{
				Token:     token,
				Owner:     owners[token],
				Result:    push.Classify(err),
				MessageID: messageID,
				Err:       err,
			}
			if err != nil {
				logger.Warn("Push send failed",
					zap.String("notificationId", n.ID),
					zap.String("token", common.MaskToken(token)),
					zap.String("result", string(attempts[i].Result)),
					zap.Error(err),
				)
			}
			// never fail the group, siblings keep sending
			return nil
		})
	}
	_ = eg.Wait()

	result.Attempts = attempts
	delivered := result.Delivered()
	switch {
	case delivered == len(attempts):
		result.Outcome = models.NotificationStatusDelivered
	case delivered > 0:
		result.Outcome = models.NotificationStatusPartiallyDelivered
	default:
		result.Outcome = models.NotificationStatusFailed
		result.Reason = ReasonProviderError
	}

	if err := g.recordDispatch(persistCtx, n, result); err != nil {
		logger.Error("Failed to record dispatch outcome", zap.String("notificationId", n.ID), zap.Error(err))
	}

	for _, attempt := range attempts {
		if attempt.Result == models.AttemptResultInvalidToken {
			g.schedulePrune(attempt.Owner, attempt.Token)
			result.Pruned = append(result.Pruned, attempt.Token)
		}
	}

	logger.Info("Dispatched notification",
		zap.String("notificationId", n.ID),
		zap.String("outcome", string(result.Outcome)),
		zap.Int("delivered", delivered),
		zap.Int("tokens", len(attempts)),
		zap.Int("pruned", len(result.Pruned)),
	)
	return result
}

func (g *Guardian) setNotificationStatus(ctx context.Context, n *models.Notification, status models.NotificationStatus, reason string) error {
	err := g.Db.Conn.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ?", n.ID).
		Updates(map[string]any{"status": status, "failure_reason": reason}).Error
	if err != nil {
		return err
	}
	n.Status = status
	n.FailureReason = reason
	return nil
}

// recordDispatch writes the attempts, the recipient flags and the terminal
// status in one transaction.
func (g *Guardian) recordDispatch(ctx context.Context, n *models.Notification, result *DispatchResult) error {
	rows := common.Mapper(result.Attempts, func(a TokenResult) models.DeliveryAttempt {
		attempt := models.DeliveryAttempt{
			NotificationID: n.ID,
			Token:          a.Token,
			Result:         a.Result,
		}
		if a.Err != nil {
			attempt.Error = a.Err.Error()
		}
		return attempt
	})

	err := g.Db.Conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}
		if result.Delivered() > 0 {
			if err := tx.Model(&models.Recipient{}).
				Where("notification_id = ?", n.ID).
				Update("delivery_attempted", true).Error; err != nil {
				return err
			}
		}
		return tx.Model(&models.Notification{}).
			Where("id = ?", n.ID).
			Updates(map[string]any{"status": result.Outcome, "failure_reason": result.Reason}).Error
	})
	if err != nil {
		return err
	}

	n.Status = result.Outcome
	n.FailureReason = result.Reason
	if result.Delivered() > 0 {
		for i := range n.Recipients {
			n.Recipients[i].DeliveryAttempted = true
		}
	}
	return nil
}

// schedulePrune removes a dead token in the background. It uses its own
// context since the event that found the token may already be finished.
func (g *Guardian) schedulePrune(owner, token string) {
	g.prunes.Add(1)
	go func() {
		defer g.prunes.Done()

		logger := common.GetLoggerWith(
			common.LoggerNameGuardianCore,
			zap.String(common.LoggerFieldCategory, common.LoggerCategoryNotifier),
		)
		if err := g.Devices.Remove(context.Background(), owner, token); err != nil {
			logger.Error("Failed to prune invalid token",
				zap.String("userId", owner),
				zap.String("token", common.MaskToken(token)),
				zap.Error(err),
			)
			return
		}
		logger.Info("Pruned invalid token", zap.String("userId", owner), zap.String("token", common.MaskToken(token)))
	}()
}

type INotifierImpl struct {
	g *Guardian
}

func (in *INotifierImpl) Create(ctx context.Context, event FallEvent, resolution *Resolution) (*models.Notification, error) {
	return in.g.createNotification(ctx, event, resolution)
}

func (in *INotifierImpl) Dispatch(ctx context.Context, notification *models.Notification) *DispatchResult {
	return in.g.dispatch(ctx, notification)
}

// Drain waits for scheduled prunes.
func (in *INotifierImpl) Drain() {
	in.g.prunes.Wait()
}

func (g *Guardian) GetINotifier() INotifier {
	return &INotifierImpl{g: g}
}
