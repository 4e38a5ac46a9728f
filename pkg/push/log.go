package push

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"liyu1981.xyz/guardian-alert-service/pkg/common"
)

// LogProvider accepts every message and only logs it. Used in development
// when no firebase project is configured.
type LogProvider struct {
	logger *zap.Logger
}

func NewLogProvider() *LogProvider {
	return &LogProvider{
		logger: common.GetLoggerWith(common.LoggerNamePush, zap.String(common.LoggerFieldCategory, "log")),
	}
}

func (p *LogProvider) Send(ctx context.Context, token string, msg Message) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	id := uuid.NewString()
	p.logger.Info("Push message",
		zap.String("token", common.MaskToken(token)),
		zap.String("title", msg.Title),
		zap.String("body", msg.Body),
		zap.Any("data", StringifyData(msg.Data)),
		zap.String("messageId", id),
	)
	return id, nil
}
