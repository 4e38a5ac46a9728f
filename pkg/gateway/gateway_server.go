package gateway

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"liyu1981.xyz/guardian-alert-service/pkg/common"
	"liyu1981.xyz/guardian-alert-service/pkg/guardian"
)

const DefaultTimeout = 30 * time.Second

//go:generate mockgen -destination=./mocks/mock_alerter.go -package=mocks liyu1981.xyz/guardian-alert-service/pkg/gateway Alerter

// Alerter raises an alert next to the wearer as soon as a gateway fall report
// is verified, before recipients are resolved.
type Alerter interface {
	Alert(ctx context.Context, personID string, event guardian.FallEvent)
}

// LogAlerter only records the alert in the service log.
type LogAlerter struct{}

func (LogAlerter) Alert(ctx context.Context, personID string, event guardian.FallEvent) {
	getLogger().Warn("Fall reported by gateway",
		zap.String("personId", personID),
		zap.String("deviceId", event.DeviceID),
		zap.String("timestamp", string(event.Timestamp)),
	)
}

type GatewayServer struct {
	Pipeline         guardian.IPipeline
	Alerter          Alerter
	RateLimiterStore *guardian.RateLimiterStore
	Timeout          time.Duration
}

func getLogger() *zap.Logger {
	return common.GetLoggerWith(common.LoggerNameGatewayServer)
}

func (s *GatewayServer) timeout() time.Duration {
	if s.Timeout <= 0 {
		return DefaultTimeout
	}
	return s.Timeout
}

func (s *GatewayServer) GetLimiter(deviceID string) *rate.Limiter {
	if s.RateLimiterStore == nil {
		return nil
	}
	return s.RateLimiterStore.GetLimiter(deviceID)
}

func (s *GatewayServer) CheckDeviceLimiter(deviceID string) bool {
	limiter := s.GetLimiter(deviceID)
	if limiter == nil {
		return true
	}
	return limiter.Allow()
}
