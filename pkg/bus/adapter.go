package bus

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"liyu1981.xyz/guardian-alert-service/pkg/common"
	"liyu1981.xyz/guardian-alert-service/pkg/guardian"
)

const DefaultTimeout = 30 * time.Second

// Source delivers device messages to an Adapter. Start runs until ctx is
// done.
type Source interface {
	Start(ctx context.Context) error
	Close()
}

type AdapterOptions struct {
	Namespace string
	Timeout   time.Duration
	// Limiter throttles status messages per device. Nil disables it.
	Limiter *guardian.RateLimiterStore
}

// Adapter turns bus messages into pipeline calls. Every message runs on its
// own goroutine and every failure stops here.
type Adapter struct {
	pipeline guardian.IPipeline
	opts     AdapterOptions
	inflight sync.WaitGroup
}

func NewAdapter(pipeline guardian.IPipeline, opts AdapterOptions) *Adapter {
	if opts.Namespace == "" {
		opts.Namespace = DefaultNamespace
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	return &Adapter{pipeline: pipeline, opts: opts}
}

func (a *Adapter) Namespace() string {
	return a.opts.Namespace
}

func getLogger() *zap.Logger {
	return common.GetLoggerWith(common.LoggerNameBusAdapter)
}

// Handle returns immediately; the message is processed in the background.
func (a *Adapter) Handle(topic string, payload []byte) {
	payload = bytes.Clone(payload)
	a.inflight.Add(1)
	go func() {
		defer a.inflight.Done()
		a.process(topic, payload)
	}()
}

// Wait blocks until every handed-off message has finished.
func (a *Adapter) Wait() {
	a.inflight.Wait()
}

func (a *Adapter) process(topic string, payload []byte) {
	logger := getLogger().With(zap.String("topic", topic))
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Recovered from panic while handling bus message", zap.Any("panic", r), zap.Stack("stack"))
		}
	}()

	parsed, err := ParseTopic(a.opts.Namespace, topic)
	if err != nil {
		logger.Warn("Ignored bus message", zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.opts.Timeout)
	defer cancel()

	switch parsed.Kind {
	case KindFall:
		err = a.handleFall(ctx, parsed, payload)
	case KindStatus:
		err = a.handleStatus(ctx, parsed, payload)
	}
	if err != nil {
		logger.Error("Failed to handle bus message",
			zap.String("deviceId", parsed.DeviceID),
			zap.String("kind", string(parsed.Kind)),
			zap.Error(err),
		)
	}
}

func (a *Adapter) handleFall(ctx context.Context, topic Topic, payload []byte) error {
	var event guardian.FallEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return fmt.Errorf("decode fall payload: %w", err)
	}
	if event.DeviceID == "" {
		event.DeviceID = topic.DeviceID
	}
	event.Source = guardian.SourceBus

	report, err := a.pipeline.HandleFall(ctx, event)
	if report != nil {
		fields := []zap.Field{
			zap.String("deviceId", topic.DeviceID),
			zap.String("personId", report.PersonID),
			zap.String("notificationId", report.Notification),
		}
		if report.Result != nil {
			fields = append(fields, zap.String("outcome", string(report.Result.Outcome)))
		}
		if report.Skipped != nil {
			fields = append(fields, zap.NamedError("skipped", report.Skipped))
		}
		getLogger().Info("Handled fall event", fields...)
	}
	return err
}

func (a *Adapter) handleStatus(ctx context.Context, topic Topic, payload []byte) error {
	if a.opts.Limiter != nil && !a.opts.Limiter.Allow(topic.DeviceID) {
		getLogger().Debug("Status message rate limited", zap.String("deviceId", topic.DeviceID))
		return nil
	}

	var event guardian.StatusEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return fmt.Errorf("decode status payload: %w", err)
	}
	return a.pipeline.HandleStatus(ctx, topic.DeviceID, event)
}
