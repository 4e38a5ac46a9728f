package guardian

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"liyu1981.xyz/guardian-alert-service/pkg/common"
)

const (
	FallSummary  = "User has fallen down and requires immediate medical assistance."
	FallPriority = 4
	FallMood     = -3
	FallStatus   = "Fall Detected"
)

func ingestLogger() *zap.Logger {
	return common.GetLoggerWith(
		common.LoggerNameGuardianCore,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryIngest),
	)
}

func (g *Guardian) verifyFall(ctx context.Context, event FallEvent) (string, error) {
	personID, err := g.Verifier.Verify(event.Token)
	if err != nil {
		ingestLogger().Warn("Dropped fall event",
			zap.String("deviceId", event.DeviceID),
			zap.String("source", event.Source),
			zap.Error(err),
		)
		if !errors.Is(err, ErrAuthInvalid) {
			err = fmt.Errorf("%w: %w", ErrAuthInvalid, err)
		}
		return "", err
	}
	return personID, nil
}

// processFall records the fall as today's check-in and alerts the caretaker.
// A failed check-in write does not stop the alert.
func (g *Guardian) processFall(ctx context.Context, personID string, event FallEvent) (*FallReport, error) {
	logger := ingestLogger()
	report := &FallReport{PersonID: personID}

	logger.Info("Processing fall event",
		zap.String("personId", personID),
		zap.String("deviceId", event.DeviceID),
		zap.String("source", event.Source),
	)

	fields := CheckInFields{
		Summary:  FallSummary,
		Priority: FallPriority,
		Mood:     FallMood,
		Status:   FallStatus,
	}
	checkIn, checkInErr := g.CheckIn.UpsertCheckIn(ctx, personID, string(event.Timestamp), fields)
	if errors.Is(checkInErr, ErrInvalidTimestamp) {
		logger.Warn("Malformed event timestamp, recording check-in at receipt time",
			zap.String("personId", personID),
			zap.String("timestamp", string(event.Timestamp)),
		)
		checkIn, checkInErr = g.CheckIn.UpsertCheckIn(ctx, personID, "", fields)
	}
	if checkInErr != nil {
		logger.Error("Failed to record fall check-in", zap.String("personId", personID), zap.Error(checkInErr))
		checkInErr = fmt.Errorf("record fall check-in: %w", checkInErr)
	} else {
		report.CheckIn = &CheckInRef{ID: checkIn.ID, Day: checkIn.Day}
	}

	resolution, err := g.Resolver.ResolveCaretakerDevices(ctx, personID)
	if errors.Is(err, ErrPersonNotFound) || errors.Is(err, ErrNoCaretakerAssigned) {
		logger.Warn("Nobody to alert for fall event", zap.String("personId", personID), zap.Error(err))
		report.Skipped = err
		return report, checkInErr
	}
	if err != nil {
		return report, errors.Join(checkInErr, fmt.Errorf("resolve recipients: %w", err))
	}

	notification, err := g.Notifier.Create(ctx, event, resolution)
	if err != nil {
		return report, errors.Join(checkInErr, err)
	}
	report.Notification = notification.ID
	report.Result = g.Notifier.Dispatch(ctx, notification)

	logger.Info("Processed fall event",
		zap.String("personId", personID),
		zap.String("notificationId", notification.ID),
		zap.String("outcome", string(report.Result.Outcome)),
	)
	return report, checkInErr
}

func (g *Guardian) handleFall(ctx context.Context, event FallEvent) (*FallReport, error) {
	personID, err := g.Pipeline.VerifyFall(ctx, event)
	if err != nil {
		return nil, err
	}
	return g.Pipeline.ProcessFall(ctx, personID, event)
}

type IPipelineImpl struct {
	g *Guardian
}

func (ip *IPipelineImpl) VerifyFall(ctx context.Context, event FallEvent) (string, error) {
	return ip.g.verifyFall(ctx, event)
}

func (ip *IPipelineImpl) ProcessFall(ctx context.Context, personID string, event FallEvent) (*FallReport, error) {
	return ip.g.processFall(ctx, personID, event)
}

func (ip *IPipelineImpl) HandleFall(ctx context.Context, event FallEvent) (*FallReport, error) {
	return ip.g.handleFall(ctx, event)
}

func (ip *IPipelineImpl) HandleStatus(ctx context.Context, deviceID string, event StatusEvent) error {
	return ip.g.handleStatus(ctx, deviceID, event)
}

func (g *Guardian) GetIPipeline() IPipeline {
	return &IPipelineImpl{g: g}
}
