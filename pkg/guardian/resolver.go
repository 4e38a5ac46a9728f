package guardian

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"liyu1981.xyz/guardian-alert-service/pkg/common"
	"liyu1981.xyz/guardian-alert-service/pkg/models"
)

// Resolution is who gets alerted for a monitored person and on which
// device tokens.
type Resolution struct {
	Person       *models.User
	Caretaker    *models.User
	Tokens       []string
	UsedFallback bool
}

func (g *Guardian) resolveCaretakerDevices(ctx context.Context, personID string) (*Resolution, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameGuardianCore,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryResolver),
	)

	person, err := g.Directory.GetUser(ctx, personID)
	if errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("%w: %q", ErrPersonNotFound, personID)
	}
	if err != nil {
		return nil, fmt.Errorf("resolve person: %w", err)
	}

	if person.CaretakerID == nil || strings.TrimSpace(*person.CaretakerID) == "" {
		return nil, fmt.Errorf("%w: person %q", ErrNoCaretakerAssigned, person.ID)
	}

	caretaker, err := g.Directory.GetUser(ctx, *person.CaretakerID)
	if errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("%w: caretaker %q of person %q is missing", ErrNoCaretakerAssigned, *person.CaretakerID, person.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("resolve caretaker: %w", err)
	}

	devices, err := g.Devices.ListByUser(ctx, caretaker.ID)
	if err != nil {
		return nil, fmt.Errorf("list caretaker devices: %w", err)
	}

	resolution := &Resolution{
		Person:    person,
		Caretaker: caretaker,
		Tokens:    common.Dedupe(common.Mapper(devices, func(d models.RegisteredDevice) string { return d.Token })),
	}

	if len(resolution.Tokens) == 0 {
		if g.Options.FallbackPushToken != "" {
			logger.Warn("Caretaker has no registered devices, using fallback token",
				zap.String("caretakerId", caretaker.ID),
				zap.String("personId", person.ID),
			)
			resolution.Tokens = []string{g.Options.FallbackPushToken}
			resolution.UsedFallback = true
		} else {
			logger.Warn("Caretaker has no registered devices",
				zap.String("caretakerId", caretaker.ID),
				zap.String("personId", person.ID),
			)
		}
	}

	logger.Info("Resolved caretaker devices",
		zap.String("personId", person.ID),
		zap.String("caretakerId", caretaker.ID),
		zap.Int("tokens", len(resolution.Tokens)),
	)
	return resolution, nil
}

type IResolverImpl struct {
	g *Guardian
}

func (ir *IResolverImpl) ResolveCaretakerDevices(ctx context.Context, personID string) (*Resolution, error) {
	return ir.g.resolveCaretakerDevices(ctx, personID)
}

func (g *Guardian) GetIResolver() IResolver {
	return &IResolverImpl{g: g}
}
