package guardian

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"liyu1981.xyz/guardian-alert-service/pkg/common"
	"liyu1981.xyz/guardian-alert-service/pkg/models"
)

const (
	DayLayout   = "2006-01-02"
	LocalLayout = "2006-01-02 15:04:05"

	MinPriority = 0
	MaxPriority = 4
)

var zonelessLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

var textPolicy = bluemonday.StrictPolicy()

type CheckInFields struct {
	Summary    string
	Priority   int
	Mood       int
	Status     string
	Transcript *string
}

// DayBucket is one local calendar day of the configured zone, with its
// bounds expressed in UTC.
type DayBucket struct {
	Day      string
	StartUTC time.Time
	EndUTC   time.Time
}

func BucketFor(t time.Time, loc *time.Location) DayBucket {
	local := t.In(loc)
	y, m, d := local.Date()
	return DayBucket{
		Day:      local.Format(DayLayout),
		StartUTC: time.Date(y, m, d, 0, 0, 0, 0, loc).UTC(),
		EndUTC:   time.Date(y, m, d, 23, 59, 59, 0, loc).UTC(),
	}
}

// ParseEventTime accepts RFC 3339 or a zone-less local timestamp read in loc.
// An empty value means now.
func ParseEventTime(value string, loc *time.Location, now time.Time) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return now, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	for _, layout := range zonelessLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, value)
}

// ParseRange reads the bounds of a check-in range query. A date-only start
// covers from that day's midnight, a date-only end covers until 23:59:59.
func (g *Guardian) ParseRange(startValue, endValue string) (time.Time, time.Time, error) {
	loc := g.Options.Location
	parse := func(value string, endOfDay bool) (time.Time, error) {
		value = strings.TrimSpace(value)
		if value == "" {
			return time.Time{}, fmt.Errorf("%w: missing range bound", ErrInvalidTimestamp)
		}
		if day, err := time.ParseInLocation(DayLayout, value, loc); err == nil {
			if endOfDay {
				y, m, d := day.Date()
				return time.Date(y, m, d, 23, 59, 59, 0, loc), nil
			}
			return day, nil
		}
		return ParseEventTime(value, loc, time.Now())
	}

	start, err := parse(startValue, false)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := parse(endValue, true)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

func sanitizeText(s string) string {
	return strings.TrimSpace(html.UnescapeString(textPolicy.Sanitize(s)))
}

func (g *Guardian) localize(c *models.CheckIn) {
	c.CreatedAtLocal = c.CreatedAt.In(g.Options.Location).Format(LocalLayout)
	c.UpdatedAtLocal = c.UpdatedAt.In(g.Options.Location).Format(LocalLayout)
}

func (g *Guardian) upsertCheckIn(ctx context.Context, personID string, eventTime string, fields CheckInFields) (*models.CheckIn, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameGuardianCore,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryCheckIn),
	)

	personID = strings.TrimSpace(personID)
	if personID == "" {
		return nil, fmt.Errorf("%w: person id is required", ErrInvalidCheckIn)
	}
	if fields.Priority < MinPriority || fields.Priority > MaxPriority {
		return nil, fmt.Errorf("%w: priority %d out of range", ErrInvalidCheckIn, fields.Priority)
	}

	at, err := ParseEventTime(eventTime, g.Options.Location, time.Now())
	if err != nil {
		return nil, err
	}
	bucket := BucketFor(at, g.Options.Location)

	var transcript *string
	if fields.Transcript != nil {
		clean := sanitizeText(*fields.Transcript)
		transcript = &clean
	}

	record := models.CheckIn{
		PersonID:   personID,
		Day:        bucket.Day,
		Summary:    sanitizeText(fields.Summary),
		Priority:   fields.Priority,
		Mood:       fields.Mood,
		Status:     sanitizeText(fields.Status),
		Transcript: transcript,
		CreatedAt:  at.UTC(),
		UpdatedAt:  at.UTC(),
	}

	logger.Info("Received check-in",
		zap.String("personId", personID),
		zap.String("day", bucket.Day),
		zap.Time("dayStartUTC", bucket.StartUTC),
		zap.Time("dayEndUTC", bucket.EndUTC),
	)

	err = g.Db.Conn.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "person_id"}, {Name: "day"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"summary", "priority", "mood", "status", "transcript", "created_at", "updated_at",
		}),
	}).Create(&record).Error
	if err != nil {
		return nil, fmt.Errorf("upsert check-in: %w", err)
	}

	var stored models.CheckIn
	err = g.Db.Conn.WithContext(ctx).
		Where("person_id = ? AND day = ?", personID, bucket.Day).
		First(&stored).Error
	if err != nil {
		return nil, fmt.Errorf("reload check-in: %w", err)
	}
	g.localize(&stored)

	logger.Info("Upserted check-in",
		zap.Uint("id", stored.ID),
		zap.String("personId", personID),
		zap.String("day", stored.Day),
		zap.Int("priority", stored.Priority),
	)

	return &stored, nil
}

// findCheckIns tries the exact id first and falls back to a
// case-insensitive match.
func (g *Guardian) findCheckIns(ctx context.Context, personID string, scope func(*gorm.DB) *gorm.DB) ([]models.CheckIn, error) {
	personID = strings.TrimSpace(personID)

	query := func(cond string) ([]models.CheckIn, error) {
		var out []models.CheckIn
		tx := g.Db.Conn.WithContext(ctx).Where(cond, personID)
		if scope != nil {
			tx = scope(tx)
		}
		err := tx.Order("created_at desc").Find(&out).Error
		return out, err
	}

	checkIns, err := query("person_id = ?")
	if err != nil {
		return nil, err
	}
	if len(checkIns) == 0 {
		common.GetLoggerWith(
			common.LoggerNameGuardianCore,
			zap.String(common.LoggerFieldCategory, common.LoggerCategoryCheckIn),
		).Debug("No exact match, trying case-insensitive match", zap.String("personId", personID))

		checkIns, err = query("LOWER(person_id) = LOWER(?)")
		if err != nil {
			return nil, err
		}
	}

	for i := range checkIns {
		g.localize(&checkIns[i])
	}
	if checkIns == nil {
		checkIns = []models.CheckIn{}
	}
	return checkIns, nil
}

func (g *Guardian) latestCheckIn(ctx context.Context, personID string) (*models.CheckIn, error) {
	checkIns, err := g.findCheckIns(ctx, personID, func(tx *gorm.DB) *gorm.DB { return tx.Limit(1) })
	if err != nil {
		return nil, err
	}
	if len(checkIns) == 0 {
		return nil, fmt.Errorf("%w: no check-in for %q", ErrNotFound, strings.TrimSpace(personID))
	}
	return &checkIns[0], nil
}

func (g *Guardian) checkInsInRange(ctx context.Context, personID string, start, end time.Time) ([]models.CheckIn, error) {
	if start.After(end) {
		return nil, fmt.Errorf("%w: range start after end", ErrInvalidTimestamp)
	}
	return g.findCheckIns(ctx, personID, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("created_at >= ? AND created_at <= ?", start.UTC(), end.UTC())
	})
}

type PersonSummary struct {
	Person           models.User     `json:"elderly"`
	CheckIn          *models.CheckIn `json:"checkIn"`
	AvailableForDate bool            `json:"availableForDate"`
}

func (g *Guardian) caretakerSummary(ctx context.Context, caretakerID string, date string) ([]PersonSummary, error) {
	day := time.Now().In(g.Options.Location).Format(DayLayout)
	if date = strings.TrimSpace(date); date != "" {
		parsed, err := time.ParseInLocation(DayLayout, date, g.Options.Location)
		if err != nil {
			return nil, fmt.Errorf("%w: date %q", ErrInvalidTimestamp, date)
		}
		day = parsed.Format(DayLayout)
	}

	persons, err := g.Directory.GetUsersByCaretaker(ctx, caretakerID)
	if err != nil {
		return nil, err
	}

	summaries := make([]PersonSummary, 0, len(persons))
	for _, person := range persons {
		summary := PersonSummary{Person: person}

		var onDay models.CheckIn
		err := g.Db.Conn.WithContext(ctx).
			Where("person_id = ? AND day = ?", person.ID, day).
			First(&onDay).Error
		switch {
		case err == nil:
			g.localize(&onDay)
			summary.CheckIn = &onDay
			summary.AvailableForDate = true
		case errors.Is(err, gorm.ErrRecordNotFound):
			latest, err := g.latestCheckIn(ctx, person.ID)
			if err != nil && !errors.Is(err, ErrNotFound) {
				return nil, err
			}
			summary.CheckIn = latest
		default:
			return nil, err
		}

		summaries = append(summaries, summary)
	}
	return summaries, nil
}

type ICheckInImpl struct {
	g *Guardian
}

func (ic *ICheckInImpl) UpsertCheckIn(ctx context.Context, personID string, eventTime string, fields CheckInFields) (*models.CheckIn, error) {
	return ic.g.upsertCheckIn(ctx, personID, eventTime, fields)
}

func (ic *ICheckInImpl) LatestCheckIn(ctx context.Context, personID string) (*models.CheckIn, error) {
	return ic.g.latestCheckIn(ctx, personID)
}

func (ic *ICheckInImpl) CheckIns(ctx context.Context, personID string) ([]models.CheckIn, error) {
	return ic.g.findCheckIns(ctx, personID, nil)
}

func (ic *ICheckInImpl) CheckInsInRange(ctx context.Context, personID string, start, end time.Time) ([]models.CheckIn, error) {
	return ic.g.checkInsInRange(ctx, personID, start, end)
}

func (ic *ICheckInImpl) CaretakerSummary(ctx context.Context, caretakerID string, date string) ([]PersonSummary, error) {
	return ic.g.caretakerSummary(ctx, caretakerID, date)
}

func (g *Guardian) GetICheckIn() ICheckIn {
	return &ICheckInImpl{g: g}
}
