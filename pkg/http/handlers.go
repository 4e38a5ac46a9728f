package http

import (
	"errors"
	"net/http"
	"strings"

	z "github.com/Oudwins/zog"
	"github.com/Oudwins/zog/zhttp"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"liyu1981.xyz/guardian-alert-service/pkg/guardian"
	"liyu1981.xyz/guardian-alert-service/pkg/models"
)

func (rs *RestfulServer) respondError(c *gin.Context, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, guardian.ErrNotFound), errors.Is(err, guardian.ErrPersonNotFound):
		code = http.StatusNotFound
	case errors.Is(err, guardian.ErrInvalidTimestamp),
		errors.Is(err, guardian.ErrInvalidCheckIn),
		errors.Is(err, guardian.ErrInvalidPlatform):
		code = http.StatusBadRequest
	}
	if code == http.StatusInternalServerError {
		getLogger().Error("Request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	c.JSON(code, gin.H{"error": err.Error()})
}

type ListNotificationsQuery struct {
	UserID     string `zog:"userId"`
	Limit      int    `zog:"limit"`
	Skip       int    `zog:"skip"`
	UnreadOnly bool   `zog:"unreadOnly"`
}

var listNotificationsSchema = z.Struct(z.Shape{
	"UserID":     z.String().Trim().Min(1).Required(),
	"Limit":      z.Int().GTE(0).LTE(guardian.MaxListLimit),
	"Skip":       z.Int().GTE(0),
	"UnreadOnly": z.Bool(),
})

func (rs *RestfulServer) ListNotifications(c *gin.Context) {
	var query ListNotificationsQuery
	if err := listNotificationsSchema.Parse(zhttp.Request(c.Request), &query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	if !rs.CheckSubjectLimiter(query.UserID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	notifications, err := rs.Guardian.Inbox.ListNotifications(c.Request.Context(), query.UserID, guardian.ListOptions{
		Limit:      query.Limit,
		Skip:       query.Skip,
		UnreadOnly: query.UnreadOnly,
	})
	if err != nil {
		rs.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"notifications": notifications, "count": len(notifications)})
}

type MarkReadRequest struct {
	UserID string `json:"userId" zog:"userId"`
}

var markReadSchema = z.Struct(z.Shape{
	"UserID": z.String().Trim().Min(1).Required(),
})

func (rs *RestfulServer) MarkRead(c *gin.Context) {
	notificationID := c.Param("id")

	var req MarkReadRequest
	if err := markReadSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	if !rs.CheckSubjectLimiter(req.UserID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	notification, err := rs.Guardian.Inbox.MarkRead(c.Request.Context(), notificationID, req.UserID)
	if err != nil {
		rs.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, notification)
}

type RegisterDeviceRequest struct {
	UserID      string `json:"userId" zog:"userId"`
	DeviceToken string `json:"deviceToken" zog:"deviceToken"`
	DeviceType  string `json:"deviceType" zog:"deviceType"`
}

var registerDeviceSchema = z.Struct(z.Shape{
	"UserID":      z.String().Trim().Min(1).Required(),
	"DeviceToken": z.String().Trim().Min(1).Required(),
	"DeviceType":  z.String().Trim().Default(string(models.PlatformAndroid)),
})

func (rs *RestfulServer) RegisterDevice(c *gin.Context) {
	var req RegisterDeviceRequest
	if err := registerDeviceSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	if !rs.CheckSubjectLimiter(req.UserID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	device, err := rs.Guardian.Devices.Register(c.Request.Context(), req.UserID, req.DeviceToken, models.Platform(req.DeviceType))
	if err != nil {
		rs.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, device)
}

type UnregisterDeviceRequest struct {
	UserID      string `json:"userId" zog:"userId"`
	DeviceToken string `json:"deviceToken" zog:"deviceToken"`
}

var unregisterDeviceSchema = z.Struct(z.Shape{
	"UserID":      z.String().Trim().Min(1).Required(),
	"DeviceToken": z.String().Trim().Min(1).Required(),
})

func (rs *RestfulServer) UnregisterDevice(c *gin.Context) {
	var req UnregisterDeviceRequest
	if err := unregisterDeviceSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	if !rs.CheckSubjectLimiter(req.UserID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	if err := rs.Guardian.Devices.Remove(c.Request.Context(), req.UserID, req.DeviceToken); err != nil {
		rs.respondError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

type CheckInRequest struct {
	ElderlyID  string `json:"elderly_id" zog:"elderly_id"`
	Summary    string `json:"summary" zog:"summary"`
	Priority   int    `json:"priority" zog:"priority"`
	Mood       int    `json:"mood" zog:"mood"`
	Status     string `json:"status" zog:"status"`
	Transcript string `json:"transcript" zog:"transcript"`
	CreatedAt  string `json:"created_at" zog:"created_at"`
}

var checkInSchema = z.Struct(z.Shape{
	"ElderlyID":  z.String().Trim().Min(1).Required(),
	"Summary":    z.String(),
	"Priority":   z.Int().GTE(guardian.MinPriority).LTE(guardian.MaxPriority),
	"Mood":       z.Int(),
	"Status":     z.String(),
	"Transcript": z.String(),
	"CreatedAt":  z.String().Trim(),
})

func (rs *RestfulServer) PostCheckIn(c *gin.Context) {
	var req CheckInRequest
	if err := checkInSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	if !rs.CheckSubjectLimiter(req.ElderlyID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	fields := guardian.CheckInFields{
		Summary:  req.Summary,
		Priority: req.Priority,
		Mood:     req.Mood,
		Status:   req.Status,
	}
	if strings.TrimSpace(req.Transcript) != "" {
		fields.Transcript = &req.Transcript
	}

	checkIn, err := rs.Guardian.CheckIn.UpsertCheckIn(c.Request.Context(), req.ElderlyID, req.CreatedAt, fields)
	if err != nil {
		rs.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, checkIn)
}

func (rs *RestfulServer) GetCheckIns(c *gin.Context) {
	personID := c.Param("personId")

	if !rs.CheckSubjectLimiter(personID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	checkIns, err := rs.Guardian.CheckIn.CheckIns(c.Request.Context(), personID)
	if err != nil {
		rs.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, checkIns)
}

func (rs *RestfulServer) GetLatestCheckIn(c *gin.Context) {
	personID := c.Param("personId")

	if !rs.CheckSubjectLimiter(personID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	checkIn, err := rs.Guardian.CheckIn.LatestCheckIn(c.Request.Context(), personID)
	if err != nil {
		rs.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, checkIn)
}

type RangeQuery struct {
	StartDate string `zog:"startDate"`
	EndDate   string `zog:"endDate"`
}

var rangeQuerySchema = z.Struct(z.Shape{
	"StartDate": z.String().Trim().Min(1).Required(),
	"EndDate":   z.String().Trim().Min(1).Required(),
})

func (rs *RestfulServer) GetCheckInsInRange(c *gin.Context) {
	personID := c.Param("personId")

	var query RangeQuery
	if err := rangeQuerySchema.Parse(zhttp.Request(c.Request), &query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	if !rs.CheckSubjectLimiter(personID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	start, end, err := rs.Guardian.ParseRange(query.StartDate, query.EndDate)
	if err != nil {
		rs.respondError(c, err)
		return
	}

	checkIns, err := rs.Guardian.CheckIn.CheckInsInRange(c.Request.Context(), personID, start, end)
	if err != nil {
		rs.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, checkIns)
}

func (rs *RestfulServer) GetCaretakerSummary(c *gin.Context) {
	caretakerID := c.Param("caretakerId")

	if !rs.CheckSubjectLimiter(caretakerID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	summaries, err := rs.Guardian.CheckIn.CaretakerSummary(c.Request.Context(), caretakerID, c.Query("date"))
	if err != nil {
		rs.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summaries)
}

type LimiterRequest struct {
	Rate  float64 `json:"rate"`
	Burst int     `json:"burst"`
}

var limiterRequestSchema = z.Struct(z.Shape{
	"rate":  z.Float64().GT(0).Required(),
	"burst": z.Int().GT(0).Required(),
})

func (rs *RestfulServer) PostLimiter(c *gin.Context) {
	subject := c.Param("subject")

	var req LimiterRequest
	if err := limiterRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	if rs.RateLimiterStore == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rate limiting is disabled"})
		return
	}

	if err := rs.RateLimiterStore.SetLimiter(subject, rate.Limit(req.Rate), req.Burst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusOK)
}

func (rs *RestfulServer) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
