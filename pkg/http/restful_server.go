package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"liyu1981.xyz/guardian-alert-service/pkg/common"
	"liyu1981.xyz/guardian-alert-service/pkg/guardian"
)

type RestfulServer struct {
	Server           *gin.Engine
	Guardian         *guardian.Guardian
	RateLimiterStore *guardian.RateLimiterStore
	// CorsOrigins of ["*"] or empty allows every origin.
	CorsOrigins []string
}

func getLogger() *zap.Logger {
	return common.GetLoggerWith(common.LoggerNameRestfulServer)
}

func (rs *RestfulServer) GetLimiter(subject string) *rate.Limiter {
	if rs.RateLimiterStore == nil {
		return nil
	}
	return rs.RateLimiterStore.GetLimiter(subject)
}

func (rs *RestfulServer) CheckSubjectLimiter(subject string) bool {
	limiter := rs.GetLimiter(subject)
	if limiter == nil {
		return true
	}
	return limiter.Allow()
}

func (rs *RestfulServer) corsConfig() cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:  []string{"Authorization", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(rs.CorsOrigins) == 0 || (len(rs.CorsOrigins) == 1 && rs.CorsOrigins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = rs.CorsOrigins
	}
	return cfg
}

func (rs *RestfulServer) Setup() {
	rs.Server.Use(cors.New(rs.corsConfig()))

	rs.Server.GET("/healthz", rs.HealthCheck)

	notifications := rs.Server.Group("/notifications")
	{
		notifications.GET("", rs.ListNotifications)
		notifications.PUT("/:id/read", rs.MarkRead)
	}

	devices := rs.Server.Group("/devices")
	{
		devices.POST("/register", rs.RegisterDevice)
		devices.POST("/unregister", rs.UnregisterDevice)
	}

	checkIns := rs.Server.Group("/checkins")
	{
		checkIns.POST("", rs.PostCheckIn)
		checkIns.GET("/:personId", rs.GetCheckIns)
		checkIns.GET("/:personId/latest", rs.GetLatestCheckIn)
		checkIns.GET("/:personId/range", rs.GetCheckInsInRange)
	}

	rs.Server.GET("/caretakers/:caretakerId/summary", rs.GetCaretakerSummary)
	rs.Server.POST("/limits/:subject", rs.PostLimiter)
}
