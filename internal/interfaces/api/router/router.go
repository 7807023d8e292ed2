package router

import (
	"bdaywisher/internal/interfaces/api/handler"
	"bdaywisher/internal/pkg/logger"
	"bdaywisher/internal/pkg/metrics"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Config holds the dependencies for the router.
type Config struct {
	RosterHandler   *handler.RosterHandler
	SettingsHandler *handler.SettingsHandler
	ReminderHandler *handler.ReminderHandler
	CalendarHandler *handler.CalendarHandler
	WishHandler     *handler.WishHandler
	LineHandler     *handler.LineHandler // nil when LINE is not configured
	Logger          logger.Logger
}

// NewRouter creates and configures a new Echo router.
func NewRouter(cfg *Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogHost:      true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			cfg.Logger.Info(fmt.Sprintf("REQUEST: method=%s, uri=%s, status=%d, latency=%s, req_id=%s",
				v.Method, v.URI, v.Status, v.Latency, v.RequestID,
			))
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, "If-None-Match", "X-Line-Signature"},
		ExposeHeaders:    []string{"ETag"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Routes
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "bdaywisher is running")
	})
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	e.GET("/status", cfg.RosterHandler.Status)

	roster := e.Group("/roster")
	roster.GET("", cfg.RosterHandler.List)
	roster.POST("", cfg.RosterHandler.Add)
	roster.POST("/refresh", cfg.RosterHandler.Refresh)
	roster.GET("/today-tomorrow", cfg.RosterHandler.TodayTomorrow)
	roster.GET("/:id/wishes", cfg.WishHandler.Links)
	roster.POST("/:id/wishes/sms", cfg.WishHandler.SendSMS)

	e.GET("/settings", cfg.SettingsHandler.Get)
	e.PUT("/settings", cfg.SettingsHandler.Put)

	reminders := e.Group("/reminders")
	reminders.GET("/pending", cfg.ReminderHandler.Pending)
	reminders.GET("/sent", cfg.ReminderHandler.Sent)
	reminders.POST("/custom", cfg.ReminderHandler.Custom)
	reminders.POST("/reschedule", cfg.ReminderHandler.Reschedule)
	reminders.DELETE("/:id", cfg.ReminderHandler.Cancel)

	e.DELETE("/cache", cfg.RosterHandler.ClearCache)
	e.GET("/calendar.ics", cfg.CalendarHandler.ICS)

	// LINE Webhook Endpoint
	// Note: LINE Platform requires POST for webhook
	if cfg.LineHandler != nil {
		e.POST("/callback", cfg.LineHandler.HandleWebhook)
	}

	cfg.Logger.Info("Router initialized with routes.")
	return e
}
