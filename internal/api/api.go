// internal/api/api.go
package api

import (
	"crypto/rand"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"time"

	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/roamly/roamly/internal/conf"
	"github.com/roamly/roamly/internal/countries"
	"github.com/roamly/roamly/internal/datastore"
	"github.com/roamly/roamly/internal/errors"
	"github.com/roamly/roamly/internal/imageprovider"
	"github.com/roamly/roamly/internal/logging"
	"github.com/roamly/roamly/internal/observability"
	"github.com/roamly/roamly/internal/placemeta"
	"github.com/roamly/roamly/internal/places"
	"github.com/roamly/roamly/internal/security"
)

// Controller manages the API routes and handlers
type Controller struct {
	Echo      *echo.Echo
	Group     *echo.Group
	DS        datastore.Interface
	Settings  *conf.Settings
	Images    *imageprovider.Aggregator
	Places    *places.Service
	Countries *countries.Client
	Meta      *placemeta.Client
	Sessions  *security.SessionManager

	logger         *log.Logger
	apiLogger      *slog.Logger   // Structured logger for API operations
	apiLevelVar    *slog.LevelVar // Dynamic level control
	apiLoggerClose func() error   // Function to close the log file
	metrics        *observability.Metrics
	startTime      time.Time
}

// New creates a new API controller and registers its routes on the
// given Echo instance. initializeRoutes is false only in tests that
// register routes selectively.
func New(e *echo.Echo, ds datastore.Interface, settings *conf.Settings,
	images *imageprovider.Aggregator, placeService *places.Service,
	countryClient *countries.Client, metaClient *placemeta.Client,
	sessions *security.SessionManager,
	metrics *observability.Metrics, logger *log.Logger,
	initializeRoutes bool) *Controller {

	if logger == nil {
		logger = log.Default()
	}

	c := &Controller{
		Echo:      e,
		DS:        ds,
		Settings:  settings,
		Images:    images,
		Places:    placeService,
		Countries: countryClient,
		Meta:      metaClient,
		Sessions:  sessions,
		metrics:   metrics,
		logger:    logger,
		startTime: time.Now(),
	}

	// Initialize structured logger for API requests
	logFilePath := filepath.Join("logs", "api.log")
	c.apiLevelVar = new(slog.LevelVar)
	initialLevel := slog.LevelInfo
	if settings != nil && settings.Debug {
		initialLevel = slog.LevelDebug
	}
	c.apiLevelVar.Set(initialLevel)

	var err error
	c.apiLogger, c.apiLoggerClose, err = logging.NewFileLogger(logFilePath, "api", c.apiLevelVar)
	if err != nil {
		logger.Printf("Failed to initialize API file logger: %v", err)
		fbHandler := slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{Level: c.apiLevelVar})
		c.apiLogger = slog.New(fbHandler).With("service", "api")
		c.apiLoggerClose = func() error { return nil }
	}

	// Endpoints are served unprefixed; the frontend fetches /places,
	// /country-image and friends straight off the site root.
	c.Group = e.Group("")

	c.Group.Use(middleware.Recover())
	c.Group.Use(middleware.CORS())
	c.Group.Use(middleware.BodyLimit("1M"))
	c.Group.Use(c.LoggingMiddleware())

	if initializeRoutes {
		c.initRoutes()
	}

	return c
}

// initRoutes registers all API endpoints
func (c *Controller) initRoutes() {
	c.Group.GET("/health", c.HealthCheck)

	c.initPlaceRoutes()
	c.initMediaRoutes()
	c.initCountryRoutes()
	c.initChatRoutes()
	c.initAuthRoutes()
	c.initCommentRoutes()
	c.initSystemRoutes()
}

// LoggingMiddleware creates a middleware function that logs API requests
func (c *Controller) LoggingMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			start := time.Now()

			err := next(ctx)

			if c.apiLogger == nil {
				return err
			}

			req := ctx.Request()
			res := ctx.Response()

			attrs := []slog.Attr{
				slog.String("method", req.Method),
				slog.String("path", req.URL.Path),
				slog.String("query", req.URL.RawQuery),
				slog.Int("status", res.Status),
				slog.String("ip", ctx.RealIP()),
				slog.Int64("latency_ms", time.Since(start).Milliseconds()),
			}
			if err != nil {
				attrs = append(attrs, slog.Any("error", err))
			}

			c.apiLogger.LogAttrs(req.Context(), slog.LevelInfo, "API Request", attrs...)

			return err
		}
	}
}

// Shutdown releases controller resources.
func (c *Controller) Shutdown() {
	if c.apiLoggerClose != nil {
		if err := c.apiLoggerClose(); err != nil {
			c.logger.Printf("Failed to close API log file: %v", err)
		}
	}
}

// ErrorResponse is the JSON body for failed requests.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	Code          int    `json:"code"`
	CorrelationID string `json:"correlation_id"` // Unique identifier for tracking this error
}

// NewErrorResponse creates a new API error response
func NewErrorResponse(err error, message string, code int) *ErrorResponse {
	correlationID := generateCorrelationID()

	var errorStr string
	if err != nil {
		errorStr = err.Error()
	} else {
		errorStr = message
	}

	return &ErrorResponse{
		Error:         errorStr,
		Message:       message,
		Code:          code,
		CorrelationID: correlationID,
	}
}

// generateCorrelationID creates a unique identifier for error tracking
func generateCorrelationID() string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	const length = 8

	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "ERR-RAND"
	}
	for i := range b {
		b[i] = charset[int(b[i])%len(charset)]
	}
	return string(b)
}

// HandleError constructs and returns an appropriate error response
func (c *Controller) HandleError(ctx echo.Context, err error, message string, code int) error {
	errorResp := NewErrorResponse(err, message, code)

	ip := ctx.RealIP()
	c.logger.Printf("API Error [%s] from %s: %s: %v", errorResp.CorrelationID, ip, message, err)

	if c.apiLogger != nil {
		var errorStr string
		if err != nil {
			errorStr = err.Error()
		} else {
			errorStr = message
		}
		c.apiLogger.Error("API Error",
			"correlation_id", errorResp.CorrelationID,
			"message", message,
			"error", errorStr,
			"code", code,
			"path", ctx.Request().URL.Path,
			"method", ctx.Request().Method,
			"ip", ip,
		)
	}

	return ctx.JSON(code, errorResp)
}

// statusForCategory maps an error category to an HTTP status code.
func statusForCategory(err error) int {
	switch errors.CategoryOf(err) {
	case errors.CategoryValidation:
		return http.StatusBadRequest
	case errors.CategoryNotFound:
		return http.StatusNotFound
	case errors.CategoryNetwork:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Debug logs a debug message when debug mode is enabled
func (c *Controller) Debug(format string, v ...any) {
	if c.Settings != nil && c.Settings.Debug {
		c.logger.Printf(format, v...)
	}
}
