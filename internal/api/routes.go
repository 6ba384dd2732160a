package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Dependencies holds everything the server needs.
type Dependencies struct {
	Version     string
	Logger      *log.Logger
	BodyLimit   string   // echo size string, e.g. "2M"
	CORSOrigins []string // empty disables CORS
}

// Handlers holds all handler instances
type Handlers struct {
	Health    HealthHandler
	Placement PlacementHandler
	Export    ExportHandler
}

// NewHandlers creates all handler instances
func NewHandlers(deps Dependencies) *Handlers {
	return &Handlers{
		Health:    NewHealthHandler(deps.Version),
		Placement: NewPlacementHandler(),
		Export:    NewExportHandler(),
	}
}

// RegisterRoutes registers all API routes with the Echo instance
func RegisterRoutes(e *echo.Echo, h *Handlers) {
	g := e.Group("/api")
	g.GET("/health", h.Health.HandleHealth)
	g.GET("/constants", h.Health.HandleConstants)

	g.POST("/bounding-box", h.Placement.HandleBoundingBox)
	g.POST("/validate", h.Placement.HandleValidate)
	g.POST("/layout/check", h.Placement.HandleCheckLayout)

	g.POST("/export/pdf", h.Export.HandleExportPDF)
	g.POST("/export/xlsx", h.Export.HandleExportCutList)
}

// NewServer builds the Echo instance with middleware and routes.
func NewServer(deps Dependencies) *echo.Echo {
	if deps.Logger == nil {
		deps.Logger = log.Default()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = ErrorHandler

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			return c.Request().URL.Path == "/api/health"
		},
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error != nil {
				deps.Logger.Warn("request", "method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency, "err", v.Error)
				return nil
			}
			deps.Logger.Debug("request", "method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency)
			return nil
		},
	}))

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			deps.Logger.Error("panic in handler", "uri", c.Request().RequestURI, "err", err)
			return err
		},
	}))

	if deps.BodyLimit != "" {
		e.Use(middleware.BodyLimit(deps.BodyLimit))
	}

	if len(deps.CORSOrigins) > 0 {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: deps.CORSOrigins,
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAccept},
		}))
	}

	RegisterRoutes(e, NewHandlers(deps))
	return e
}

// Serve runs e on addr until ctx is cancelled, then shuts it down gracefully.
func Serve(ctx context.Context, e *echo.Echo, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
