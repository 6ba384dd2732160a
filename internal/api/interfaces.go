// Package api exposes the placement rules and exporters over a stateless
// JSON HTTP API. Every request carries the plates and groups it is about;
// the server keeps no layout of its own.
package api

import "github.com/labstack/echo/v4"

// HealthHandler reports liveness and the fixed geometry constants.
type HealthHandler interface {
	HandleHealth(c echo.Context) error
	HandleConstants(c echo.Context) error
}

// PlacementHandler answers geometry questions about socket groups.
type PlacementHandler interface {
	HandleBoundingBox(c echo.Context) error
	HandleValidate(c echo.Context) error
	HandleCheckLayout(c echo.Context) error
}

// ExportHandler renders a posted layout into a downloadable file.
type ExportHandler interface {
	HandleExportPDF(c echo.Context) error
	HandleExportCutList(c echo.Context) error
}
