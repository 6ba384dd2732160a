package api

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/piwi3910/SocketPlan/internal/export"
	"github.com/piwi3910/SocketPlan/internal/model"
)

const (
	mimePDF  = "application/pdf"
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type exportHandler struct{}

// NewExportHandler creates the handler for the file export endpoints.
func NewExportHandler() ExportHandler {
	return &exportHandler{}
}

func (h *exportHandler) HandleExportPDF(c echo.Context) error {
	return h.render(c, "socketplan.pdf", mimePDF, export.WritePDF)
}

func (h *exportHandler) HandleExportCutList(c echo.Context) error {
	return h.render(c, "socketplan.xlsx", mimeXLSX, export.WriteCutList)
}

// render buffers the whole file so a failed export still gets a JSON error.
func (h *exportHandler) render(c echo.Context, filename, contentType string, write func(io.Writer, model.Layout) error) error {
	var layout model.Layout
	if err := c.Bind(&layout); err != nil {
		return NewBadRequestError("invalid layout", err)
	}
	if len(layout.Plates) == 0 {
		return NewValidationError("plates", "at least one plate is required")
	}

	var buf bytes.Buffer
	if err := write(&buf, layout); err != nil {
		return NewInternalError("export failed", err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, contentType, buf.Bytes())
}
