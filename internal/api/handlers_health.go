package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/piwi3910/SocketPlan/internal/model"
)

// Constants is the geometry table published by GET /api/constants.
type Constants struct {
	SocketWidth            float64 `json:"socket_width"`
	SocketHeight           float64 `json:"socket_height"`
	SocketGap              float64 `json:"socket_gap"`
	SocketCountMin         int     `json:"socket_count_min"`
	SocketCountMax         int     `json:"socket_count_max"`
	MinEdgeClearance       float64 `json:"min_edge_clearance"`
	MinGroupClearance      float64 `json:"min_group_clearance"`
	PlateMinWidth          float64 `json:"plate_min_width"`
	PlateMaxWidth          float64 `json:"plate_max_width"`
	PlateMinHeight         float64 `json:"plate_min_height"`
	PlateMaxHeight         float64 `json:"plate_max_height"`
	PlateMinSizeForSockets float64 `json:"plate_min_size_for_sockets"`
}

var constants = Constants{
	SocketWidth:            model.SocketWidth,
	SocketHeight:           model.SocketHeight,
	SocketGap:              model.SocketGap,
	SocketCountMin:         model.SocketCountMin,
	SocketCountMax:         model.SocketCountMax,
	MinEdgeClearance:       model.MinEdgeClearance,
	MinGroupClearance:      model.MinGroupClearance,
	PlateMinWidth:          model.PlateMinWidth,
	PlateMaxWidth:          model.PlateMaxWidth,
	PlateMinHeight:         model.PlateMinHeight,
	PlateMaxHeight:         model.PlateMaxHeight,
	PlateMinSizeForSockets: model.PlateMinSizeForSockets,
}

type healthHandler struct {
	version string
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(version string) HealthHandler {
	return &healthHandler{version: version}
}

func (h *healthHandler) HandleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"version": h.version,
	})
}

func (h *healthHandler) HandleConstants(c echo.Context) error {
	return c.JSON(http.StatusOK, constants)
}
