package api

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/piwi3910/SocketPlan/internal/engine"
	"github.com/piwi3910/SocketPlan/internal/model"
)

// BoundingBoxRequest is the body of POST /api/bounding-box.
type BoundingBoxRequest struct {
	Group model.SocketGroup `json:"group"`
}

// ValidateRequest is the body of POST /api/validate. Others are the groups
// already on the plate; an entry with the candidate's ID is ignored.
type ValidateRequest struct {
	Group  model.SocketGroup   `json:"group"`
	Plate  model.Plate         `json:"plate"`
	Others []model.SocketGroup `json:"others"`
}

// ValidateResponse reports whether a placement is accepted and, if not, why.
type ValidateResponse struct {
	Valid       bool               `json:"valid"`
	BoundingBox *model.BoundingBox `json:"bounding_box,omitempty"`
	Violations  []engine.Violation `json:"violations"`
}

type placementHandler struct{}

// NewPlacementHandler creates the handler for the geometry endpoints.
func NewPlacementHandler() PlacementHandler {
	return &placementHandler{}
}

func (h *placementHandler) HandleBoundingBox(c echo.Context) error {
	var req BoundingBoxRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid request body", err)
	}
	if err := checkCount(req.Group); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, engine.BoundingBox(req.Group))
}

func (h *placementHandler) HandleValidate(c echo.Context) error {
	var req ValidateRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid request body", err)
	}
	if err := checkCount(req.Group); err != nil {
		return err
	}
	if req.Plate.Width <= 0 || req.Plate.Height <= 0 {
		return NewValidationError("plate", "width and height must be positive")
	}

	others := make([]model.SocketGroup, 0, len(req.Others))
	for _, o := range req.Others {
		if o.ID == "" || o.ID != req.Group.ID {
			others = append(others, o)
		}
	}

	box := engine.BoundingBox(req.Group)
	violations := engine.Diagnose(req.Group, req.Plate, others)
	return c.JSON(http.StatusOK, ValidateResponse{
		Valid:       engine.IsPlacementValid(req.Group, req.Plate, others),
		BoundingBox: &box,
		Violations:  nonNil(violations),
	})
}

func (h *placementHandler) HandleCheckLayout(c echo.Context) error {
	var layout model.Layout
	if err := c.Bind(&layout); err != nil {
		return NewBadRequestError("invalid layout", err)
	}
	violations := engine.AuditLayout(layout)
	return c.JSON(http.StatusOK, ValidateResponse{
		Valid:      len(violations) == 0,
		Violations: nonNil(violations),
	})
}

func checkCount(g model.SocketGroup) error {
	if !model.ValidCount(g.Count) {
		return NewValidationError("group.count",
			fmt.Sprintf("must be between %d and %d, got %d", model.SocketCountMin, model.SocketCountMax, g.Count))
	}
	return nil
}

// nonNil makes an empty result encode as [] rather than null.
func nonNil(v []engine.Violation) []engine.Violation {
	if v == nil {
		return []engine.Violation{}
	}
	return v
}
