package configurator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/piwi3910/SocketPlan/internal/engine"
)

// Rejections. Every failed operation returns one of these (possibly wrapped)
// and leaves the state untouched.
var (
	ErrNoEligiblePlate          = errors.New("no plate is large enough (min 40x40 cm) to add sockets")
	ErrInvalidPlacement         = errors.New("invalid position: overlaps or too close to edge or another group")
	ErrInvalidFinalDragPosition = errors.New("invalid final position, reverting")
	ErrLastPlate                = errors.New("cannot delete the last plate")
	ErrPlateNotFound            = errors.New("plate not found")
	ErrGroupNotFound            = errors.New("socket group not found")
	ErrPlateNotEligible         = errors.New("plate is too small to hold sockets")
	ErrCountOutOfRange          = errors.New("socket count out of range")
	ErrSocketsDisabled          = errors.New("sockets are disabled")
	ErrNotDragging              = errors.New("no drag in progress")
)

// PlacementError describes a rejected placement in detail. It matches
// ErrInvalidPlacement with errors.Is.
type PlacementError struct {
	GroupID    string
	Violations []engine.Violation
}

func (e *PlacementError) Error() string {
	if len(e.Violations) == 0 {
		return ErrInvalidPlacement.Error()
	}
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.String()
	}
	return fmt.Sprintf("%s (%s)", ErrInvalidPlacement.Error(), strings.Join(parts, "; "))
}

func (e *PlacementError) Unwrap() error {
	return ErrInvalidPlacement
}
