package model

import (
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
)

// Plate limits in cm.
const (
	PlateMinWidth          = 20.0
	PlateMaxWidth          = 300.0
	PlateMinHeight         = 30.0
	PlateMaxHeight         = 128.0
	PlateMinSizeForSockets = 40.0 // both dimensions must reach this to host sockets
)

// Socket footprint and placement rules in cm.
const (
	SocketWidth       = 7.0
	SocketHeight      = 7.0
	SocketGap         = 0.2 // between consecutive sockets of one group
	SocketCountMin    = 1
	SocketCountMax    = 5
	MinEdgeClearance  = 3.0 // group box to plate border
	MinGroupClearance = 4.0 // group box to group box on the same plate
)

// Defaults used when plates and groups are created.
const (
	InitialPlateWidth  = 151.5
	InitialPlateHeight = 36.8
	NewPlateWidth      = 100.0
	NewPlateHeight     = 50.0
	DefaultGroupX      = 10.0
	DefaultGroupY      = 10.0
)

// Direction is the axis along which the sockets of a group repeat.
type Direction int

const (
	DirectionHorizontal Direction = iota // Sockets repeat left to right
	DirectionVertical                    // Sockets repeat bottom to top
)

func (d Direction) String() string {
	switch d {
	case DirectionVertical:
		return "Vertical"
	default:
		return "Horizontal"
	}
}

// ParseDirection converts user or file input to a Direction.
// It returns false if the string was not recognized.
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "horizontal", "h", "waagerecht":
		return DirectionHorizontal, true
	case "vertical", "v", "vertikal", "senkrecht":
		return DirectionVertical, true
	default:
		return DirectionHorizontal, false
	}
}

// MarshalText encodes the direction by name so JSON and YAML documents stay readable.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(d.String())), nil
}

// UnmarshalText accepts any spelling understood by ParseDirection.
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, ok := ParseDirection(string(text))
	if !ok {
		return fmt.Errorf("unknown direction %q", string(text))
	}
	*d = parsed
	return nil
}

// Plate is a rectangular mounting surface.
type Plate struct {
	ID     string  `json:"id" yaml:"id"`
	Width  float64 `json:"width" yaml:"width"`   // cm
	Height float64 `json:"height" yaml:"height"` // cm
}

// NewPlate creates a plate with a fresh ID. Dimensions are clamped.
func NewPlate(w, h float64) Plate {
	return Plate{
		ID:     uuid.New().String()[:8],
		Width:  ClampWidth(w),
		Height: ClampHeight(h),
	}
}

// Eligible reports whether the plate is large enough to host socket groups.
func (p Plate) Eligible() bool {
	return p.Width >= PlateMinSizeForSockets && p.Height >= PlateMinSizeForSockets
}

// Area returns the plate area in cm².
func (p Plate) Area() float64 {
	return p.Width * p.Height
}

// ClampWidth limits a plate width to [PlateMinWidth, PlateMaxWidth].
func ClampWidth(w float64) float64 {
	return clamp(w, PlateMinWidth, PlateMaxWidth)
}

// ClampHeight limits a plate height to [PlateMinHeight, PlateMaxHeight].
func ClampHeight(h float64) float64 {
	return clamp(h, PlateMinHeight, PlateMaxHeight)
}

// clamp maps NaN to lo.
func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// SocketGroup is a linear run of identical sockets anchored on one plate.
// X and Y locate the bottom-left corner of the first socket, measured from
// the plate's left and bottom edges.
type SocketGroup struct {
	ID        string    `json:"id" yaml:"id"`
	PlateID   string    `json:"plate_id" yaml:"plate_id"`
	Count     int       `json:"count" yaml:"count"`
	Direction Direction `json:"direction" yaml:"direction"`
	X         float64   `json:"x" yaml:"x"` // cm from left edge
	Y         float64   `json:"y" yaml:"y"` // cm from bottom edge
}

// NewSocketGroup creates the default group for a plate: one horizontal
// socket at the default offset.
func NewSocketGroup(plateID string) SocketGroup {
	return SocketGroup{
		ID:        uuid.New().String()[:8],
		PlateID:   plateID,
		Count:     SocketCountMin,
		Direction: DirectionHorizontal,
		X:         DefaultGroupX,
		Y:         DefaultGroupY,
	}
}

// ValidCount reports whether n is an allowed socket count.
func ValidCount(n int) bool {
	return n >= SocketCountMin && n <= SocketCountMax
}

// BoundingBox is an axis-aligned rectangle in plate coordinates (cm).
// (X1, Y1) is the bottom-left corner, (X2, Y2) the top-right one.
type BoundingBox struct {
	X1 float64 `json:"x1" yaml:"x1"`
	Y1 float64 `json:"y1" yaml:"y1"`
	X2 float64 `json:"x2" yaml:"x2"`
	Y2 float64 `json:"y2" yaml:"y2"`
}

// Width returns the horizontal extent of the box.
func (b BoundingBox) Width() float64 {
	return b.X2 - b.X1
}

// Height returns the vertical extent of the box.
func (b BoundingBox) Height() float64 {
	return b.Y2 - b.Y1
}
