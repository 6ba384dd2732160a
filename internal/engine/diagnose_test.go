package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/SocketPlan/internal/model"
)

func TestDiagnoseAgreesWithIsPlacementValid(t *testing.T) {
	plate := model.Plate{ID: "p", Width: 100, Height: 50}
	others := []model.SocketGroup{
		group("a", 1, model.DirectionHorizontal, 10, 10),
		group("b", 3, model.DirectionVertical, 70, 5),
	}

	for x := -5.0; x <= 100; x += 2.5 {
		for y := -5.0; y <= 50; y += 2.5 {
			for _, dir := range []model.Direction{model.DirectionHorizontal, model.DirectionVertical} {
				c := group("c", 2, dir, x, y)
				valid := IsPlacementValid(c, plate, others)
				violations := Diagnose(c, plate, others)
				assert.Equal(t, valid, len(violations) == 0, "x=%v y=%v dir=%s violations=%v", x, y, dir, violations)
			}
		}
	}
}

func TestDiagnoseReportsEdges(t *testing.T) {
	plate := model.Plate{ID: "p", Width: 100, Height: 50}
	c := group("c", 1, model.DirectionHorizontal, 1, 45)

	violations := Diagnose(c, plate, nil)
	require.Len(t, violations, 2)
	assert.Equal(t, ViolationLeftEdge, violations[0].Kind)
	assert.InDelta(t, 1.0, violations[0].Actual, 1e-9)
	assert.Equal(t, ViolationTopEdge, violations[1].Kind)
	assert.InDelta(t, -2.0, violations[1].Actual, 1e-9)
	assert.Contains(t, violations[0].String(), "left edge")
}

func TestDiagnoseReportsConflictGap(t *testing.T) {
	plate := model.Plate{ID: "p", Width: 100, Height: 50}
	a := group("a", 1, model.DirectionHorizontal, 10, 10)
	b := group("b", 1, model.DirectionHorizontal, 20, 10)

	violations := Diagnose(b, plate, []model.SocketGroup{a})
	require.Len(t, violations, 1)
	v := violations[0]
	assert.Equal(t, ViolationTooCloseToGroup, v.Kind)
	assert.Equal(t, "b", v.GroupID)
	assert.Equal(t, "a", v.OtherID)
	assert.InDelta(t, 3.0, v.Actual, 1e-9)
	assert.Equal(t, model.MinGroupClearance, v.Minimum)
}

func TestGap(t *testing.T) {
	a := model.BoundingBox{X1: 10, Y1: 10, X2: 17, Y2: 17}

	assert.InDelta(t, 3.0, Gap(a, model.BoundingBox{X1: 20, Y1: 10, X2: 27, Y2: 17}), 1e-9)
	assert.InDelta(t, 5.0, Gap(a, model.BoundingBox{X1: 10, Y1: 22, X2: 17, Y2: 29}), 1e-9)
	assert.Less(t, Gap(a, model.BoundingBox{X1: 12, Y1: 12, X2: 19, Y2: 19}), 0.0)
}

func TestAuditLayout(t *testing.T) {
	l := model.Layout{
		Plates: []model.Plate{
			{ID: "small", Width: 30, Height: 30},
			{ID: "p", Width: 100, Height: 50},
		},
		SocketGroups: []model.SocketGroup{
			{ID: "a", PlateID: "p", Count: 1, X: 10, Y: 10},
			{ID: "b", PlateID: "p", Count: 1, X: 20, Y: 10},
			{ID: "c", PlateID: "small", Count: 1, X: 10, Y: 10},
			{ID: "d", PlateID: "gone", Count: 1, X: 10, Y: 10},
			{ID: "e", PlateID: "p", Count: 9, X: 40, Y: 30},
		},
	}

	violations := AuditLayout(l)
	kinds := map[ViolationKind][]string{}
	for _, v := range violations {
		kinds[v.Kind] = append(kinds[v.Kind], v.GroupID)
	}

	assert.Equal(t, []string{"a"}, kinds[ViolationTooCloseToGroup], "pair a/b reported once")
	assert.Equal(t, []string{"c"}, kinds[ViolationIneligiblePlate])
	assert.Equal(t, []string{"d"}, kinds[ViolationUnknownPlate])
	assert.Equal(t, []string{"e"}, kinds[ViolationCountOutOfRange])
}

func TestAuditLayoutClean(t *testing.T) {
	l := model.Layout{
		Plates: []model.Plate{{ID: "p", Width: 100, Height: 50}},
		SocketGroups: []model.SocketGroup{
			{ID: "a", PlateID: "p", Count: 1, X: 10, Y: 10},
			{ID: "b", PlateID: "p", Count: 2, X: 21, Y: 10},
		},
	}
	assert.Empty(t, AuditLayout(l))
}

func TestViolationKindText(t *testing.T) {
	text, err := ViolationTooCloseToGroup.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "too_close_to_group", string(text))
}

func TestDiagnoseReportsNaNPosition(t *testing.T) {
	plate := model.Plate{ID: "p", Width: 100, Height: 50}
	c := group("c", 1, model.DirectionHorizontal, math.NaN(), 10)

	violations := Diagnose(c, plate, nil)
	require.Len(t, violations, 2)
	assert.Equal(t, ViolationLeftEdge, violations[0].Kind)
	assert.Equal(t, ViolationRightEdge, violations[1].Kind)
}
