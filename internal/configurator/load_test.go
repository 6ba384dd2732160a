package configurator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/SocketPlan/internal/model"
)

func TestFromLayoutClampsAndDeduplicatesPlates(t *testing.T) {
	s, errs := FromLayout(model.Layout{Plates: []model.Plate{
		{ID: "a", Width: 500, Height: 10},
		{ID: "a", Width: 100, Height: 50},
		{Width: 60, Height: 60},
	}})
	assert.Empty(t, errs)
	require.Len(t, s.Plates, 3)
	assert.Equal(t, 300.0, s.Plates[0].Width)
	assert.Equal(t, 30.0, s.Plates[0].Height)
	assert.NotEqual(t, "a", s.Plates[1].ID)
	assert.NotEmpty(t, s.Plates[2].ID)
}

func TestFromLayoutEmptyGetsInitialPlate(t *testing.T) {
	s, errs := FromLayout(model.Layout{})
	assert.Empty(t, errs)
	require.Len(t, s.Plates, 1)
	assert.Equal(t, model.InitialPlateWidth, s.Plates[0].Width)
}

func TestFromLayoutIgnoresGroupsWhenDisabled(t *testing.T) {
	s, errs := FromLayout(model.Layout{
		Plates:       []model.Plate{{ID: "a", Width: 100, Height: 50}},
		SocketGroups: []model.SocketGroup{{ID: "g", PlateID: "a", Count: 1, X: 10, Y: 10}},
	})
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], ErrSocketsDisabled)
	assert.Empty(t, s.SocketGroups)
}

func TestFromLayoutReplaysGroups(t *testing.T) {
	s, errs := FromLayout(model.Layout{
		Plates: []model.Plate{
			{ID: "a", Width: 100, Height: 50},
			{ID: "small", Width: 30, Height: 30},
		},
		SocketGroups: []model.SocketGroup{
			{ID: "ok", PlateID: "a", Count: 2, X: 10, Y: 10},
			{ID: "close", PlateID: "a", Count: 1, X: 26, Y: 10},
			{ID: "far", PlateID: "a", Count: 1, X: 50, Y: 30},
			{ID: "count", PlateID: "a", Count: 9, X: 70, Y: 10},
			{ID: "ghost", PlateID: "missing", Count: 1, X: 10, Y: 10},
			{ID: "tiny", PlateID: "small", Count: 1, X: 10, Y: 10},
			{ID: "ok", PlateID: "a", Count: 1, X: 80, Y: 10},
		},
		SocketsEnabled: true,
	})

	require.Len(t, errs, 4)
	assert.ErrorIs(t, errs[0], ErrInvalidPlacement)
	assert.ErrorIs(t, errs[1], ErrCountOutOfRange)
	assert.ErrorIs(t, errs[2], ErrPlateNotFound)
	assert.ErrorIs(t, errs[3], ErrPlateNotEligible)

	require.Len(t, s.SocketGroups, 3)
	assert.Equal(t, "ok", s.SocketGroups[0].ID)
	assert.Equal(t, "far", s.SocketGroups[1].ID)
	assert.NotEqual(t, "ok", s.SocketGroups[2].ID, "duplicate ID is replaced")
	assertInvariant(t, s)
}

func TestFromLayoutNonFinite(t *testing.T) {
	s, errs := FromLayout(model.Layout{
		Plates: []model.Plate{
			{ID: "a", Width: math.NaN(), Height: math.Inf(1)},
			{ID: "b", Width: 100, Height: 50},
		},
		SocketGroups: []model.SocketGroup{
			{ID: "nan", PlateID: "b", Count: 1, X: math.NaN(), Y: 10},
			{ID: "inf", PlateID: "b", Count: 1, X: 10, Y: math.Inf(-1)},
			{ID: "ok", PlateID: "b", Count: 1, X: 10, Y: 10},
		},
		SocketsEnabled: true,
	})
	require.Len(t, errs, 2)
	assert.ErrorIs(t, errs[0], ErrInvalidPlacement)
	assert.ErrorIs(t, errs[1], ErrInvalidPlacement)

	assert.Equal(t, model.PlateMinWidth, s.Plates[0].Width)
	assert.Equal(t, model.PlateMaxHeight, s.Plates[0].Height)
	require.Len(t, s.SocketGroups, 1)
	assert.Equal(t, "ok", s.SocketGroups[0].ID)
	assertInvariant(t, s)
}
