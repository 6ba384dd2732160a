package model

import (
	"encoding/json"
	"math"
	"testing"
)

func TestClampWidth(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{500, PlateMaxWidth},
		{5, PlateMinWidth},
		{-10, PlateMinWidth},
		{120.5, 120.5},
		{PlateMaxWidth, PlateMaxWidth},
	}
	for _, tt := range tests {
		if got := ClampWidth(tt.in); got != tt.want {
			t.Errorf("ClampWidth(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestClampNonFinite(t *testing.T) {
	tests := []struct {
		in           float64
		wantW, wantH float64
	}{
		{math.NaN(), PlateMinWidth, PlateMinHeight},
		{math.Inf(1), PlateMaxWidth, PlateMaxHeight},
		{math.Inf(-1), PlateMinWidth, PlateMinHeight},
	}
	for _, tt := range tests {
		if got := ClampWidth(tt.in); got != tt.wantW {
			t.Errorf("ClampWidth(%v) = %v, want %v", tt.in, got, tt.wantW)
		}
		if got := ClampHeight(tt.in); got != tt.wantH {
			t.Errorf("ClampHeight(%v) = %v, want %v", tt.in, got, tt.wantH)
		}
	}
}

func TestClampHeight(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{200, PlateMaxHeight},
		{10, PlateMinHeight},
		{36.8, 36.8},
	}
	for _, tt := range tests {
		if got := ClampHeight(tt.in); got != tt.want {
			t.Errorf("ClampHeight(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewPlateClamps(t *testing.T) {
	p := NewPlate(500, 5)
	if p.Width != 300 || p.Height != 30 {
		t.Errorf("expected 300x30, got %vx%v", p.Width, p.Height)
	}
	if len(p.ID) != 8 {
		t.Errorf("expected 8-char ID, got %q", p.ID)
	}
}

func TestPlateEligible(t *testing.T) {
	tests := []struct {
		w, h float64
		want bool
	}{
		{100, 50, true},
		{40, 40, true},
		{30, 30, false},
		{151.5, 36.8, false},
		{39.9, 100, false},
	}
	for _, tt := range tests {
		p := Plate{Width: tt.w, Height: tt.h}
		if got := p.Eligible(); got != tt.want {
			t.Errorf("Plate{%v,%v}.Eligible() = %v, want %v", tt.w, tt.h, got, tt.want)
		}
	}
}

func TestNewSocketGroupDefaults(t *testing.T) {
	g := NewSocketGroup("p1")
	if g.PlateID != "p1" {
		t.Errorf("expected plate p1, got %s", g.PlateID)
	}
	if g.Count != 1 || g.Direction != DirectionHorizontal {
		t.Errorf("expected 1 horizontal socket, got %d %s", g.Count, g.Direction)
	}
	if g.X != 10 || g.Y != 10 {
		t.Errorf("expected anchor 10/10, got %v/%v", g.X, g.Y)
	}
}

func TestValidCount(t *testing.T) {
	for n := -1; n <= 7; n++ {
		want := n >= 1 && n <= 5
		if got := ValidCount(n); got != want {
			t.Errorf("ValidCount(%d) = %v, want %v", n, got, want)
		}
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in     string
		want   Direction
		wantOK bool
	}{
		{"Horizontal", DirectionHorizontal, true},
		{"h", DirectionHorizontal, true},
		{" VERTICAL ", DirectionVertical, true},
		{"vertikal", DirectionVertical, true},
		{"v", DirectionVertical, true},
		{"diagonal", DirectionHorizontal, false},
	}
	for _, tt := range tests {
		got, ok := ParseDirection(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseDirection(%q) = %v,%v want %v,%v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestDirectionJSON(t *testing.T) {
	g := SocketGroup{ID: "g1", PlateID: "p1", Count: 2, Direction: DirectionVertical, X: 5, Y: 6}
	data, err := json.Marshal(g)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("unmarshal map: %v", err)
	}
	if m["direction"] != "vertical" {
		t.Errorf("expected direction encoded as \"vertical\", got %v", m["direction"])
	}

	var bad SocketGroup
	if err := json.Unmarshal([]byte(`{"direction":"sideways"}`), &bad); err == nil {
		t.Error("expected error for unknown direction")
	}
}

func TestLayoutHelpers(t *testing.T) {
	l := Layout{
		Plates: []Plate{
			{ID: "a", Width: 151.5, Height: 36.8},
			{ID: "b", Width: 100, Height: 50},
		},
		SocketGroups: []SocketGroup{
			{ID: "g1", PlateID: "b", Count: 2},
			{ID: "g2", PlateID: "b", Count: 3},
		},
	}

	if got := len(l.GroupsOnPlate("b")); got != 2 {
		t.Errorf("expected 2 groups on b, got %d", got)
	}
	if got := len(l.GroupsOnPlate("a")); got != 0 {
		t.Errorf("expected 0 groups on a, got %d", got)
	}
	if got := l.SocketCount(); got != 5 {
		t.Errorf("expected 5 sockets, got %d", got)
	}
	eligible := l.EligiblePlates()
	if len(eligible) != 1 || eligible[0].ID != "b" {
		t.Errorf("expected only plate b eligible, got %v", eligible)
	}
	if idx := l.PlateIndex("b"); idx != 1 {
		t.Errorf("expected index 1, got %d", idx)
	}
	if _, ok := l.FindGroup("nope"); ok {
		t.Error("FindGroup should miss unknown IDs")
	}
}
