package model

import (
	"fmt"
	"testing"
)

func TestDefaultAppConfig(t *testing.T) {
	cfg := DefaultAppConfig()

	if cfg.Theme != "system" {
		t.Errorf("expected default theme=system, got %s", cfg.Theme)
	}
	if cfg.NoticeSeconds != 3 {
		t.Errorf("expected NoticeSeconds=3, got %d", cfg.NoticeSeconds)
	}
	if cfg.ServerAddr == "" {
		t.Error("ServerAddr should have a default")
	}
	if cfg.RecentExports == nil {
		t.Error("RecentExports should not be nil")
	}
}

func TestNormalizeFillsMissingFields(t *testing.T) {
	cfg := AppConfig{Theme: "dark"}
	cfg.Normalize()

	if cfg.Theme != "dark" {
		t.Errorf("Normalize should keep explicit theme, got %s", cfg.Theme)
	}
	if cfg.NoticeSeconds != 3 {
		t.Errorf("expected NoticeSeconds=3, got %d", cfg.NoticeSeconds)
	}
	if cfg.WindowWidth != 1280 || cfg.WindowHeight != 760 {
		t.Errorf("expected default window size, got %dx%d", cfg.WindowWidth, cfg.WindowHeight)
	}
	if cfg.BodyLimit != "2M" {
		t.Errorf("expected BodyLimit=2M, got %s", cfg.BodyLimit)
	}
	if cfg.RecentExports == nil {
		t.Error("RecentExports should not be nil after Normalize")
	}
}

func TestAddRecentExport(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.AddRecentExport("/tmp/a.pdf")
	cfg.AddRecentExport("/tmp/b.pdf")
	cfg.AddRecentExport("/tmp/a.pdf")

	if len(cfg.RecentExports) != 2 {
		t.Fatalf("expected 2 recent exports, got %d", len(cfg.RecentExports))
	}
	if cfg.RecentExports[0] != "/tmp/a.pdf" {
		t.Errorf("expected most recent first, got %s", cfg.RecentExports[0])
	}
}

func TestAddRecentExportTrims(t *testing.T) {
	cfg := DefaultAppConfig()
	for i := 0; i < maxRecentExports+5; i++ {
		cfg.AddRecentExport(fmt.Sprintf("/tmp/%d.pdf", i))
	}
	if len(cfg.RecentExports) != maxRecentExports {
		t.Errorf("expected %d entries, got %d", maxRecentExports, len(cfg.RecentExports))
	}
}
