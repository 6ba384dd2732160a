package model

// AppConfig holds application-wide preferences.
// Placement geometry is fixed and deliberately not part of it.
type AppConfig struct {
	// Desktop UI
	Theme         string `json:"theme"`          // "light", "dark", "system"
	NoticeSeconds int    `json:"notice_seconds"` // how long rejection notices stay visible
	WindowWidth   int    `json:"window_width"`
	WindowHeight  int    `json:"window_height"`

	// HTTP API
	ServerAddr string `json:"server_addr"`
	BodyLimit  string `json:"body_limit"` // echo body limit, e.g. "2M"

	// Exports
	LastExportDir string   `json:"last_export_dir"`
	RecentExports []string `json:"recent_exports"`
}

// maxRecentExports bounds the RecentExports list.
const maxRecentExports = 10

// DefaultAppConfig returns an AppConfig populated with sensible defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		Theme:         "system",
		NoticeSeconds: 3,
		WindowWidth:   1280,
		WindowHeight:  760,
		ServerAddr:    "127.0.0.1:8080",
		BodyLimit:     "2M",
		RecentExports: []string{},
	}
}

// Normalize replaces zero or missing values with their defaults. Files written
// by older versions may lack fields.
func (c *AppConfig) Normalize() {
	defaults := DefaultAppConfig()
	if c.Theme == "" {
		c.Theme = defaults.Theme
	}
	if c.NoticeSeconds <= 0 {
		c.NoticeSeconds = defaults.NoticeSeconds
	}
	if c.WindowWidth <= 0 || c.WindowHeight <= 0 {
		c.WindowWidth = defaults.WindowWidth
		c.WindowHeight = defaults.WindowHeight
	}
	if c.ServerAddr == "" {
		c.ServerAddr = defaults.ServerAddr
	}
	if c.BodyLimit == "" {
		c.BodyLimit = defaults.BodyLimit
	}
	if c.RecentExports == nil {
		c.RecentExports = []string{}
	}
}

// AddRecentExport puts path at the front of RecentExports, removing an
// earlier occurrence and trimming the list.
func (c *AppConfig) AddRecentExport(path string) {
	recent := []string{path}
	for _, p := range c.RecentExports {
		if p != path {
			recent = append(recent, p)
		}
	}
	if len(recent) > maxRecentExports {
		recent = recent[:maxRecentExports]
	}
	c.RecentExports = recent
}
