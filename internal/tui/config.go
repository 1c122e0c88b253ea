package tui

import (
	"log/slog"
	"time"

	"github.com/Veraticus/ledgerlens/internal/capture"
	"github.com/Veraticus/ledgerlens/internal/intake"
	"github.com/Veraticus/ledgerlens/internal/ledger"
	"github.com/Veraticus/ledgerlens/internal/network"
	"github.com/Veraticus/ledgerlens/internal/service"
	"github.com/Veraticus/ledgerlens/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Theme    themes.Theme
	Ledger   *ledger.Store
	Session  *intake.Session
	Network  network.Status
	Camera   capture.Camera
	Renderer service.ReportRenderer
	Logger   *slog.Logger
	Now      func() time.Time
	// ReportDir is where PDF reports are written.
	ReportDir string
	Facing    capture.Facing
	Width     int
	Height    int
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:     themes.Default,
		Network:   network.Static(true),
		Now:       time.Now,
		ReportDir: ".",
		Facing:    capture.FacingEnvironment,
		Width:     80,
		Height:    24,
	}
}

// WithLedger sets the item store. Required.
func WithLedger(store *ledger.Store) Option {
	return func(c *Config) {
		c.Ledger = store
	}
}

// WithSession sets the add-item session. Without one the form works
// offline only.
func WithSession(session *intake.Session) Option {
	return func(c *Config) {
		c.Session = session
	}
}

// WithNetwork sets the connectivity source. A source that also offers
// Subscribe() <-chan bool drives the offline banner live.
func WithNetwork(status network.Status) Option {
	return func(c *Config) {
		c.Network = status
	}
}

// WithCamera sets the snapshot source for in-app capture.
func WithCamera(camera capture.Camera) Option {
	return func(c *Config) {
		c.Camera = camera
	}
}

// WithRenderer sets the PDF renderer.
func WithRenderer(renderer service.ReportRenderer) Option {
	return func(c *Config) {
		c.Renderer = renderer
	}
}

// WithReportDir sets the report output directory.
func WithReportDir(dir string) Option {
	return func(c *Config) {
		if dir != "" {
			c.ReportDir = dir
		}
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithClock overrides the time source used for the greeting.
func WithClock(now func() time.Time) Option {
	return func(c *Config) {
		c.Now = now
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}
