// Package layout places content blocks onto paginated pages through a DocumentRenderer.
package layout

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/diillson/retail-report-go/internal/domain/entity"
)

// Margins in renderer units (millimetres for the PDF adapter).
type Margins struct {
	Left   float64 `json:"left" yaml:"left" toml:"left"`
	Top    float64 `json:"top" yaml:"top" toml:"top"`
	Right  float64 `json:"right" yaml:"right" toml:"right"`
	Bottom float64 `json:"bottom" yaml:"bottom" toml:"bottom"`
}

// Config is the geometry and page metadata of one document build.
type Config struct {
	Title       string
	Footer      string
	GeneratedAt time.Time
	// RepeatHeader draws the title and timestamp on every page instead of page 1 only.
	RepeatHeader bool

	PortraitMargins  Margins
	LandscapeMargins Margins

	// ImageBreakThreshold closes the page before an image when the cursor is below this offset.
	ImageBreakThreshold float64
	ImageWidth          float64
	MaxCellChars        int

	Logger zerolog.Logger
}

// DefaultConfig returns the A4 geometry used by the PDF reports.
func DefaultConfig() Config {
	return Config{
		Title:               "Retail Analytics Report",
		Footer:              "Retail Analytics Dashboard",
		PortraitMargins:     Margins{Left: 10, Top: 15, Right: 10, Bottom: 20},
		LandscapeMargins:    Margins{Left: 10, Top: 15, Right: 10, Bottom: 15},
		ImageBreakThreshold: 140,
		ImageWidth:          180,
		MaxCellChars:        40,
		Logger:              zerolog.Nop(),
	}
}

func (c Config) margins(o entity.Orientation) Margins {
	if o == entity.OrientationLandscape {
		return c.LandscapeMargins
	}
	return c.PortraitMargins
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.PortraitMargins == (Margins{}) {
		c.PortraitMargins = def.PortraitMargins
	}
	if c.LandscapeMargins == (Margins{}) {
		c.LandscapeMargins = def.LandscapeMargins
	}
	if c.ImageBreakThreshold <= 0 {
		c.ImageBreakThreshold = def.ImageBreakThreshold
	}
	if c.ImageWidth <= 0 {
		c.ImageWidth = def.ImageWidth
	}
	if c.MaxCellChars <= 0 {
		c.MaxCellChars = def.MaxCellChars
	}
	if c.GeneratedAt.IsZero() {
		c.GeneratedAt = time.Now()
	}
	return c
}
