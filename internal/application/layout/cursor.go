package layout

import "github.com/diillson/retail-report-go/internal/domain/entity"

// PageState is the state of the page under the cursor.
type PageState int

const (
	// PageFull means the next placement must open a new page. A fresh engine starts here.
	PageFull PageState = iota
	PageOpen
	DocumentClosed
)

func (s PageState) String() string {
	switch s {
	case PageOpen:
		return "page_open"
	case PageFull:
		return "page_full"
	case DocumentClosed:
		return "document_closed"
	default:
		return "unknown"
	}
}

// PageCursor tracks the write position of a single document build.
type PageCursor struct {
	Page        int
	Orientation entity.Orientation
	Margins     Margins
	Width       float64
	Height      float64
	Y           float64
	// BodyTop is where content starts on the current page, below any header.
	BodyTop float64
	State   PageState
	// used is set once a block lands on the current page.
	used bool
}

// UsableWidth is the page width between the side margins.
func (c *PageCursor) UsableWidth() float64 {
	return c.Width - c.Margins.Left - c.Margins.Right
}

// UsableHeight is the page height between the top and bottom margins.
func (c *PageCursor) UsableHeight() float64 {
	return c.Height - c.Margins.Top - c.Margins.Bottom
}

// Bottom is the lowest offset content may reach.
func (c *PageCursor) Bottom() float64 {
	return c.Height - c.Margins.Bottom
}

// Remaining is the vertical space left on the current page.
func (c *PageCursor) Remaining() float64 {
	return c.Bottom() - c.Y
}

// Fits reports whether a block of height h fits below the cursor.
func (c *PageCursor) Fits(h float64) bool {
	return c.State == PageOpen && c.Y+h <= c.Bottom()+epsilon
}

func (c *PageCursor) advance(h float64) {
	c.Y += h
	c.used = true
}

const epsilon = 1e-9
