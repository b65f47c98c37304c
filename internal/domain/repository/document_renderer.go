package repository

import (
	"io"

	"github.com/diillson/retail-report-go/internal/domain/entity"
)

// CellStyle describes how a text cell is drawn.
type CellStyle struct {
	FontStyle string // "", "B", "I"
	FontSize  float64
	Align     string // "L", "C", "R"
	Border    bool
	Fill      *entity.RGB
	Color     entity.RGB
}

// DocumentRenderer is the drawing primitive the layout engine drives.
// Coordinates are absolute, in the renderer's unit, from the top-left corner of the current page.
type DocumentRenderer interface {
	AddPage(orientation entity.Orientation)
	PageSize() (width, height float64)
	PageCount() int
	Cell(x, y, w, h float64, text string, style CellStyle)
	Line(x1, y1, x2, y2 float64, color entity.RGB)
	Image(name string, data []byte, x, y, w, h float64) error
	SplitText(text string, width float64, style CellStyle) []string
	Output(w io.Writer) error
}
