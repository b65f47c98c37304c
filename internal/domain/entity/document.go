package entity

import "time"

// Orientation of a page.
type Orientation string

const (
	// OrientationInherit keeps the orientation of the current page.
	OrientationInherit   Orientation = ""
	OrientationPortrait  Orientation = "P"
	OrientationLandscape Orientation = "L"
)

// RGB is a colour triple.
type RGB [3]int

// Placement carries the page hints shared by every content block.
type Placement struct {
	// Orientation switches the page orientation before the block; a switch forces a page break.
	Orientation Orientation
	// NewPage closes the current page before the block.
	NewPage bool
}

// ContentBlock is the closed set of units the layout engine places.
// Only the variants declared in this package implement it.
type ContentBlock interface {
	BlockKind() string
	PlacementHints() Placement
	contentBlock()
}

// SectionTitle is a filled heading bar.
type SectionTitle struct {
	Placement
	Text string
}

// NarrativeText is a wrapped paragraph; highlighted paragraphs use a filled background.
type NarrativeText struct {
	Placement
	Text      string
	Highlight bool
}

// KeyValue is one row of a KeyValueTable.
type KeyValue struct {
	Key   string
	Value string
}

// KeyValueTable is a two column label/value table.
type KeyValueTable struct {
	Placement
	Rows []KeyValue
}

// ImageBlock is a captioned raster image; it is never split across pages.
type ImageBlock struct {
	Placement
	Label string
	Image []byte
}

// GridColumn declares a DataGrid column; Fraction is its share of the usable width.
type GridColumn struct {
	Header   string
	Fraction float64
	Align    string
}

// DataGrid is a tabular preview whose header row repeats on every page it spans.
type DataGrid struct {
	Placement
	Columns []GridColumn
	Rows    [][]string
}

func (SectionTitle) BlockKind() string  { return "section_title" }
func (NarrativeText) BlockKind() string { return "narrative_text" }
func (KeyValueTable) BlockKind() string { return "key_value_table" }
func (ImageBlock) BlockKind() string    { return "image" }
func (DataGrid) BlockKind() string      { return "data_grid" }

func (p Placement) PlacementHints() Placement { return p }

func (SectionTitle) contentBlock()  {}
func (NarrativeText) contentBlock() {}
func (KeyValueTable) contentBlock() {}
func (ImageBlock) contentBlock()    {}
func (DataGrid) contentBlock()      {}

// RenderedDocument is the serialized output of one document build.
type RenderedDocument struct {
	Content     []byte
	PageCount   int
	GeneratedAt time.Time
}
