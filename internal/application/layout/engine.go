package layout

import (
	"bytes"
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/diillson/retail-report-go/internal/domain/entity"
	"github.com/diillson/retail-report-go/internal/domain/repository"
	"github.com/diillson/retail-report-go/internal/shared/types"
)

const (
	headerTitleHeight = 12.0
	headerStampHeight = 6.0
	headerBodyTop     = 48.0
	footerOffset      = 15.0
	footerHeight      = 8.0

	sectionHeight = 10.0
	sectionGap    = 6.0
	lineHeight    = 6.0
	highlightLine = 8.0
	paragraphGap  = 8.0
	kvRowHeight   = 9.0
	kvKeyWidth    = 80.0
	kvValueWidth  = 60.0
	kvGap         = 8.0
	imageLabel    = 8.0
	imageGap      = 12.0
	gridRowHeight = 8.0
	gridGap       = 8.0

	fractionTolerance = 1e-6

	stampLayout = "Generated on: 02 January 2006, 03:04 PM"
)

var (
	sectionFill   = entity.RGB{230, 238, 249}
	highlightFill = entity.RGB{248, 249, 250}
	gridPlainFill = entity.RGB{255, 255, 255}
	gridShadeFill = entity.RGB{245, 245, 245}
	textColor     = entity.RGB{33, 37, 41}
	mutedColor    = entity.RGB{110, 110, 110}
	ruleColor     = entity.RGB{200, 200, 200}
)

// Engine lays out one document. It is single-use: create a new Engine per build.
type Engine struct {
	cfg      Config
	renderer repository.DocumentRenderer
	cursor   PageCursor
	blocks   int
	images   int
}

// New creates an engine drawing on renderer. The renderer must be fresh for this build.
func New(renderer repository.DocumentRenderer, cfg Config) *Engine {
	return &Engine{
		cfg:      cfg.withDefaults(),
		renderer: renderer,
		cursor:   PageCursor{State: PageFull, Orientation: entity.OrientationPortrait},
	}
}

// Render places every block in order and finalizes the document.
func Render(renderer repository.DocumentRenderer, cfg Config, blocks []entity.ContentBlock) (entity.RenderedDocument, error) {
	engine := New(renderer, cfg)
	for _, block := range blocks {
		if err := engine.Place(block); err != nil {
			return entity.RenderedDocument{}, err
		}
	}
	return engine.Finalize()
}

// Cursor returns a copy of the current layout state.
func (e *Engine) Cursor() PageCursor {
	return e.cursor
}

// Place positions a block below the previous one, breaking pages as needed.
func (e *Engine) Place(block entity.ContentBlock) error {
	if e.cursor.State == DocumentClosed {
		return types.ErrDocumentClosed
	}
	index := e.blocks
	e.blocks++

	hints := block.PlacementHints()
	orientation := hints.Orientation
	if orientation == entity.OrientationInherit {
		orientation = e.cursor.Orientation
	}
	switch {
	case e.cursor.State == PageFull:
		e.openPage(orientation)
	case orientation != e.cursor.Orientation:
		e.breakPage(orientation)
	case hints.NewPage && e.cursor.used:
		e.breakPage(orientation)
	}

	var err error
	switch b := block.(type) {
	case entity.SectionTitle:
		err = e.placeSection(index, b)
	case entity.NarrativeText:
		err = e.placeNarrative(index, b)
	case entity.KeyValueTable:
		err = e.placeKeyValues(index, b)
	case entity.ImageBlock:
		err = e.placeImage(index, b)
	case entity.DataGrid:
		err = e.placeGrid(index, b)
	default:
		err = fmt.Errorf("unsupported content block %T", block)
	}
	if err != nil {
		return err
	}

	e.cfg.Logger.Debug().
		Int("block", index).
		Str("kind", block.BlockKind()).
		Int("page", e.cursor.Page).
		Float64("y", e.cursor.Y).
		Msg("block placed")
	return nil
}

// Finalize closes the last page and serializes the document.
func (e *Engine) Finalize() (entity.RenderedDocument, error) {
	if e.cursor.State == DocumentClosed {
		return entity.RenderedDocument{}, types.ErrDocumentClosed
	}
	if e.cursor.Page == 0 {
		e.openPage(e.cursor.Orientation)
	}
	e.drawFooter()
	e.cursor.State = DocumentClosed

	var buf bytes.Buffer
	if err := e.renderer.Output(&buf); err != nil {
		return entity.RenderedDocument{}, fmt.Errorf("failed to serialize document: %w", err)
	}

	e.cfg.Logger.Debug().
		Int("pages", e.renderer.PageCount()).
		Int("blocks", e.blocks).
		Int("bytes", buf.Len()).
		Msg("document finalized")

	return entity.RenderedDocument{
		Content:     buf.Bytes(),
		PageCount:   e.renderer.PageCount(),
		GeneratedAt: e.cfg.GeneratedAt,
	}, nil
}

func (e *Engine) openPage(orientation entity.Orientation) {
	e.renderer.AddPage(orientation)
	w, h := e.renderer.PageSize()

	m := e.cfg.margins(orientation)
	e.cursor = PageCursor{
		Page:        e.cursor.Page + 1,
		Orientation: orientation,
		Margins:     m,
		Width:       w,
		Height:      h,
		Y:           m.Top,
		BodyTop:     m.Top,
		State:       PageOpen,
	}

	if e.cfg.Title != "" && (e.cursor.Page == 1 || e.cfg.RepeatHeader) {
		e.drawHeader()
	}
}

func (e *Engine) breakPage(orientation entity.Orientation) {
	e.cfg.Logger.Debug().
		Int("page", e.cursor.Page).
		Str("orientation", string(orientation)).
		Msg("page break")
	e.cursor.State = PageFull
	e.drawFooter()
	e.openPage(orientation)
}

func (e *Engine) drawHeader() {
	c := &e.cursor
	x, w := c.Margins.Left, c.UsableWidth()
	y := c.Margins.Top

	e.renderer.Cell(x, y, w, headerTitleHeight, e.cfg.Title,
		repository.CellStyle{FontStyle: "B", FontSize: 16, Align: "C", Color: textColor})
	y += headerTitleHeight
	e.renderer.Cell(x, y, w, headerStampHeight, e.cfg.GeneratedAt.Format(stampLayout),
		repository.CellStyle{FontSize: 9, Align: "C", Color: mutedColor})
	y += headerStampHeight + 3
	e.renderer.Line(x, y, x+w, y, ruleColor)

	c.BodyTop = math.Max(headerBodyTop, y)
	c.Y = c.BodyTop
}

func (e *Engine) drawFooter() {
	c := &e.cursor
	text := fmt.Sprintf("Page %d", c.Page)
	if e.cfg.Footer != "" {
		text = e.cfg.Footer + " | " + text
	}
	e.renderer.Cell(c.Margins.Left, c.Height-footerOffset, c.UsableWidth(), footerHeight, text,
		repository.CellStyle{FontSize: 8, Align: "C", Color: mutedColor})
}

// reserve makes room for a block of height h, breaking the page when it does not fit.
// A block taller than a fresh page can never be placed.
func (e *Engine) reserve(index int, kind string, h float64) error {
	if available := e.freshPageHeight(); h > available+epsilon {
		return &types.LayoutOverflowError{Index: index, Kind: kind, Height: h, Available: available}
	}
	if !e.cursor.Fits(h) {
		e.breakPage(e.cursor.Orientation)
	}
	return nil
}

// freshPageHeight is the body height of the next page in the current orientation.
func (e *Engine) freshPageHeight() float64 {
	top := e.cursor.Margins.Top
	if e.cfg.Title != "" && e.cfg.RepeatHeader {
		top = math.Max(top, headerBodyTop)
	}
	return e.cursor.Bottom() - top
}

func (e *Engine) truncate(s string) string {
	if utf8.RuneCountInString(s) <= e.cfg.MaxCellChars {
		return s
	}
	return string([]rune(s)[:e.cfg.MaxCellChars])
}
