package layout

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"

	"github.com/diillson/retail-report-go/internal/domain/entity"
	"github.com/diillson/retail-report-go/internal/domain/repository"
	"github.com/diillson/retail-report-go/internal/shared/types"
)

func (e *Engine) placeSection(index int, b entity.SectionTitle) error {
	if err := e.reserve(index, b.BlockKind(), sectionHeight+sectionGap); err != nil {
		return err
	}
	c := &e.cursor
	fill := sectionFill
	e.renderer.Cell(c.Margins.Left, c.Y, c.UsableWidth(), sectionHeight, b.Text,
		repository.CellStyle{FontStyle: "B", FontSize: 13, Align: "L", Fill: &fill, Color: textColor})
	c.advance(sectionHeight + sectionGap)
	return nil
}

func (e *Engine) placeNarrative(index int, b entity.NarrativeText) error {
	style := repository.CellStyle{FontSize: 11, Align: "L", Color: textColor}
	lh := lineHeight
	if b.Highlight {
		fill := highlightFill
		style.Fill = &fill
		lh = highlightLine
	}

	c := &e.cursor
	lines := e.renderer.SplitText(b.Text, c.UsableWidth(), style)
	if len(lines) == 0 {
		lines = []string{""}
	}
	if err := e.reserve(index, b.BlockKind(), float64(len(lines))*lh+paragraphGap); err != nil {
		return err
	}

	for _, line := range lines {
		e.renderer.Cell(c.Margins.Left, c.Y, c.UsableWidth(), lh, line, style)
		c.advance(lh)
	}
	c.advance(paragraphGap)
	return nil
}

func (e *Engine) placeKeyValues(index int, b entity.KeyValueTable) error {
	if err := e.reserve(index, b.BlockKind(), float64(len(b.Rows))*kvRowHeight+kvGap); err != nil {
		return err
	}
	c := &e.cursor
	keyWidth, valueWidth := kvKeyWidth, kvValueWidth
	if total := keyWidth + valueWidth; total > c.UsableWidth() {
		scale := c.UsableWidth() / total
		keyWidth, valueWidth = keyWidth*scale, valueWidth*scale
	}

	keyStyle := repository.CellStyle{FontStyle: "B", FontSize: 11, Align: "L", Border: true, Color: textColor}
	valueStyle := repository.CellStyle{FontSize: 11, Align: "L", Border: true, Color: textColor}
	for _, row := range b.Rows {
		e.renderer.Cell(c.Margins.Left, c.Y, keyWidth, kvRowHeight, row.Key, keyStyle)
		e.renderer.Cell(c.Margins.Left+keyWidth, c.Y, valueWidth, kvRowHeight, row.Value, valueStyle)
		c.advance(kvRowHeight)
	}
	c.advance(kvGap)
	return nil
}

func (e *Engine) placeImage(index int, b entity.ImageBlock) error {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(b.Image))
	if err != nil {
		return fmt.Errorf("%w: block %d %q: %v", types.ErrImageRender, index, b.Label, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("%w: block %d %q has empty dimensions", types.ErrImageRender, index, b.Label)
	}

	c := &e.cursor
	if c.used && c.Y > e.cfg.ImageBreakThreshold {
		e.breakPage(c.Orientation)
	}

	w := math.Min(e.cfg.ImageWidth, c.UsableWidth())
	h := w * float64(cfg.Height) / float64(cfg.Width)
	if err := e.reserve(index, b.BlockKind(), imageLabel+h+imageGap); err != nil {
		return err
	}

	e.renderer.Cell(c.Margins.Left, c.Y, c.UsableWidth(), imageLabel, b.Label,
		repository.CellStyle{FontStyle: "B", FontSize: 11, Align: "L", Color: textColor})
	c.advance(imageLabel)

	e.images++
	name := fmt.Sprintf("image-%d", e.images)
	if err := e.renderer.Image(name, b.Image, c.Margins.Left, c.Y, w, h); err != nil {
		return fmt.Errorf("%w: block %d %q: %v", types.ErrImageRender, index, b.Label, err)
	}
	c.advance(h + imageGap)
	return nil
}

// ValidateGrid checks that the grid has columns and that their fractions add up to one.
func ValidateGrid(b entity.DataGrid) error {
	if len(b.Columns) == 0 {
		return fmt.Errorf("%w: no columns", types.ErrInvalidGrid)
	}
	var sum float64
	for _, col := range b.Columns {
		if col.Fraction <= 0 {
			return fmt.Errorf("%w: column %q has fraction %g", types.ErrInvalidGrid, col.Header, col.Fraction)
		}
		sum += col.Fraction
	}
	if math.Abs(sum-1) > fractionTolerance {
		return fmt.Errorf("%w: column fractions sum to %g", types.ErrInvalidGrid, sum)
	}
	return nil
}

// columnWidths splits width by fraction; the last column absorbs rounding so the row spans width exactly.
func columnWidths(cols []entity.GridColumn, width float64) []float64 {
	widths := make([]float64, len(cols))
	var used float64
	for i := range cols[:len(cols)-1] {
		widths[i] = cols[i].Fraction * width
		used += widths[i]
	}
	widths[len(cols)-1] = width - used
	return widths
}

func (e *Engine) placeGrid(index int, b entity.DataGrid) error {
	if err := ValidateGrid(b); err != nil {
		return fmt.Errorf("block %d: %w", index, err)
	}

	first := gridRowHeight
	if len(b.Rows) > 0 {
		first += gridRowHeight
	}
	if err := e.reserve(index, b.BlockKind(), first); err != nil {
		return err
	}

	c := &e.cursor
	widths := columnWidths(b.Columns, c.UsableWidth())
	e.drawGridHeader(b.Columns, widths)

	for i, row := range b.Rows {
		if !c.Fits(gridRowHeight) {
			e.breakPage(c.Orientation)
			widths = columnWidths(b.Columns, c.UsableWidth())
			e.drawGridHeader(b.Columns, widths)
		}

		// The first row is plain, then rows alternate with the shaded fill.
		fill := gridPlainFill
		if i%2 == 1 {
			fill = gridShadeFill
		}
		x := c.Margins.Left
		for j, col := range b.Columns {
			var text string
			if j < len(row) {
				text = e.truncate(row[j])
			}
			align := col.Align
			if align == "" {
				align = "L"
			}
			e.renderer.Cell(x, c.Y, widths[j], gridRowHeight, text,
				repository.CellStyle{FontSize: 8, Align: align, Border: true, Fill: &fill, Color: textColor})
			x += widths[j]
		}
		c.advance(gridRowHeight)
	}

	if c.Fits(gridGap) {
		c.advance(gridGap)
	} else {
		c.Y = c.Bottom()
	}
	return nil
}

func (e *Engine) drawGridHeader(cols []entity.GridColumn, widths []float64) {
	c := &e.cursor
	fill := sectionFill
	style := repository.CellStyle{FontStyle: "B", FontSize: 8, Align: "C", Border: true, Fill: &fill, Color: textColor}
	x := c.Margins.Left
	for i, col := range cols {
		e.renderer.Cell(x, c.Y, widths[i], gridRowHeight, e.truncate(col.Header), style)
		x += widths[i]
	}
	c.advance(gridRowHeight)
}
