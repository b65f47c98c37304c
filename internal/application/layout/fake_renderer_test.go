package layout

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"
	"testing"

	"github.com/diillson/retail-report-go/internal/domain/entity"
	"github.com/diillson/retail-report-go/internal/domain/repository"
)

type drawnCell struct {
	X, Y, W, H float64
	Text       string
	Style      repository.CellStyle
}

type drawnImage struct {
	Name       string
	X, Y, W, H float64
}

type recordedPage struct {
	Orientation entity.Orientation
	Cells       []drawnCell
	Images      []drawnImage
	Lines       int
}

// recordingRenderer is an in-memory DocumentRenderer that keeps every drawing call per page.
type recordingRenderer struct {
	pages    []*recordedPage
	imageErr error
}

func (r *recordingRenderer) current() *recordedPage {
	return r.pages[len(r.pages)-1]
}

func (r *recordingRenderer) AddPage(o entity.Orientation) {
	r.pages = append(r.pages, &recordedPage{Orientation: o})
}

func (r *recordingRenderer) PageSize() (float64, float64) {
	if r.current().Orientation == entity.OrientationLandscape {
		return 297, 210
	}
	return 210, 297
}

func (r *recordingRenderer) PageCount() int { return len(r.pages) }

func (r *recordingRenderer) Cell(x, y, w, h float64, text string, style repository.CellStyle) {
	p := r.current()
	p.Cells = append(p.Cells, drawnCell{X: x, Y: y, W: w, H: h, Text: text, Style: style})
}

func (r *recordingRenderer) Line(_, _, _, _ float64, _ entity.RGB) {
	r.current().Lines++
}

func (r *recordingRenderer) Image(name string, _ []byte, x, y, w, h float64) error {
	if r.imageErr != nil {
		return r.imageErr
	}
	p := r.current()
	p.Images = append(p.Images, drawnImage{Name: name, X: x, Y: y, W: w, H: h})
	return nil
}

// SplitText wraps on words assuming 2 units per character.
func (r *recordingRenderer) SplitText(text string, width float64, _ repository.CellStyle) []string {
	limit := int(width / 2)
	var lines []string
	var line string
	for _, word := range strings.Fields(text) {
		switch {
		case line == "":
			line = word
		case len(line)+1+len(word) <= limit:
			line += " " + word
		default:
			lines = append(lines, line)
			line = word
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}

func (r *recordingRenderer) Output(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%%PDF-fake pages=%d", len(r.pages))
	return err
}

func (r *recordingRenderer) cellsWithText(page int, text string) int {
	n := 0
	for _, c := range r.pages[page].Cells {
		if c.Text == text {
			n++
		}
	}
	return n
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, h/2, color.RGBA{R: 31, G: 119, B: 180, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}
