package pdf

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/diillson/retail-report-go/internal/domain/entity"
	"github.com/diillson/retail-report-go/internal/domain/repository"
)

const fontFamily = "Arial"

// Options are document-level metadata.
type Options struct {
	Title        string
	Author       string
	CreationDate time.Time
}

// Renderer draws on a gofpdf document. One Renderer per document.
type Renderer struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
}

// NewRenderer creates an empty A4 document in millimetres.
func NewRenderer(opts Options) *Renderer {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	pdf.SetCreator("retail-report", false)
	if opts.Title != "" {
		pdf.SetTitle(opts.Title, true)
	}
	if opts.Author != "" {
		pdf.SetAuthor(opts.Author, true)
	}
	if !opts.CreationDate.IsZero() {
		pdf.SetCreationDate(opts.CreationDate)
	}
	pdf.SetFont(fontFamily, "", 11)

	return &Renderer{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
}

// Factory returns a constructor producing a fresh renderer per build.
func Factory(opts Options) func() repository.DocumentRenderer {
	return func() repository.DocumentRenderer {
		return NewRenderer(opts)
	}
}

func (r *Renderer) AddPage(orientation entity.Orientation) {
	o := string(orientation)
	if o == "" {
		o = string(entity.OrientationPortrait)
	}
	r.pdf.AddPageFormat(o, r.pdf.GetPageSizeStr("A4"))
}

func (r *Renderer) PageSize() (float64, float64) {
	return r.pdf.GetPageSize()
}

func (r *Renderer) PageCount() int {
	return r.pdf.PageCount()
}

func (r *Renderer) applyStyle(style repository.CellStyle) {
	size := style.FontSize
	if size <= 0 {
		size = 11
	}
	r.pdf.SetFont(fontFamily, style.FontStyle, size)
	r.pdf.SetTextColor(style.Color[0], style.Color[1], style.Color[2])
	if style.Fill != nil {
		r.pdf.SetFillColor(style.Fill[0], style.Fill[1], style.Fill[2])
	}
	r.pdf.SetDrawColor(180, 180, 180)
}

func (r *Renderer) Cell(x, y, w, h float64, text string, style repository.CellStyle) {
	r.applyStyle(style)
	border := ""
	if style.Border {
		border = "1"
	}
	align := style.Align
	if align == "" {
		align = "L"
	}
	r.pdf.SetXY(x, y)
	r.pdf.CellFormat(w, h, r.tr(text), border, 0, align+"M", style.Fill != nil, 0, "")
}

func (r *Renderer) Line(x1, y1, x2, y2 float64, color entity.RGB) {
	r.pdf.SetDrawColor(color[0], color[1], color[2])
	r.pdf.SetLineWidth(0.3)
	r.pdf.Line(x1, y1, x2, y2)
}

// Image registers the image from memory, so no temporary files outlive the build.
func (r *Renderer) Image(name string, data []byte, x, y, w, h float64) error {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("error decoding image %s: %w", name, err)
	}
	opts := gofpdf.ImageOptions{ImageType: imageType(format)}

	r.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
	if r.pdf.Err() {
		return fmt.Errorf("error registering image %s: %w", name, r.pdf.Error())
	}
	r.pdf.ImageOptions(name, x, y, w, h, false, opts, 0, "")
	if r.pdf.Err() {
		return fmt.Errorf("error drawing image %s: %w", name, r.pdf.Error())
	}
	return nil
}

func imageType(format string) string {
	switch format {
	case "jpeg":
		return "JPG"
	case "gif":
		return "GIF"
	default:
		return "PNG"
	}
}

func (r *Renderer) SplitText(text string, width float64, style repository.CellStyle) []string {
	r.applyStyle(style)
	// gofpdf leaves a cell margin on both sides of the text. Lines are translated when drawn.
	chunks := r.pdf.SplitLines([]byte(text), width-2*r.pdf.GetCellMargin())
	lines := make([]string, 0, len(chunks))
	for _, c := range chunks {
		lines = append(lines, string(c))
	}
	return lines
}

func (r *Renderer) Output(w io.Writer) error {
	if r.pdf.Err() {
		return fmt.Errorf("error building PDF: %w", r.pdf.Error())
	}
	if err := r.pdf.Output(w); err != nil {
		return fmt.Errorf("error writing PDF: %w", err)
	}
	return nil
}
