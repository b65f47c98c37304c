package entity

// ChartKind selects how a chart specification is drawn.
type ChartKind string

const (
	ChartBar  ChartKind = "bar"
	ChartLine ChartKind = "line"
)

// ChartSpec describes a chart to be rasterized by a ChartRenderer.
type ChartSpec struct {
	Title  string
	Kind   ChartKind
	Labels []string
	Values []float64
	Width  int
	Height int
}

// ChartImage is a rasterized chart and its caption.
type ChartImage struct {
	Title string
	Image []byte
}
