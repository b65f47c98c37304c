package repository

import "github.com/diillson/retail-report-go/internal/domain/entity"

// ChartRenderer rasterizes a chart specification into an image.
type ChartRenderer interface {
	Render(spec entity.ChartSpec) ([]byte, error)
}
