package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/diillson/retail-report-go/internal/domain/entity"
)

// ProjectRevenue scales the last `months` points of a monthly series by (1 + growth).
func ProjectRevenue(monthly entity.AggregateSeries, months int, growth float64) []entity.Point {
	points := monthly.Points()
	if months > 0 && len(points) > months {
		points = points[len(points)-months:]
	}

	factor := decimal.NewFromFloat(1 + growth)
	projected := make([]entity.Point, len(points))
	for i, p := range points {
		projected[i] = entity.Point{Key: p.Key, Value: p.Value.Mul(factor)}
	}
	return projected
}
