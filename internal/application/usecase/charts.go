package usecase

import (
	"fmt"

	"github.com/diillson/retail-report-go/internal/application/analytics"
	"github.com/diillson/retail-report-go/internal/domain/entity"
	"github.com/diillson/retail-report-go/internal/domain/repository"
	"github.com/diillson/retail-report-go/internal/shared/types"
)

const (
	projectionMonths = 6
	projectionGrowth = 0.05
)

func seriesChart(title string, kind entity.ChartKind, points []entity.Point, width, height int) entity.ChartSpec {
	spec := entity.ChartSpec{Title: title, Kind: kind, Width: width, Height: height}
	for _, p := range points {
		spec.Labels = append(spec.Labels, p.Key)
		spec.Values = append(spec.Values, p.Value.InexactFloat64())
	}
	return spec
}

// BuildChartSpecs returns the dashboard charts for a dataset; an empty dataset has none.
func BuildChartSpecs(ds entity.Dataset, width, height int) []entity.ChartSpec {
	if ds.IsEmpty() {
		return nil
	}
	monthly := analytics.SumRevenue(ds, analytics.ByMonth)
	return []entity.ChartSpec{
		seriesChart("Revenue by Region", entity.ChartBar, analytics.SumRevenue(ds, analytics.ByRegion).Points(), width, height),
		seriesChart("Revenue by Category", entity.ChartBar, analytics.SumRevenue(ds, analytics.ByCategory).Points(), width, height),
		seriesChart("Monthly Revenue Trend", entity.ChartLine, monthly.Points(), width, height),
		seriesChart("Revenue Projection (+5%)", entity.ChartLine,
			analytics.ProjectRevenue(monthly, projectionMonths, projectionGrowth), width, height),
	}
}

// RenderCharts rasterizes every spec in order. The first failure aborts with ErrImageRender.
func RenderCharts(renderer repository.ChartRenderer, specs []entity.ChartSpec) ([]entity.ChartImage, error) {
	images := make([]entity.ChartImage, 0, len(specs))
	for _, spec := range specs {
		img, err := renderer.Render(spec)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", types.ErrImageRender, spec.Title, err)
		}
		images = append(images, entity.ChartImage{Title: spec.Title, Image: img})
	}
	return images, nil
}
