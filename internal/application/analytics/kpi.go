package analytics

import (
	"math"

	"github.com/diillson/retail-report-go/internal/domain/entity"
)

// ComputeKPIs reduces the dataset to its headline figures.
// Averages skip missing values and are marked invalid when nothing is left to average
// or the result is not finite, instead of producing NaN.
func ComputeKPIs(ds entity.Dataset) entity.KPISet {
	kpis := entity.KPISet{
		TotalRecords: ds.Len(),
		TotalRevenue: TotalRevenue(ds),
	}
	if ds.IsEmpty() {
		return kpis
	}

	var discount, rating average
	for _, r := range ds.Records {
		kpis.TotalUnits += r.UnitsSold
		discount.add(r.DiscountPercentage)
		rating.add(r.StoreRating)
	}

	kpis.AverageDiscount = discount.measure()
	kpis.AverageRating = rating.measure()
	kpis.AverageOrderValue = finite(kpis.TotalRevenue.InexactFloat64() / float64(ds.Len()))

	if rk, err := Rank(SumRevenue(ds, ByRegion)); err == nil {
		kpis.TopRegion = rk.Best
	}
	return kpis
}

// average accumulates the present, finite values of an optional column.
type average struct {
	sum float64
	n   int
}

func (m *average) add(v *float64) {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return
	}
	m.sum += *v
	m.n++
}

func (m average) measure() entity.Measure {
	if m.n == 0 {
		return entity.Measure{}
	}
	return finite(m.sum / float64(m.n))
}

func finite(v float64) entity.Measure {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return entity.Measure{}
	}
	return entity.Measure{Value: v, Valid: true}
}
