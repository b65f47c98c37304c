// Package analytics derives statistical findings from a retail dataset.
package analytics

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/diillson/retail-report-go/internal/domain/entity"
	"github.com/diillson/retail-report-go/internal/shared/types"
)

// Dimension is a grouping attribute of a record.
type Dimension string

const (
	ByRegion   Dimension = "region"
	ByCategory Dimension = "category"
	ByMonth    Dimension = "month"
	ByDay      Dimension = "day"
	ByStore    Dimension = "store"
	ByBrand    Dimension = "brand"
)

// Metric is a numeric attribute of a record.
type Metric string

const (
	Revenue  Metric = "revenue"
	Units    Metric = "units"
	Discount Metric = "discount"
	Rating   Metric = "rating"
)

// Reducer combines the metric values of a group.
type Reducer string

const (
	Sum  Reducer = "sum"
	Mean Reducer = "mean"
)

const (
	monthLayout = "2006-01"
	dayLayout   = "2006-01-02"
)

// GroupKey returns the key of a record for a dimension.
// Month keys are normalized to year-month so every day of a month lands in one bucket.
func GroupKey(r entity.Record, dim Dimension) string {
	switch dim {
	case ByRegion:
		return r.Region
	case ByCategory:
		return r.ProductCategory
	case ByMonth:
		return r.Date.Format(monthLayout)
	case ByDay:
		return r.Date.Format(dayLayout)
	case ByStore:
		return r.StoreID
	case ByBrand:
		return r.Brand
	default:
		return ""
	}
}

// metricValue reports false when the record has no value for m.
func metricValue(r entity.Record, m Metric) (decimal.Decimal, bool) {
	switch m {
	case Units:
		return decimal.NewFromInt(r.UnitsSold), true
	case Discount:
		return optionalValue(r.DiscountPercentage)
	case Rating:
		return optionalValue(r.StoreRating)
	default:
		return r.Revenue, true
	}
}

func optionalValue(v *float64) (decimal.Decimal, bool) {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return decimal.Zero, false
	}
	return decimal.NewFromFloat(*v), true
}

// Aggregate groups the dataset by dim and reduces metric per group.
// Records are visited in dataset order and values are summed with exact decimal arithmetic,
// so repeated calls over the same dataset are identical. An empty dataset yields an empty series.
// Records missing the metric are skipped; a group with no values at all is left out.
func Aggregate(ds entity.Dataset, dim Dimension, metric Metric, reducer Reducer) entity.AggregateSeries {
	series := entity.AggregateSeries{
		Dimension: string(dim),
		Metric:    fmt.Sprintf("%s_%s", reducer, metric),
		Values:    make(map[string]decimal.Decimal),
	}
	counts := make(map[string]int64)

	for _, r := range ds.Records {
		v, ok := metricValue(r, metric)
		if !ok {
			continue
		}
		key := GroupKey(r, dim)
		series.Values[key] = series.Values[key].Add(v)
		counts[key]++
	}

	if reducer == Mean {
		for key, total := range series.Values {
			series.Values[key] = total.Div(decimal.NewFromInt(counts[key]))
		}
	}

	return series
}

// SumRevenue is shorthand for the revenue sum per group.
func SumRevenue(ds entity.Dataset, dim Dimension) entity.AggregateSeries {
	return Aggregate(ds, dim, Revenue, Sum)
}

// TotalRevenue sums the revenue of every record in dataset order.
func TotalRevenue(ds entity.Dataset) decimal.Decimal {
	total := decimal.Zero
	for _, r := range ds.Records {
		total = total.Add(r.Revenue)
	}
	return total
}

// Ranking is the best and worst group of a series.
type Ranking struct {
	Best       string
	BestValue  decimal.Decimal
	Worst      string
	WorstValue decimal.Decimal
}

// Rank returns the groups with the highest and lowest values.
// Keys are visited in ascending order and the first extreme wins, so ties resolve to the smallest key.
func Rank(series entity.AggregateSeries) (Ranking, error) {
	keys := series.Keys()
	if len(keys) == 0 {
		return Ranking{}, fmt.Errorf("%w: no %s groups to rank", types.ErrInsufficientData, series.Dimension)
	}

	rk := Ranking{
		Best: keys[0], BestValue: series.Values[keys[0]],
		Worst: keys[0], WorstValue: series.Values[keys[0]],
	}
	for _, k := range keys[1:] {
		v := series.Values[k]
		if v.GreaterThan(rk.BestValue) {
			rk.Best, rk.BestValue = k, v
		}
		if v.LessThan(rk.WorstValue) {
			rk.Worst, rk.WorstValue = k, v
		}
	}
	return rk, nil
}
