package entity

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// AggregateSeries maps a grouping key (region, category, year-month, day) to a metric value.
type AggregateSeries struct {
	Dimension string                     `json:"dimension"`
	Metric    string                     `json:"metric"`
	Values    map[string]decimal.Decimal `json:"values"`
}

// Len returns the number of groups.
func (s AggregateSeries) Len() int {
	return len(s.Values)
}

// Keys returns the group keys in ascending order.
func (s AggregateSeries) Keys() []string {
	keys := make([]string, 0, len(s.Values))
	for k := range s.Values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the value of a group and whether it exists.
func (s AggregateSeries) Get(key string) (decimal.Decimal, bool) {
	v, ok := s.Values[key]
	return v, ok
}

// Total sums every group value in key order.
func (s AggregateSeries) Total() decimal.Decimal {
	total := decimal.Zero
	for _, k := range s.Keys() {
		total = total.Add(s.Values[k])
	}
	return total
}

// Point is one key/value pair of an ordered series.
type Point struct {
	Key   string          `json:"key"`
	Value decimal.Decimal `json:"value"`
}

// Points returns the series as key-ordered pairs.
func (s AggregateSeries) Points() []Point {
	keys := s.Keys()
	points := make([]Point, 0, len(keys))
	for _, k := range keys {
		points = append(points, Point{Key: k, Value: s.Values[k]})
	}
	return points
}

// AnomalyFlag marks a day whose revenue fell below mean - k*stddev of the daily series.
type AnomalyFlag struct {
	Date      time.Time       `json:"date"`
	Observed  decimal.Decimal `json:"observed"`
	Mean      float64         `json:"mean"`
	StdDev    float64         `json:"std_dev"`
	Deviation float64         `json:"deviation"`
	ZScore    float64         `json:"z_score"`
}
