package analytics

import (
	"math"
	"time"

	"github.com/diillson/retail-report-go/internal/domain/entity"
)

// DefaultSigma is the number of standard deviations below the mean that marks an anomaly.
const DefaultSigma = 2.0

// AnomalyDetector flags unusually low daily revenue totals.
type AnomalyDetector struct {
	Sigma float64
}

// NewAnomalyDetector returns a detector using DefaultSigma.
func NewAnomalyDetector() AnomalyDetector {
	return AnomalyDetector{Sigma: DefaultSigma}
}

// Detect sums revenue per calendar day and flags every day strictly below mean - sigma*stddev,
// using the population standard deviation. Fewer than two distinct days yields no flags.
// Flags are returned in ascending date order.
func (d AnomalyDetector) Detect(ds entity.Dataset) []entity.AnomalyFlag {
	daily := SumRevenue(ds, ByDay)
	if daily.Len() < 2 {
		return nil
	}

	points := daily.Points()
	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = p.Value.InexactFloat64()
	}

	mean, std := populationStats(values)
	if std == 0 {
		return nil
	}

	sigma := d.Sigma
	if sigma <= 0 {
		sigma = DefaultSigma
	}
	threshold := mean - sigma*std

	var flags []entity.AnomalyFlag
	for i, p := range points {
		if values[i] >= threshold {
			continue
		}
		day, err := time.Parse(dayLayout, p.Key)
		if err != nil {
			continue
		}
		flags = append(flags, entity.AnomalyFlag{
			Date:      day,
			Observed:  p.Value,
			Mean:      mean,
			StdDev:    std,
			Deviation: values[i] - mean,
			ZScore:    (values[i] - mean) / std,
		})
	}
	return flags
}

// MostRecent returns the flag with the latest date.
func MostRecent(flags []entity.AnomalyFlag) (entity.AnomalyFlag, bool) {
	if len(flags) == 0 {
		return entity.AnomalyFlag{}, false
	}
	latest := flags[0]
	for _, f := range flags[1:] {
		if f.Date.After(latest.Date) {
			latest = f
		}
	}
	return latest, true
}

func populationStats(values []float64) (mean, std float64) {
	if len(values) == 0 {
		return 0, 0
	}
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	var sumSquares float64
	for _, v := range values {
		diff := v - mean
		sumSquares += diff * diff
	}
	return mean, math.Sqrt(sumSquares / float64(len(values)))
}
