package analytics

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/diillson/retail-report-go/internal/domain/entity"
	"github.com/diillson/retail-report-go/internal/shared/types"
)

var hundred = decimal.NewFromInt(100)

// Trend is the month-over-month revenue comparison of the two latest months.
type Trend struct {
	PreviousMonth string
	LatestMonth   string
	Previous      decimal.Decimal
	Latest        decimal.Decimal
	PercentChange decimal.Decimal
	Direction     entity.TrendDirection
}

// ComputeTrend compares the revenue of the last two months present in the dataset.
// ok is false when fewer than two months exist. A zero previous month fails with ErrDivisionUndefined.
func ComputeTrend(ds entity.Dataset) (trend Trend, ok bool, err error) {
	points := SumRevenue(ds, ByMonth).Points()
	if len(points) < 2 {
		return Trend{}, false, nil
	}

	prev, last := points[len(points)-2], points[len(points)-1]
	change, err := PercentChange(prev.Value, last.Value)
	if err != nil {
		return Trend{}, false, fmt.Errorf("trend %s -> %s: %w", prev.Key, last.Key, err)
	}

	trend = Trend{
		PreviousMonth: prev.Key,
		LatestMonth:   last.Key,
		Previous:      prev.Value,
		Latest:        last.Value,
		PercentChange: change,
		Direction:     entity.TrendFlat,
	}
	switch {
	case change.IsPositive():
		trend.Direction = entity.TrendGrowing
	case change.IsNegative():
		trend.Direction = entity.TrendDeclining
	}
	return trend, true, nil
}

// PercentChange returns (latest - previous) / previous * 100.
func PercentChange(previous, latest decimal.Decimal) (decimal.Decimal, error) {
	if previous.IsZero() {
		return decimal.Zero, types.ErrDivisionUndefined
	}
	return latest.Sub(previous).Div(previous).Mul(hundred), nil
}

// Narrator turns aggregates and anomalies into ordered findings and an executive summary.
// It holds no state between calls.
type Narrator struct {
	detector AnomalyDetector
}

// NewNarrator creates a narrator with the given anomaly detector.
func NewNarrator(detector AnomalyDetector) *Narrator {
	return &Narrator{detector: detector}
}

// Narrate produces, in order: trend, best/worst region, best/worst category, the most recent
// anomaly, a recommendation, and the executive summary.
//
// Only the most recent anomaly flag is narrated; the complete flag set is returned in
// InsightReport.Anomalies.
func (n *Narrator) Narrate(ds entity.Dataset) (entity.InsightReport, error) {
	var insights []entity.Insight

	trend, hasTrend, err := ComputeTrend(ds)
	if err != nil {
		return entity.InsightReport{}, err
	}
	if hasTrend {
		insights = append(insights, trendInsight(trend))
	}

	regions, err := Rank(SumRevenue(ds, ByRegion))
	if err != nil {
		return entity.InsightReport{}, fmt.Errorf("region ranking: %w", err)
	}
	insights = append(insights,
		rankingInsight(regions.Best, regions.BestValue, "Best performing region: %s."),
		rankingInsight(regions.Worst, regions.WorstValue, "Lowest performing region: %s."),
	)

	categories, err := Rank(SumRevenue(ds, ByCategory))
	if err != nil {
		return entity.InsightReport{}, fmt.Errorf("category ranking: %w", err)
	}
	insights = append(insights,
		rankingInsight(categories.Best, categories.BestValue, "Top category: %s."),
		rankingInsight(categories.Worst, categories.WorstValue, "Weakest category: %s."),
	)

	flags := n.detector.Detect(ds)
	if latest, ok := MostRecent(flags); ok {
		insights = append(insights, anomalyInsight(latest))
	}

	insights = append(insights, entity.Insight{
		Kind:    entity.InsightRecommendation,
		Subject: regions.Worst + " / " + categories.Worst,
		Text: fmt.Sprintf("Recommendation: Focus marketing campaigns on %s and introduce offers in %s category.",
			regions.Worst, categories.Worst),
	})

	direction := entity.TrendUnknown
	if hasTrend {
		direction = trend.Direction
	}

	summary := entity.ExecutiveSummary{
		BestRegion:    regions.Best,
		WorstRegion:   regions.Worst,
		BestCategory:  categories.Best,
		WorstCategory: categories.Worst,
		Trend:         direction,
	}
	summary.Text = summaryText(summary)

	return entity.InsightReport{
		Insights:  insights,
		Summary:   summary,
		Anomalies: flags,
	}, nil
}

func trendInsight(t Trend) entity.Insight {
	var text string
	switch t.Direction {
	case entity.TrendGrowing:
		text = fmt.Sprintf("Revenue has increased by %s%% compared to last month.", t.PercentChange.Abs().StringFixed(2))
	case entity.TrendDeclining:
		text = fmt.Sprintf("Revenue has decreased by %s%% compared to last month.", t.PercentChange.Abs().StringFixed(2))
	default:
		text = "Revenue has remained flat (0.00%) compared to last month."
	}
	return entity.Insight{
		Kind:    entity.InsightTrend,
		Subject: t.LatestMonth,
		Text:    text,
		Facts: map[string]float64{
			"previous":       t.Previous.InexactFloat64(),
			"latest":         t.Latest.InexactFloat64(),
			"percent_change": t.PercentChange.InexactFloat64(),
		},
	}
}

func rankingInsight(subject string, value decimal.Decimal, format string) entity.Insight {
	return entity.Insight{
		Kind:    entity.InsightRanking,
		Subject: subject,
		Text:    fmt.Sprintf(format, subject),
		Facts:   map[string]float64{"revenue": value.InexactFloat64()},
	}
}

func anomalyInsight(f entity.AnomalyFlag) entity.Insight {
	day := f.Date.Format(dayLayout)
	return entity.Insight{
		Kind:    entity.InsightAnomaly,
		Subject: day,
		Text:    fmt.Sprintf("Anomaly detected: Unusual revenue drop on %s.", day),
		Facts: map[string]float64{
			"observed":  f.Observed.InexactFloat64(),
			"mean":      f.Mean,
			"deviation": f.Deviation,
			"z_score":   f.ZScore,
		},
	}
}

func summaryText(s entity.ExecutiveSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Overall business performance shows that %s is driving most revenue while %s is underperforming. ",
		s.BestRegion, s.WorstRegion)
	fmt.Fprintf(&b, "The strongest product category is %s, whereas %s needs strategic improvement. ",
		s.BestCategory, s.WorstCategory)

	switch s.Trend {
	case entity.TrendGrowing, entity.TrendDeclining:
		fmt.Fprintf(&b, "Recent trends indicate revenue is %s, requiring data-driven decision making.", s.Trend)
	case entity.TrendFlat:
		b.WriteString("Revenue has held steady over the last two months, requiring data-driven decision making.")
	default:
		b.WriteString("There is not enough monthly history yet to establish a revenue trend.")
	}
	return b.String()
}
