package entity

// InsightKind classifies a finding.
type InsightKind string

const (
	InsightTrend          InsightKind = "trend"
	InsightRanking        InsightKind = "ranking"
	InsightAnomaly        InsightKind = "anomaly"
	InsightRecommendation InsightKind = "recommendation"
)

// TrendDirection is the direction of the month-over-month revenue change.
type TrendDirection string

const (
	TrendUnknown   TrendDirection = ""
	TrendGrowing   TrendDirection = "growing"
	TrendDeclining TrendDirection = "declining"
	TrendFlat      TrendDirection = "flat"
)

// Insight is a single narrative finding and the facts that justify it.
type Insight struct {
	Kind    InsightKind        `json:"kind"`
	Subject string             `json:"subject,omitempty"`
	Text    string             `json:"text"`
	Facts   map[string]float64 `json:"facts,omitempty"`
}

// ExecutiveSummary is the synthesized paragraph over an insight list.
type ExecutiveSummary struct {
	Text          string         `json:"text"`
	BestRegion    string         `json:"best_region,omitempty"`
	WorstRegion   string         `json:"worst_region,omitempty"`
	BestCategory  string         `json:"best_category,omitempty"`
	WorstCategory string         `json:"worst_category,omitempty"`
	Trend         TrendDirection `json:"trend,omitempty"`
}

// InsightReport is the structured output of the narrator.
type InsightReport struct {
	Insights  []Insight        `json:"insights"`
	Summary   ExecutiveSummary `json:"summary"`
	Anomalies []AnomalyFlag    `json:"anomalies,omitempty"`
}
