package entity

import "github.com/shopspring/decimal"

// Measure is a numeric KPI that may be unavailable (e.g. an average over zero rows).
type Measure struct {
	Value float64 `json:"value"`
	Valid bool    `json:"valid"`
}

// KPISet holds the headline figures of a (filtered) dataset.
type KPISet struct {
	TotalRecords      int             `json:"total_records"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	TotalUnits        int64           `json:"total_units"`
	AverageDiscount   Measure         `json:"average_discount"`
	AverageRating     Measure         `json:"average_rating"`
	AverageOrderValue Measure         `json:"average_order_value"`
	TopRegion         string          `json:"top_region,omitempty"`
}
