package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Record represents a single retail transaction row.
// DiscountPercentage (0-100) and StoreRating (0-5) are nil when the cell was blank.
type Record struct {
	Date               time.Time       `json:"date"`
	Region             string          `json:"region"`
	ProductCategory    string          `json:"product_category"`
	Revenue            decimal.Decimal `json:"revenue"`
	UnitsSold          int64           `json:"units_sold"`
	DiscountPercentage *float64        `json:"discount_percentage"`
	StoreRating        *float64        `json:"store_rating"`
	StoreID            string          `json:"store_id"`
	StoreLocation      string          `json:"store_location"`
	Brand              string          `json:"brand"`
}

// Float returns a pointer to v, for the optional numeric fields of a Record.
func Float(v float64) *float64 {
	return &v
}

// Dataset is an ordered, read-only collection of records.
type Dataset struct {
	Records []Record `json:"records"`
}

// NewDataset wraps records into a Dataset.
func NewDataset(records []Record) Dataset {
	return Dataset{Records: records}
}

// Len returns the number of records.
func (d Dataset) Len() int {
	return len(d.Records)
}

// IsEmpty reports whether the dataset has no records.
func (d Dataset) IsEmpty() bool {
	return len(d.Records) == 0
}

// Filter returns a new dataset with the records matching keep, preserving order.
func (d Dataset) Filter(keep func(Record) bool) Dataset {
	out := make([]Record, 0, len(d.Records))
	for _, r := range d.Records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return Dataset{Records: out}
}

// Head returns the first n records (all of them when n exceeds the length).
func (d Dataset) Head(n int) []Record {
	if n < 0 {
		n = 0
	}
	if n > len(d.Records) {
		n = len(d.Records)
	}
	return d.Records[:n]
}

// DateRange returns the earliest and latest record dates, or nil for an empty dataset.
func (d Dataset) DateRange() *DateRange {
	if len(d.Records) == 0 {
		return nil
	}
	start, end := d.Records[0].Date, d.Records[0].Date
	for _, r := range d.Records[1:] {
		if r.Date.Before(start) {
			start = r.Date
		}
		if r.Date.After(end) {
			end = r.Date
		}
	}
	return &DateRange{Start: start, End: end}
}

// DateRange is a closed calendar interval used for display.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Filter is a display-only filter name and the value applied to it.
type Filter struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}
