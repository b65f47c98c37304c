package analytics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/diillson/retail-report-go/internal/domain/entity"
)

func rec(t *testing.T, day, region, category string, revenue float64) entity.Record {
	t.Helper()
	d, err := time.Parse("2006-01-02", day)
	if err != nil {
		t.Fatalf("bad date %q: %v", day, err)
	}
	return entity.Record{
		Date:               d,
		Region:             region,
		ProductCategory:    category,
		Revenue:            decimal.NewFromFloat(revenue),
		UnitsSold:          2,
		DiscountPercentage: entity.Float(10),
		StoreRating:        entity.Float(4),
		StoreID:            "S-" + region,
		StoreLocation:      region + " City",
		Brand:              "Acme",
	}
}

// twoMonthDataset: January 1000 (X 500, Y 500), February 1200 (X 300, Y 900).
func twoMonthDataset(t *testing.T) entity.Dataset {
	return entity.NewDataset([]entity.Record{
		rec(t, "2024-01-03", "X", "Toys", 500),
		rec(t, "2024-01-20", "Y", "Books", 500),
		rec(t, "2024-02-02", "X", "Books", 300),
		rec(t, "2024-02-25", "Y", "Toys", 900),
	})
}

// dropDataset has 20 daily totals of 1000 except two drops of 100 on the 3rd and 15th.
func dropDataset(t *testing.T) entity.Dataset {
	var records []entity.Record
	for day := 1; day <= 20; day++ {
		revenue := 1000.0
		if day == 3 || day == 15 {
			revenue = 100
		}
		date := time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
		records = append(records, rec(t, date, "North", "Toys", revenue))
	}
	return entity.NewDataset(records)
}
