package usecase

import (
	"strings"

	"github.com/diillson/retail-report-go/internal/domain/entity"
)

// AllValues disables a Region or Category filter.
const AllValues = "All"

// Selection is the dashboard filter state.
type Selection struct {
	Region   string
	Category string
	// Search matches store location or product category, case-insensitively.
	Search string
}

func active(v string) bool {
	return v != "" && !strings.EqualFold(v, AllValues)
}

// Apply returns the records matching every active filter, in their original order.
func (s Selection) Apply(ds entity.Dataset) entity.Dataset {
	search := strings.ToLower(strings.TrimSpace(s.Search))
	if !active(s.Region) && !active(s.Category) && search == "" {
		return ds
	}

	return ds.Filter(func(r entity.Record) bool {
		if active(s.Region) && r.Region != s.Region {
			return false
		}
		if active(s.Category) && r.ProductCategory != s.Category {
			return false
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(r.StoreLocation), search) &&
			!strings.Contains(strings.ToLower(r.ProductCategory), search) {
			return false
		}
		return true
	})
}

// Filters lists the selection for display.
func (s Selection) Filters() []entity.Filter {
	value := func(v string) string {
		if !active(v) {
			return AllValues
		}
		return v
	}
	search := strings.TrimSpace(s.Search)
	if search == "" {
		search = "-"
	}
	return []entity.Filter{
		{Name: "Region", Value: value(s.Region)},
		{Name: "Category", Value: value(s.Category)},
		{Name: "Search", Value: search},
	}
}
