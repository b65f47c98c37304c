package dataset

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/diillson/retail-report-go/internal/shared/types"
)

const salesCSV = `Date,Store_ID,Store_Location,Region,Product_Category,Brand,Units_Sold,Revenue,Discount_Percentage,Store_Rating
2024-01-05,S001,Lisbon,West,Electronics,Acme,3,"1,250.50",10,4.5
2024-02-11,S002,Porto,North,Toys,Zeta,1,99.99,0,3.8

2024-02-12,S003,Faro,South,Books,Acme,2,40,5%,4
`

func TestReadCSV(t *testing.T) {
	ds, err := ReadCSV(context.Background(), strings.NewReader(salesCSV))
	require.NoError(t, err)

	require.Equal(t, 3, ds.Len())
	first := ds.Records[0]
	assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), first.Date)
	assert.Equal(t, "West", first.Region)
	assert.Equal(t, "Electronics", first.ProductCategory)
	assert.Equal(t, "1250.5", first.Revenue.String())
	assert.Equal(t, int64(3), first.UnitsSold)
	require.NotNil(t, first.StoreRating)
	assert.InDelta(t, 4.5, *first.StoreRating, 1e-9)
	assert.Equal(t, "Lisbon", first.StoreLocation)
	require.NotNil(t, ds.Records[2].DiscountPercentage)
	assert.InDelta(t, 5.0, *ds.Records[2].DiscountPercentage, 1e-9)
}

func TestReadCSV_AbsentColumnsAreMissing(t *testing.T) {
	ds, err := ReadCSV(context.Background(), strings.NewReader("Date,Region,Product_Category,Revenue\n01/31/2024,East,Toys,10\n"))
	require.NoError(t, err)

	require.Equal(t, 1, ds.Len())
	assert.Equal(t, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), ds.Records[0].Date)
	assert.Zero(t, ds.Records[0].UnitsSold)
	assert.Nil(t, ds.Records[0].DiscountPercentage)
	assert.Nil(t, ds.Records[0].StoreRating)
	assert.Empty(t, ds.Records[0].Brand)
}

func TestReadCSV_BlankCellsAreMissingNotZero(t *testing.T) {
	const input = `Date,Region,Product_Category,Revenue,Discount_Percentage,Store_Rating
2024-01-01,East,Toys,5,10,4
2024-01-02,East,Toys,5,,
`
	ds, err := ReadCSV(context.Background(), strings.NewReader(input))
	require.NoError(t, err)

	require.Equal(t, 2, ds.Len())
	require.NotNil(t, ds.Records[0].DiscountPercentage)
	assert.InDelta(t, 10.0, *ds.Records[0].DiscountPercentage, 1e-9)
	assert.Nil(t, ds.Records[1].DiscountPercentage)
	assert.Nil(t, ds.Records[1].StoreRating)
}

func TestReadCSV_RejectsNonFiniteAndOutOfRange(t *testing.T) {
	const header = "Date,Region,Product_Category,Revenue,Units_Sold,Discount_Percentage,Store_Rating\n"
	const valid = "2024-01-01,East,Toys,5,1,10,4\n"
	cases := []struct {
		row  string
		want string
	}{
		{"2024-01-02,East,Toys,5,1,NaN,4\n", `row 3: invalid Discount_Percentage: "NaN" is not a finite number`},
		{"2024-01-02,East,Toys,5,1,10,Inf\n", `row 3: invalid Store_Rating: "Inf" is not a finite number`},
		{"2024-01-02,East,Toys,5,1,250,4\n", "row 3: invalid Discount_Percentage: 250 is outside [0, 100]"},
		{"2024-01-02,East,Toys,5,1,10,9\n", "row 3: invalid Store_Rating: 9 is outside [0, 5]"},
		{"2024-01-02,East,Toys,5,1,-1,4\n", "row 3: invalid Discount_Percentage: -1 is outside [0, 100]"},
		{"2024-01-02,East,Toys,5,-2,10,4\n", `row 3: invalid Units_Sold: "-2" is negative`},
		{"2024-01-02,East,Toys,5,NaN,10,4\n", `row 3: invalid Units_Sold: "NaN" is not an integer`},
		{"2024-01-02,East,Toys,NaN,1,10,4\n", "row 3: invalid Revenue"},
	}
	for _, tc := range cases {
		_, err := ReadCSV(context.Background(), strings.NewReader(header+valid+tc.row))
		assert.ErrorContains(t, err, tc.want, tc.row)
	}
}

func TestReadCSV_BoundaryValuesAccepted(t *testing.T) {
	const input = `Date,Region,Product_Category,Revenue,Discount_Percentage,Store_Rating
2024-01-01,East,Toys,5,0,0
2024-01-02,East,Toys,5,100%,5
`
	ds, err := ReadCSV(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, 2, ds.Len())
	assert.InDelta(t, 100.0, *ds.Records[1].DiscountPercentage, 1e-9)
	assert.InDelta(t, 5.0, *ds.Records[1].StoreRating, 1e-9)
}

func TestReadCSV_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := ReadCSV(ctx, strings.NewReader("Date,Region,Revenue\n2024-01-01,East,5\n"))
	assert.ErrorContains(t, err, `missing required column "Product_Category"`)

	_, err = ReadCSV(ctx, strings.NewReader("Date,Region,Product_Category,Revenue\n2024-01-01,East,Toys,5\n2024-01-02,East,Toys,abc\n"))
	assert.ErrorContains(t, err, "row 3: invalid Revenue")

	_, err = ReadCSV(ctx, strings.NewReader("Date,Region,Product_Category,Revenue\nyesterday,East,Toys,5\n"))
	assert.ErrorContains(t, err, "row 2: invalid Date")

	_, err = ReadCSV(ctx, strings.NewReader("Date,Region,Product_Category,Revenue\n2024-01-01,East,Toys,-5\n"))
	assert.ErrorContains(t, err, "negative Revenue")

	_, err = ReadCSV(ctx, strings.NewReader(""))
	assert.ErrorContains(t, err, "missing header row")
}

func TestReadCSV_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ReadCSV(ctx, strings.NewReader(salesCSV))

	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoad_CSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales.csv")
	require.NoError(t, os.WriteFile(path, []byte(salesCSV), 0o600))

	ds, err := NewDatasetRepository().Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, 3, ds.Len())
}

func TestLoad_XLSXFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{
		"Date", "Region", "Product_Category", "Revenue", "Units_Sold", "Store_ID",
	}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{
		time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), "North", "Toys", 120.25, 4, "S9",
	}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]interface{}{
		"2024-03-16", "South", "Books", "80", 1, "S8",
	}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	ds, err := NewDatasetRepository().Load(context.Background(), path)
	require.NoError(t, err)

	require.Equal(t, 2, ds.Len())
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), ds.Records[0].Date)
	assert.Equal(t, "120.25", ds.Records[0].Revenue.String())
	assert.Equal(t, int64(4), ds.Records[0].UnitsSold)
	assert.Equal(t, "S9", ds.Records[0].StoreID)
	assert.Equal(t, time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC), ds.Records[1].Date)
}

func TestLoad_Errors(t *testing.T) {
	repo := NewDatasetRepository()

	_, err := repo.Load(context.Background(), "")
	assert.ErrorIs(t, err, types.ErrNoDataSource)

	_, err = repo.Load(context.Background(), "sales.parquet")
	assert.ErrorIs(t, err, types.ErrUnsupportedFormat)

	_, err = repo.Load(context.Background(), filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}
