package usecase

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"io"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/diillson/retail-report-go/internal/domain/entity"
	"github.com/diillson/retail-report-go/internal/shared/types"
)

type mockDatasetRepo struct{ mock.Mock }

func (m *mockDatasetRepo) Load(ctx context.Context, source string) (entity.Dataset, error) {
	args := m.Called(ctx, source)
	return args.Get(0).(entity.Dataset), args.Error(1)
}

type mockChartRenderer struct{ mock.Mock }

func (m *mockChartRenderer) Render(spec entity.ChartSpec) ([]byte, error) {
	args := m.Called(spec)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}

type mockExportRepo struct{ mock.Mock }

func (m *mockExportRepo) ExportReportToPDF(doc entity.RenderedDocument, filename, outputDir string) (string, error) {
	args := m.Called(doc, filename, outputDir)
	return args.String(0), args.Error(1)
}

func (m *mockExportRepo) ExportInsightsToJSON(report entity.InsightReport, kpis entity.KPISet, filename, outputDir string) (string, error) {
	args := m.Called(report, kpis, filename, outputDir)
	return args.String(0), args.Error(1)
}

func (m *mockExportRepo) ExportInsightsToCSV(report entity.InsightReport, filename, outputDir string) (string, error) {
	args := m.Called(report, filename, outputDir)
	return args.String(0), args.Error(1)
}

func (m *mockExportRepo) ExportInsightsToMarkdown(report entity.InsightReport, filename, outputDir string) (string, error) {
	args := m.Called(report, filename, outputDir)
	return args.String(0), args.Error(1)
}

func (m *mockExportRepo) ExportDatasetToCSV(ds entity.Dataset, filename, outputDir string) (string, error) {
	args := m.Called(ds, filename, outputDir)
	return args.String(0), args.Error(1)
}

type mockStore struct{ mock.Mock }

func (m *mockStore) Put(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	args := m.Called(ctx, key, contentType)
	return args.String(0), args.Error(1)
}

// quietConsole records log lines and discards everything else.
type quietConsole struct {
	errors   []string
	warnings []string
	success  []string
	trend    []types.MonthlyRevenue
}

func (c *quietConsole) Print(...interface{})                       {}
func (c *quietConsole) Printf(string, ...interface{})              {}
func (c *quietConsole) Println(...interface{})                     {}
func (c *quietConsole) LogInfo(string, ...interface{})             {}
func (c *quietConsole) LogWarning(format string, a ...interface{}) { c.warnings = append(c.warnings, format) }
func (c *quietConsole) LogError(format string, a ...interface{})   { c.errors = append(c.errors, format) }
func (c *quietConsole) LogSuccess(format string, a ...interface{}) { c.success = append(c.success, format) }
func (c *quietConsole) Status(string) types.StatusHandle           { return noopHandle{} }
func (c *quietConsole) CreateTable() types.TableInterface          { return &noopTable{} }
func (c *quietConsole) DisplayTrendBars(m []types.MonthlyRevenue)  { c.trend = m }
func (c *quietConsole) ProgressWithTotal(int) types.ProgressHandle { return noopHandle{} }

type noopHandle struct{}

func (noopHandle) Update(string) {}
func (noopHandle) Stop()         {}
func (noopHandle) Increment()    {}

type noopTable struct{ rows int }

func (t *noopTable) AddColumn(string, ...interface{}) {}
func (t *noopTable) AddRow(...interface{})            { t.rows++ }
func (t *noopTable) Render() string                   { return "" }

func record(t *testing.T, day, region, category, location string, revenue int64) entity.Record {
	t.Helper()
	d, err := time.Parse("2006-01-02", day)
	require.NoError(t, err)
	return entity.Record{
		Date:               d,
		Region:             region,
		ProductCategory:    category,
		Revenue:            decimal.NewFromInt(revenue),
		UnitsSold:          1,
		DiscountPercentage: entity.Float(5),
		StoreRating:        entity.Float(4),
		StoreID:            "S-" + region,
		StoreLocation:      location,
		Brand:              "Acme",
	}
}

func sampleDataset(t *testing.T) entity.Dataset {
	return entity.NewDataset([]entity.Record{
		record(t, "2024-01-03", "X", "Toys", "Lisbon", 500),
		record(t, "2024-01-20", "Y", "Books", "Porto", 500),
		record(t, "2024-02-02", "X", "Books", "Lisbon", 300),
		record(t, "2024-02-25", "Y", "Toys", "Faro", 900),
	})
}

func pngImage(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}
