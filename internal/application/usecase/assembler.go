package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/diillson/retail-report-go/internal/application/analytics"
	"github.com/diillson/retail-report-go/internal/application/layout"
	"github.com/diillson/retail-report-go/internal/domain/entity"
	"github.com/diillson/retail-report-go/internal/domain/repository"
	"github.com/diillson/retail-report-go/internal/shared/types"
)

// DefaultPreviewRows is the number of dataset rows shown in the data preview grid.
const DefaultPreviewRows = 15

const notAvailable = "N/A"

const emptySummary = "No records match the selected filters, so there is no business performance to summarize."

// PreviewColumns are the data preview grid columns; fractions add up to one.
var PreviewColumns = []entity.GridColumn{
	{Header: "Date", Fraction: .10},
	{Header: "Store ID", Fraction: .10},
	{Header: "Store Location", Fraction: .16},
	{Header: "Product Category", Fraction: .18},
	{Header: "Brand", Fraction: .12},
	{Header: "Units Sold", Fraction: .08, Align: "R"},
	{Header: "Revenue", Fraction: .14, Align: "R"},
	{Header: "Region", Fraction: .12},
}

// RendererFactory returns a fresh DocumentRenderer for each build.
type RendererFactory func() repository.DocumentRenderer

// AssemblerConfig holds everything a report build needs besides its inputs.
type AssemblerConfig struct {
	Layout      layout.Config
	PreviewRows int
	Logger      zerolog.Logger
	Now         func() time.Time
}

// DefaultAssemblerConfig returns the A4 report configuration.
func DefaultAssemblerConfig() AssemblerConfig {
	return AssemblerConfig{
		Layout:      layout.DefaultConfig(),
		PreviewRows: DefaultPreviewRows,
		Logger:      zerolog.Nop(),
		Now:         time.Now,
	}
}

// ReportRequest is the input of one report build.
type ReportRequest struct {
	Dataset    entity.Dataset
	Filters    []entity.Filter
	PreparedBy string
	Charts     []entity.ChartImage
	DateRange  *entity.DateRange
}

// ContentPlan is the ordered block sequence of a report plus the findings it was built from.
type ContentPlan struct {
	Blocks   []entity.ContentBlock
	Insights entity.InsightReport
	KPIs     entity.KPISet
}

// ReportAssembler turns a dataset and chart images into a laid-out document.
// It keeps no state between builds and may be shared by concurrent callers.
type ReportAssembler struct {
	cfg         AssemblerConfig
	newRenderer RendererFactory
	narrator    *analytics.Narrator
	printer     *message.Printer
}

// NewReportAssembler creates an assembler.
func NewReportAssembler(cfg AssemblerConfig, newRenderer RendererFactory, narrator *analytics.Narrator) *ReportAssembler {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.PreviewRows < 0 {
		cfg.PreviewRows = 0
	}
	if narrator == nil {
		narrator = analytics.NewNarrator(analytics.NewAnomalyDetector())
	}
	return &ReportAssembler{
		cfg:         cfg,
		newRenderer: newRenderer,
		narrator:    narrator,
		printer:     message.NewPrinter(language.English),
	}
}

// Narrate runs the narrator, treating an empty dataset as a valid view with no findings.
func (a *ReportAssembler) Narrate(ds entity.Dataset) (entity.InsightReport, error) {
	report, err := a.narrator.Narrate(ds)
	if err != nil {
		if ds.IsEmpty() && errors.Is(err, types.ErrInsufficientData) {
			return entity.InsightReport{Summary: entity.ExecutiveSummary{Text: emptySummary}}, nil
		}
		return entity.InsightReport{}, fmt.Errorf("error generating insights: %w", err)
	}
	return report, nil
}

// Assemble builds the content plan and lays it out on a fresh renderer.
func (a *ReportAssembler) Assemble(ctx context.Context, req ReportRequest) (entity.RenderedDocument, ContentPlan, error) {
	if err := ctx.Err(); err != nil {
		return entity.RenderedDocument{}, ContentPlan{}, err
	}
	start := time.Now()

	plan, err := a.BuildContentPlan(req)
	if err != nil {
		return entity.RenderedDocument{}, ContentPlan{}, err
	}

	layoutCfg := a.cfg.Layout
	layoutCfg.GeneratedAt = a.cfg.Now()
	layoutCfg.Logger = a.cfg.Logger

	doc, err := layout.Render(a.newRenderer(), layoutCfg, plan.Blocks)
	if err != nil {
		return entity.RenderedDocument{}, ContentPlan{}, fmt.Errorf("error laying out report: %w", err)
	}

	a.cfg.Logger.Debug().
		Int("records", req.Dataset.Len()).
		Int("blocks", len(plan.Blocks)).
		Int("charts", len(req.Charts)).
		Int("pages", doc.PageCount).
		Dur("duration", time.Since(start)).
		Msg("report assembled")

	return doc, plan, nil
}

// BuildContentPlan computes KPIs and findings and orders them into content blocks.
func (a *ReportAssembler) BuildContentPlan(req ReportRequest) (ContentPlan, error) {
	ds := req.Dataset
	kpis := analytics.ComputeKPIs(ds)
	report, err := a.Narrate(ds)
	if err != nil {
		return ContentPlan{}, err
	}

	var blocks []entity.ContentBlock

	blocks = append(blocks,
		entity.SectionTitle{Text: "Report Filters"},
		entity.KeyValueTable{Rows: a.filterRows(req)},
		entity.SectionTitle{Text: "Executive Summary"},
		entity.NarrativeText{Text: report.Summary.Text, Highlight: true},
		entity.SectionTitle{Text: "Business Overview"},
		entity.KeyValueTable{Rows: a.kpiRows(kpis)},
		entity.SectionTitle{Text: "Key Insights"},
	)

	if len(report.Insights) == 0 {
		blocks = append(blocks, entity.NarrativeText{Text: "No insights are available for the selected filters."})
	}
	for i, in := range report.Insights {
		blocks = append(blocks, entity.NarrativeText{Text: fmt.Sprintf("%d. %s", i+1, in.Text)})
	}

	if len(req.Charts) > 0 {
		blocks = append(blocks, entity.SectionTitle{Placement: entity.Placement{NewPage: true}, Text: "Visual Insights"})
		for _, chart := range req.Charts {
			blocks = append(blocks, entity.ImageBlock{Label: chart.Title, Image: chart.Image})
		}
	}

	preview := ds.Head(a.cfg.PreviewRows)
	blocks = append(blocks,
		entity.SectionTitle{
			Placement: entity.Placement{Orientation: entity.OrientationLandscape},
			Text:      fmt.Sprintf("Data Preview (first %d rows)", len(preview)),
		},
		entity.DataGrid{Columns: PreviewColumns, Rows: a.previewRows(preview)},
		entity.NarrativeText{Text: "Prepared by: " + preparedBy(req.PreparedBy)},
	)

	return ContentPlan{Blocks: blocks, Insights: report, KPIs: kpis}, nil
}

func preparedBy(name string) string {
	if name == "" {
		return "Retail Analytics Team"
	}
	return name
}

func (a *ReportAssembler) filterRows(req ReportRequest) []entity.KeyValue {
	rows := make([]entity.KeyValue, 0, len(req.Filters)+1)
	for _, f := range req.Filters {
		value := f.Value
		if value == "" {
			value = "All"
		}
		rows = append(rows, entity.KeyValue{Key: f.Name, Value: value})
	}

	dateRange := notAvailable
	if req.DateRange != nil {
		dateRange = fmt.Sprintf("%s to %s", req.DateRange.Start.Format("2006-01-02"), req.DateRange.End.Format("2006-01-02"))
	}
	return append(rows, entity.KeyValue{Key: "Date Range", Value: dateRange})
}

func (a *ReportAssembler) measure(m entity.Measure, format string) string {
	if !m.Valid {
		return notAvailable
	}
	return a.printer.Sprintf(format, m.Value)
}

func (a *ReportAssembler) kpiRows(k entity.KPISet) []entity.KeyValue {
	topRegion := k.TopRegion
	if topRegion == "" {
		topRegion = notAvailable
	}
	return []entity.KeyValue{
		{Key: "Total Revenue", Value: a.printer.Sprintf("$%.2f", k.TotalRevenue.InexactFloat64())},
		{Key: "Units Sold", Value: a.printer.Sprintf("%d", k.TotalUnits)},
		{Key: "Average Discount", Value: a.measure(k.AverageDiscount, "%.2f%%")},
		{Key: "Average Store Rating", Value: a.measure(k.AverageRating, "%.2f")},
		{Key: "Average Order Value", Value: a.measure(k.AverageOrderValue, "$%.2f")},
		{Key: "Total Records", Value: a.printer.Sprintf("%d", k.TotalRecords)},
		{Key: "Top Region", Value: topRegion},
	}
}

func (a *ReportAssembler) previewRows(records []entity.Record) [][]string {
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = []string{
			r.Date.Format("2006-01-02"),
			r.StoreID,
			r.StoreLocation,
			r.ProductCategory,
			r.Brand,
			strconv.FormatInt(r.UnitsSold, 10),
			a.printer.Sprintf("%.2f", r.Revenue.InexactFloat64()),
			r.Region,
		}
	}
	return rows
}
