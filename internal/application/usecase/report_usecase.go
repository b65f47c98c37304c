package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"

	"github.com/diillson/retail-report-go/internal/application/analytics"
	"github.com/diillson/retail-report-go/internal/domain/entity"
	"github.com/diillson/retail-report-go/internal/domain/repository"
	"github.com/diillson/retail-report-go/internal/shared/types"
)

// DefaultReportName é o nome base dos arquivos exportados.
const DefaultReportName = "retail_report"

// ReportOptions ajusta a renderização dos gráficos e o diagnóstico do caso de uso.
type ReportOptions struct {
	ChartWidth  int
	ChartHeight int
	Logger      zerolog.Logger
}

// ReportUseCase implementa os fluxos de geração de relatório da CLI e da API HTTP.
type ReportUseCase struct {
	datasetRepo   repository.DatasetRepository
	exportRepo    repository.ExportRepository
	chartRenderer repository.ChartRenderer
	assembler     *ReportAssembler
	console       types.ConsoleInterface
	opts          ReportOptions
}

// NewReportUseCase cria um novo caso de uso de relatório.
func NewReportUseCase(
	datasetRepo repository.DatasetRepository,
	exportRepo repository.ExportRepository,
	chartRenderer repository.ChartRenderer,
	assembler *ReportAssembler,
	console types.ConsoleInterface,
	opts ReportOptions,
) *ReportUseCase {
	return &ReportUseCase{
		datasetRepo:   datasetRepo,
		exportRepo:    exportRepo,
		chartRenderer: chartRenderer,
		assembler:     assembler,
		console:       console,
		opts:          opts,
	}
}

// ReportResult é o resultado de uma geração de relatório.
type ReportResult struct {
	ID       string
	Dataset  entity.Dataset
	KPIs     entity.KPISet
	Insights entity.InsightReport
	Document entity.RenderedDocument
}

// LoadDataset lê o dataset indicado por source.
func (uc *ReportUseCase) LoadDataset(ctx context.Context, source string) (entity.Dataset, error) {
	ds, err := uc.datasetRepo.Load(ctx, source)
	if err != nil {
		return entity.Dataset{}, fmt.Errorf("error loading dataset %s: %w", source, err)
	}
	uc.opts.Logger.Debug().Str("source", source).Int("records", ds.Len()).Msg("dataset loaded")
	return ds, nil
}

// GenerateInsights filtra o dataset e deriva os insights sem renderizar documento.
func (uc *ReportUseCase) GenerateInsights(ds entity.Dataset, sel Selection) (entity.InsightReport, entity.KPISet, entity.Dataset, error) {
	filtered := sel.Apply(ds)
	report, err := uc.assembler.Narrate(filtered)
	if err != nil {
		return entity.InsightReport{}, entity.KPISet{}, filtered, err
	}
	return report, analytics.ComputeKPIs(filtered), filtered, nil
}

// GenerateReport filtra o dataset, renderiza os gráficos e monta o PDF.
func (uc *ReportUseCase) GenerateReport(ctx context.Context, ds entity.Dataset, sel Selection, preparedBy string) (*ReportResult, error) {
	id := uuid.NewString()
	log := uc.opts.Logger.With().Str("report_id", id).Logger()

	filtered := sel.Apply(ds)

	var charts []entity.ChartImage
	if uc.chartRenderer != nil {
		var err error
		charts, err = RenderCharts(uc.chartRenderer, BuildChartSpecs(filtered, uc.opts.ChartWidth, uc.opts.ChartHeight))
		if err != nil {
			log.Error().Err(err).Msg("chart rendering failed")
			return nil, err
		}
	}

	doc, plan, err := uc.assembler.Assemble(ctx, ReportRequest{
		Dataset:    filtered,
		Filters:    sel.Filters(),
		PreparedBy: preparedBy,
		Charts:     charts,
		DateRange:  filtered.DateRange(),
	})
	if err != nil {
		log.Error().Err(err).Msg("report build failed")
		return nil, err
	}

	log.Info().
		Int("records", filtered.Len()).
		Int("pages", doc.PageCount).
		Int("bytes", len(doc.Content)).
		Msg("report generated")

	return &ReportResult{
		ID:       id,
		Dataset:  filtered,
		KPIs:     plan.KPIs,
		Insights: plan.Insights,
		Document: doc,
	}, nil
}

// RunReport executa o fluxo da CLI: carrega, filtra, exibe, exporta e opcionalmente envia.
func (uc *ReportUseCase) RunReport(ctx context.Context, args *types.CLIArgs, store repository.ArtifactStore) error {
	if args.DataFile == "" {
		return types.ErrNoDataSource
	}

	status := uc.console.Status("Loading dataset...")
	ds, err := uc.LoadDataset(ctx, args.DataFile)
	status.Stop()
	if err != nil {
		return err
	}

	sel := Selection{Region: args.Region, Category: args.Category, Search: args.Search}
	filtered := sel.Apply(ds)
	uc.console.LogInfo("Loaded %d records, %d match the selected filters", ds.Len(), filtered.Len())

	// Executa análise de tendência se solicitada
	if args.Trend {
		uc.RunTrendAnalysis(filtered)
		return nil
	}

	reportTypes := args.ReportType
	if len(reportTypes) == 0 {
		reportTypes = []string{"pdf"}
	}
	reportName := args.ReportName
	if reportName == "" {
		reportName = DefaultReportName
	}

	var result *ReportResult
	if contains(reportTypes, "pdf") {
		status = uc.console.Status("Generating report...")
		result, err = uc.GenerateReport(ctx, ds, sel, args.PreparedBy)
		status.Stop()
		if err != nil {
			return err
		}
	} else {
		report, kpis, _, err := uc.GenerateInsights(ds, sel)
		if err != nil {
			return err
		}
		result = &ReportResult{ID: uuid.NewString(), Dataset: filtered, KPIs: kpis, Insights: report}
	}

	uc.DisplayKPIs(result.KPIs)
	if args.Insights {
		uc.DisplayInsights(result.Insights)
	}

	paths := uc.exportReports(result, reportTypes, reportName, args.Dir)

	if store != nil && len(paths) > 0 {
		uc.uploadArtifacts(ctx, store, result.ID, paths)
	}
	return nil
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}

func (uc *ReportUseCase) exportReports(result *ReportResult, reportTypes []string, reportName, dir string) []string {
	var paths []string
	record := func(kind, path string, err error) {
		if err != nil {
			uc.console.LogError("Failed to export %s: %s", kind, err)
			return
		}
		uc.console.LogSuccess("Successfully exported %s: %s", kind, path)
		paths = append(paths, path)
	}

	for _, reportType := range reportTypes {
		switch strings.ToLower(reportType) {
		case "pdf":
			path, err := uc.exportRepo.ExportReportToPDF(result.Document, reportName, dir)
			record("report to PDF", path, err)
		case "csv":
			path, err := uc.exportRepo.ExportDatasetToCSV(result.Dataset, reportName+"_data", dir)
			record("filtered data to CSV", path, err)
			path, err = uc.exportRepo.ExportInsightsToCSV(result.Insights, reportName+"_insights", dir)
			record("insights to CSV", path, err)
		case "json":
			path, err := uc.exportRepo.ExportInsightsToJSON(result.Insights, result.KPIs, reportName, dir)
			record("insights to JSON", path, err)
		case "md":
			path, err := uc.exportRepo.ExportInsightsToMarkdown(result.Insights, reportName, dir)
			record("insights to markdown", path, err)
		default:
			uc.console.LogWarning("Unknown report type '%s' ignored", reportType)
		}
	}
	return paths
}

var contentTypes = map[string]string{
	".pdf":  "application/pdf",
	".csv":  "text/csv",
	".json": "application/json",
	".md":   "text/markdown",
}

func (uc *ReportUseCase) uploadArtifacts(ctx context.Context, store repository.ArtifactStore, reportID string, paths []string) {
	progress := uc.console.ProgressWithTotal(len(paths))
	defer progress.Stop()

	for _, path := range paths {
		uri, err := uc.uploadFile(ctx, store, reportID, path)
		progress.Increment()
		if err != nil {
			uc.console.LogError("Failed to upload %s: %s", filepath.Base(path), err)
			continue
		}
		uc.console.LogSuccess("Uploaded %s", uri)
	}
}

func (uc *ReportUseCase) uploadFile(ctx context.Context, store repository.ArtifactStore, reportID, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	name := filepath.Base(path)
	return store.Put(ctx, reportID+"/"+name, contentTypes[strings.ToLower(filepath.Ext(name))], f)
}

// DisplayKPIs exibe a tabela de visão geral do negócio.
func (uc *ReportUseCase) DisplayKPIs(kpis entity.KPISet) {
	table := uc.console.CreateTable()
	table.AddColumn("Metric")
	table.AddColumn("Value")
	for _, row := range uc.assembler.kpiRows(kpis) {
		table.AddRow(row.Key, row.Value)
	}
	uc.console.Print(table.Render())
}

// DisplayInsights exibe o resumo executivo e os insights em ordem.
func (uc *ReportUseCase) DisplayInsights(report entity.InsightReport) {
	uc.console.Printf("\n%s\n", pterm.FgCyan.Sprint("Executive Summary"))
	uc.console.Println(report.Summary.Text)
	uc.console.Printf("\n%s\n", pterm.FgCyan.Sprint("Key Insights"))
	for i, in := range report.Insights {
		uc.console.Printf("%d. %s\n", i+1, in.Text)
	}
}

// RunTrendAnalysis exibe barras de receita mensal do dataset.
func (uc *ReportUseCase) RunTrendAnalysis(ds entity.Dataset) {
	uc.console.LogInfo("Analysing revenue trends...")

	monthly := MonthlyRevenue(ds)
	if len(monthly) == 0 {
		uc.console.LogWarning("No trend data available for the selected filters")
		return
	}
	uc.console.DisplayTrendBars(monthly)

	if trend, ok, err := analytics.ComputeTrend(ds); err != nil {
		uc.console.LogWarning("Trend unavailable: %s", err)
	} else if ok {
		uc.console.Printf("\n%s %s%% (%s → %s)\n",
			pterm.FgYellow.Sprint("Month over month:"),
			trend.PercentChange.StringFixed(2), trend.PreviousMonth, trend.LatestMonth)
	}
}

// MonthlyRevenue lista a receita por mês, em ordem crescente.
func MonthlyRevenue(ds entity.Dataset) []types.MonthlyRevenue {
	points := analytics.SumRevenue(ds, analytics.ByMonth).Points()
	monthly := make([]types.MonthlyRevenue, len(points))
	for i, p := range points {
		monthly[i] = types.MonthlyRevenue{Month: p.Key, Revenue: p.Value.InexactFloat64()}
	}
	return monthly
}
