package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/diillson/retail-report-go/internal/application/analytics"
	"github.com/diillson/retail-report-go/internal/domain/entity"
	"github.com/diillson/retail-report-go/internal/domain/repository"
)

// ExportRepositoryImpl implementa o ExportRepository.
type ExportRepositoryImpl struct {
	now func() time.Time
}

// NewExportRepository cria uma nova implementação do ExportRepository.
func NewExportRepository() repository.ExportRepository {
	return &ExportRepositoryImpl{now: time.Now}
}

// insightDocument é o formato JSON de um relatório de insights exportado.
type insightDocument struct {
	GeneratedAt time.Time               `json:"generated_at"`
	KPIs        entity.KPISet           `json:"kpis"`
	Summary     entity.ExecutiveSummary `json:"summary"`
	Insights    []entity.Insight        `json:"insights"`
	Anomalies   []entity.AnomalyFlag    `json:"anomalies"`
}

// ExportReportToPDF grava um documento já renderizado.
func (r *ExportRepositoryImpl) ExportReportToPDF(doc entity.RenderedDocument, filename, outputDir string) (string, error) {
	outputFilename, err := r.generateFilename(filename, outputDir, "pdf")
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(outputFilename, doc.Content, 0o644); err != nil {
		return "", fmt.Errorf("error writing PDF file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportInsightsToJSON(report entity.InsightReport, kpis entity.KPISet, filename, outputDir string) (string, error) {
	outputFilename, err := r.generateFilename(filename, outputDir, "json")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating JSON file: %w", err)
	}
	defer file.Close()

	insights := report.Insights
	if insights == nil {
		insights = []entity.Insight{}
	}
	anomalies := report.Anomalies
	if anomalies == nil {
		anomalies = []entity.AnomalyFlag{}
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(insightDocument{
		GeneratedAt: r.now(),
		KPIs:        kpis,
		Summary:     report.Summary,
		Insights:    insights,
		Anomalies:   anomalies,
	}); err != nil {
		return "", fmt.Errorf("error encoding JSON data: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportInsightsToCSV(report entity.InsightReport, filename, outputDir string) (string, error) {
	outputFilename, err := r.generateFilename(filename, outputDir, "csv")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	writer.Write([]string{"#", "Kind", "Subject", "Insight"})
	for i, in := range report.Insights {
		writer.Write([]string{strconv.Itoa(i + 1), string(in.Kind), in.Subject, in.Text})
	}
	writer.Write([]string{"", "summary", string(report.Summary.Trend), report.Summary.Text})

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("error writing CSV file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportInsightsToMarkdown(report entity.InsightReport, filename, outputDir string) (string, error) {
	outputFilename, err := r.generateFilename(filename, outputDir, "md")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating markdown file: %w", err)
	}
	defer file.Close()

	if err := analytics.WriteMarkdown(file, report); err != nil {
		return "", err
	}

	return filepath.Abs(outputFilename)
}

// ExportDatasetToCSV grava as linhas com os mesmos nomes de coluna que o carregador lê.
func (r *ExportRepositoryImpl) ExportDatasetToCSV(ds entity.Dataset, filename, outputDir string) (string, error) {
	outputFilename, err := r.generateFilename(filename, outputDir, "csv")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	writer.Write([]string{
		"Date", "Store_ID", "Store_Location", "Region", "Product_Category", "Brand",
		"Units_Sold", "Revenue", "Discount_Percentage", "Store_Rating",
	})
	for _, rec := range ds.Records {
		writer.Write([]string{
			rec.Date.Format("2006-01-02"),
			rec.StoreID,
			rec.StoreLocation,
			rec.Region,
			rec.ProductCategory,
			rec.Brand,
			strconv.FormatInt(rec.UnitsSold, 10),
			rec.Revenue.StringFixed(2),
			formatOptional(rec.DiscountPercentage),
			formatOptional(rec.StoreRating),
		})
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("error writing CSV file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) generateFilename(base, dir, ext string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get current working directory: %w", err)
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", dir, err)
	}
	timestamp := r.now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.%s", base, timestamp, ext)
	return filepath.Join(dir, filename), nil
}

// formatOptional grava célula vazia para valores ausentes.
func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
