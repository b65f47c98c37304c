package repository

import (
	"github.com/diillson/retail-report-go/internal/domain/entity"
)

type ExportRepository interface {
	ExportReportToPDF(doc entity.RenderedDocument, filename, outputDir string) (string, error)

	ExportInsightsToJSON(report entity.InsightReport, kpis entity.KPISet, filename, outputDir string) (string, error)
	ExportInsightsToCSV(report entity.InsightReport, filename, outputDir string) (string, error)
	ExportInsightsToMarkdown(report entity.InsightReport, filename, outputDir string) (string, error)

	ExportDatasetToCSV(ds entity.Dataset, filename, outputDir string) (string, error)
}
