package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/diillson/retail-report-go/internal/adapter/driven/aws"
	"github.com/diillson/retail-report-go/internal/adapter/driven/chart"
	"github.com/diillson/retail-report-go/internal/adapter/driven/config"
	"github.com/diillson/retail-report-go/internal/adapter/driven/dataset"
	"github.com/diillson/retail-report-go/internal/adapter/driven/export"
	"github.com/diillson/retail-report-go/internal/adapter/driven/pdf"
	"github.com/diillson/retail-report-go/internal/adapter/driving/cli"
	"github.com/diillson/retail-report-go/pkg/console"
	"github.com/diillson/retail-report-go/pkg/version"
)

func main() {
	// Variáveis de um .env local, quando existir, valem como padrão para o ambiente.
	_ = godotenv.Load()

	app := cli.NewCLIApp(version.Version)

	app.SetDependencies(cli.Dependencies{
		DatasetRepo:      dataset.NewDatasetRepository(),
		ExportRepo:       export.NewExportRepository(),
		ConfigRepo:       config.NewConfigRepository(),
		ChartRenderer:    chart.NewRenderer(),
		NewRenderer:      pdf.Factory(pdf.Options{Title: "Retail Analytics Report", Author: "Retail Analytics Team"}),
		NewArtifactStore: aws.NewS3ArtifactStore,
		Console:          console.NewConsole(),
	})

	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
