package cli

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/diillson/retail-report-go/internal/adapter/driving/api"
	"github.com/diillson/retail-report-go/internal/application/layout"
	"github.com/diillson/retail-report-go/internal/application/usecase"
	"github.com/diillson/retail-report-go/internal/domain/repository"
	"github.com/diillson/retail-report-go/internal/shared/types"
	"github.com/diillson/retail-report-go/pkg/version"
)

// ArtifactStoreFactory abre o armazenamento remoto usado nos uploads.
type ArtifactStoreFactory func(bucket, prefix, profile, region string) repository.ArtifactStore

// Dependencies são os adaptadores que a CLI injeta no caso de uso.
type Dependencies struct {
	DatasetRepo      repository.DatasetRepository
	ExportRepo       repository.ExportRepository
	ConfigRepo       repository.ConfigRepository
	ChartRenderer    repository.ChartRenderer
	NewRenderer      usecase.RendererFactory
	NewArtifactStore ArtifactStoreFactory
	Console          types.ConsoleInterface
}

// CLIApp representa a aplicação de linha de comando.
type CLIApp struct {
	rootCmd *cobra.Command
	deps    Dependencies
	version string
}

// NewCLIApp cria uma nova aplicação CLI.
func NewCLIApp(versionStr string) *CLIApp {
	app := &CLIApp{
		version: versionStr,
	}

	formattedVersion := version.FormatVersion()

	rootCmd := &cobra.Command{
		Use:           "retail-report",
		Short:         "Retail analytics insights and PDF reports",
		Version:       formattedVersion,
		RunE:          app.runCommand,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{printf "Retail Report version: %s\n" .Version}}`)

	flags := rootCmd.PersistentFlags()
	flags.StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	flags.StringP("data", "f", "", "Dataset to analyse (.csv or .xlsx)")
	flags.StringP("region", "r", usecase.AllValues, "Only include records from this region")
	flags.StringP("category", "c", usecase.AllValues, "Only include records from this product category")
	flags.StringP("search", "s", "", "Case-insensitive match on store location or product category")
	flags.StringP("prepared-by", "P", "", "Name printed at the end of the PDF report")
	flags.StringP("report-name", "n", "", "Specify the base name for the report file (without extension)")
	flags.StringSliceP("report-type", "y", []string{"pdf"}, "Specify report types: pdf, csv, json, md")
	flags.StringP("dir", "d", "", "Directory to save the report files (default: current directory)")
	flags.Int("preview-rows", usecase.DefaultPreviewRows, "Rows shown in the data preview table of the PDF")
	flags.Bool("trend", false, "Display monthly revenue trend bars instead of generating reports")
	flags.BoolP("insights", "i", false, "Print the narrated insights to the console")
	flags.String("s3-bucket", "", "Upload generated files to this S3 bucket")
	flags.String("s3-prefix", "", "Key prefix for uploaded files")
	flags.StringP("aws-profile", "p", "", "AWS profile used for uploads")
	flags.String("aws-region", "", "AWS region used for uploads")
	flags.String("log-level", "", "Diagnostics level: trace, debug, info, warn, error, disabled")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve insights and PDF reports over HTTP",
		RunE:  app.serveCommand,
	}
	serveCmd.Flags().String("addr", "", "Listen address (default "+api.DefaultAddr+")")
	rootCmd.AddCommand(serveCmd)

	app.rootCmd = rootCmd
	return app
}

// Execute executa a aplicação CLI.
func (app *CLIApp) Execute() error {
	return app.rootCmd.Execute()
}

// SetArgs substitui os.Args, usado principalmente nos testes.
func (app *CLIApp) SetArgs(args []string) {
	app.rootCmd.SetArgs(args)
}

// SetDependencies define os adaptadores usados pelos comandos.
func (app *CLIApp) SetDependencies(deps Dependencies) {
	app.deps = deps
}

// parseArgs converte os argumentos da linha de comando em CLIArgs.
func (app *CLIApp) parseArgs(cmd *cobra.Command) *types.CLIArgs {
	flags := cmd.Flags()
	configFile, _ := flags.GetString("config-file")
	dataFile, _ := flags.GetString("data")
	region, _ := flags.GetString("region")
	category, _ := flags.GetString("category")
	search, _ := flags.GetString("search")
	preparedBy, _ := flags.GetString("prepared-by")
	reportName, _ := flags.GetString("report-name")
	reportType, _ := flags.GetStringSlice("report-type")
	dir, _ := flags.GetString("dir")
	previewRows, _ := flags.GetInt("preview-rows")
	trend, _ := flags.GetBool("trend")
	insights, _ := flags.GetBool("insights")
	s3Bucket, _ := flags.GetString("s3-bucket")
	s3Prefix, _ := flags.GetString("s3-prefix")
	awsProfile, _ := flags.GetString("aws-profile")
	awsRegion, _ := flags.GetString("aws-region")
	logLevel, _ := flags.GetString("log-level")

	return &types.CLIArgs{
		ConfigFile:  configFile,
		DataFile:    dataFile,
		Region:      region,
		Category:    category,
		Search:      search,
		PreparedBy:  preparedBy,
		ReportName:  reportName,
		ReportType:  reportType,
		Dir:         dir,
		PreviewRows: previewRows,
		Trend:       trend,
		Insights:    insights,
		S3Bucket:    s3Bucket,
		S3Prefix:    s3Prefix,
		AWSProfile:  awsProfile,
		AWSRegion:   awsRegion,
		LogLevel:    logLevel,
	}
}

// loadSettings resolve flags, arquivo de configuração opcional e ambiente, nessa ordem de precedência.
func (app *CLIApp) loadSettings(cmd *cobra.Command) (*types.CLIArgs, *types.Config, error) {
	args := app.parseArgs(cmd)

	cfg := &types.Config{}
	if args.ConfigFile != "" {
		loaded, err := app.deps.ConfigRepo.LoadConfigFile(args.ConfigFile)
		if err != nil {
			return nil, nil, err
		}
		cfg = loaded
		mergeConfig(cmd.Flags().Changed, args, cfg)
	}
	applyEnv(args)

	// Diretório padrão: diretório de trabalho atual
	if args.Dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, nil, err
		}
		args.Dir = cwd
	} else {
		absDir, err := filepath.Abs(args.Dir)
		if err != nil {
			return nil, nil, err
		}
		args.Dir = absDir
	}

	return args, cfg, nil
}

// buildUseCase monta o caso de uso de relatório com as configurações resolvidas.
func (app *CLIApp) buildUseCase(args *types.CLIArgs, cfg *types.Config, logger zerolog.Logger) *usecase.ReportUseCase {
	layoutCfg := layout.DefaultConfig()
	if cfg.ReportTitle != "" {
		layoutCfg.Title = cfg.ReportTitle
	}
	if cfg.FooterText != "" {
		layoutCfg.Footer = cfg.FooterText
	}
	if cfg.ImageBreakThreshold > 0 {
		layoutCfg.ImageBreakThreshold = cfg.ImageBreakThreshold
	}
	layoutCfg.Logger = logger

	asmCfg := usecase.DefaultAssemblerConfig()
	asmCfg.Layout = layoutCfg
	asmCfg.PreviewRows = args.PreviewRows
	asmCfg.Logger = logger

	assembler := usecase.NewReportAssembler(asmCfg, app.deps.NewRenderer, nil)

	return usecase.NewReportUseCase(
		app.deps.DatasetRepo,
		app.deps.ExportRepo,
		app.deps.ChartRenderer,
		assembler,
		app.deps.Console,
		usecase.ReportOptions{
			ChartWidth:  cfg.ChartWidth,
			ChartHeight: cfg.ChartHeight,
			Logger:      logger,
		},
	)
}

func (app *CLIApp) artifactStore(args *types.CLIArgs) repository.ArtifactStore {
	if args.S3Bucket == "" || app.deps.NewArtifactStore == nil {
		return nil
	}
	return app.deps.NewArtifactStore(args.S3Bucket, args.S3Prefix, args.AWSProfile, args.AWSRegion)
}

// runCommand é o ponto de entrada principal para o comando CLI.
func (app *CLIApp) runCommand(cmd *cobra.Command, _ []string) error {
	displayWelcomeBanner(app.version)

	go checkLatestVersion(app.version)

	args, cfg, err := app.loadSettings(cmd)
	if err != nil {
		return err
	}

	logger := newLogger(args.LogLevel, zerolog.WarnLevel)
	uc := app.buildUseCase(args, cfg, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return uc.RunReport(ctx, args, app.artifactStore(args))
}

// serveCommand carrega o dataset uma vez e o serve até ser interrompido.
func (app *CLIApp) serveCommand(cmd *cobra.Command, _ []string) error {
	args, cfg, err := app.loadSettings(cmd)
	if err != nil {
		return err
	}
	if args.DataFile == "" {
		return types.ErrNoDataSource
	}

	logger := newLogger(args.LogLevel, zerolog.InfoLevel)
	uc := app.buildUseCase(args, cfg, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ds, err := uc.LoadDataset(ctx, args.DataFile)
	if err != nil {
		return err
	}

	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		addr = cfg.ServerAddr
	}
	if addr == "" {
		addr = os.Getenv(EnvServerAddr)
	}

	return api.NewServer(uc, ds, logger).ListenAndServe(ctx, addr)
}
