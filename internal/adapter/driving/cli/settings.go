package cli

import (
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/diillson/retail-report-go/internal/shared/types"
)

// Variáveis de ambiente lidas quando nem flag nem arquivo de configuração definem o valor.
const (
	EnvDataFile   = "RETAIL_REPORT_DATA"
	EnvServerAddr = "RETAIL_REPORT_ADDR"
	EnvLogLevel   = "RETAIL_REPORT_LOG_LEVEL"
)

// mergeConfig preenche com o arquivo de configuração todo argumento não passado explicitamente.
// Flags sempre vencem o arquivo; o arquivo vence os valores padrão das flags.
func mergeConfig(changed func(name string) bool, args *types.CLIArgs, cfg *types.Config) {
	if cfg == nil {
		return
	}

	str := func(flag string, dst *string, value string) {
		if !changed(flag) && value != "" {
			*dst = value
		}
	}
	str("data", &args.DataFile, cfg.DataFile)
	str("region", &args.Region, cfg.Region)
	str("category", &args.Category, cfg.Category)
	str("search", &args.Search, cfg.Search)
	str("prepared-by", &args.PreparedBy, cfg.PreparedBy)
	str("report-name", &args.ReportName, cfg.ReportName)
	str("dir", &args.Dir, cfg.Dir)
	str("s3-bucket", &args.S3Bucket, cfg.S3Bucket)
	str("s3-prefix", &args.S3Prefix, cfg.S3Prefix)
	str("aws-profile", &args.AWSProfile, cfg.AWSProfile)
	str("aws-region", &args.AWSRegion, cfg.AWSRegion)
	str("log-level", &args.LogLevel, cfg.LogLevel)

	if !changed("report-type") && len(cfg.ReportType) > 0 {
		args.ReportType = cfg.ReportType
	}
	if !changed("preview-rows") && cfg.PreviewRows > 0 {
		args.PreviewRows = cfg.PreviewRows
	}
}

// applyEnv usa o ambiente para o que continuar vazio depois das flags e do arquivo.
func applyEnv(args *types.CLIArgs) {
	if args.DataFile == "" {
		args.DataFile = os.Getenv(EnvDataFile)
	}
	if args.LogLevel == "" {
		args.LogLevel = os.Getenv(EnvLogLevel)
	}
}

// newLogger cria o logger de diagnóstico em stderr. A saída do relatório passa pelo console.
func newLogger(level string, fallback zerolog.Level) zerolog.Logger {
	lvl := fallback
	if level != "" {
		if parsed, err := zerolog.ParseLevel(strings.ToLower(level)); err == nil {
			lvl = parsed
		}
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}
