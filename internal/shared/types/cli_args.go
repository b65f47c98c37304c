package types

// CLIArgs represents the command-line arguments.
type CLIArgs struct {
	ConfigFile  string
	DataFile    string
	Region      string
	Category    string
	Search      string
	PreparedBy  string
	ReportName  string
	ReportType  []string
	Dir         string
	PreviewRows int
	Trend       bool
	Insights    bool
	S3Bucket    string
	S3Prefix    string
	AWSProfile  string
	AWSRegion   string
	LogLevel    string
}
