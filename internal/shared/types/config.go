package types

// Config represents the application configuration that can be loaded from a file.
type Config struct {
	DataFile            string   `json:"data_file" yaml:"data_file" toml:"data_file"`
	ReportName          string   `json:"report_name" yaml:"report_name" toml:"report_name"`
	ReportType          []string `json:"report_type" yaml:"report_type" toml:"report_type" validate:"dive,oneof=pdf csv json md"`
	Dir                 string   `json:"dir" yaml:"dir" toml:"dir"`
	Region              string   `json:"region" yaml:"region" toml:"region"`
	Category            string   `json:"category" yaml:"category" toml:"category"`
	Search              string   `json:"search" yaml:"search" toml:"search"`
	PreparedBy          string   `json:"prepared_by" yaml:"prepared_by" toml:"prepared_by"`
	ReportTitle         string   `json:"report_title" yaml:"report_title" toml:"report_title"`
	FooterText          string   `json:"footer_text" yaml:"footer_text" toml:"footer_text"`
	PreviewRows         int      `json:"preview_rows" yaml:"preview_rows" toml:"preview_rows" validate:"gte=0,lte=500"`
	ImageBreakThreshold float64  `json:"image_break_threshold" yaml:"image_break_threshold" toml:"image_break_threshold" validate:"gte=0"`
	ChartWidth          int      `json:"chart_width" yaml:"chart_width" toml:"chart_width" validate:"gte=0,lte=4000"`
	ChartHeight         int      `json:"chart_height" yaml:"chart_height" toml:"chart_height" validate:"gte=0,lte=4000"`
	S3Bucket            string   `json:"s3_bucket" yaml:"s3_bucket" toml:"s3_bucket"`
	S3Prefix            string   `json:"s3_prefix" yaml:"s3_prefix" toml:"s3_prefix"`
	AWSProfile          string   `json:"aws_profile" yaml:"aws_profile" toml:"aws_profile"`
	AWSRegion           string   `json:"aws_region" yaml:"aws_region" toml:"aws_region"`
	ServerAddr          string   `json:"server_addr" yaml:"server_addr" toml:"server_addr"`
	LogLevel            string   `json:"log_level" yaml:"log_level" toml:"log_level" validate:"omitempty,oneof=trace debug info warn error disabled"`
}
