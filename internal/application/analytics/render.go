package analytics

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/diillson/retail-report-go/internal/domain/entity"
)

const plainTemplate = `Executive Summary
{{.Summary.Text}}

Key Insights
{{range $i, $in := .Insights}}{{inc $i}}. {{$in.Text}}
{{end}}`

const markdownTemplate = `### Executive Summary

> {{.Summary.Text}}

### Key Insights
{{range .Insights}}
- **{{kind .Kind}}**: {{.Text}}{{end}}
`

var (
	funcs = template.FuncMap{
		"inc": func(i int) int { return i + 1 },
		"kind": func(k entity.InsightKind) string {
			s := string(k)
			if s == "" {
				return s
			}
			return strings.ToUpper(s[:1]) + s[1:]
		},
	}
	plainTmpl    = template.Must(template.New("plain").Funcs(funcs).Parse(plainTemplate))
	markdownTmpl = template.Must(template.New("markdown").Funcs(funcs).Parse(markdownTemplate))
)

// WritePlainText renders an insight report as plain text, without recomputing anything.
func WritePlainText(w io.Writer, report entity.InsightReport) error {
	if err := plainTmpl.Execute(w, report); err != nil {
		return fmt.Errorf("failed to render insights: %w", err)
	}
	return nil
}

// WriteMarkdown renders an insight report as markdown.
func WriteMarkdown(w io.Writer, report entity.InsightReport) error {
	if err := markdownTmpl.Execute(w, report); err != nil {
		return fmt.Errorf("failed to render insights markdown: %w", err)
	}
	return nil
}

// PlainText is WritePlainText into a string.
func PlainText(report entity.InsightReport) string {
	var b strings.Builder
	_ = WritePlainText(&b, report)
	return b.String()
}

// Markdown is WriteMarkdown into a string.
func Markdown(report entity.InsightReport) string {
	var b strings.Builder
	_ = WriteMarkdown(&b, report)
	return b.String()
}
