package report

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/dustin/go-humanize"
	"github.com/rc-tools/cost-ledger/pkg/models/domain"
	"github.com/shopspring/decimal"
)

type TableConfig struct {
	ResourceWidth int
	UsageWidth    int
	CostWidth     int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		ResourceWidth: 44,
		UsageWidth:    18,
		CostWidth:     12,
	}
}

// Reporter renders operator-facing summaries to the terminal. The exported
// artifact is the deliverable; this is the at-a-glance view of it.
type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

func (r *Reporter) funcMap() template.FuncMap {
	return template.FuncMap{
		"formatRow": func(resource, usage, list, billed string) string {
			return fmt.Sprintf("| %-*s | %*s | %*s | %*s |",
				r.config.ResourceWidth, resource,
				r.config.UsageWidth, usage,
				r.config.CostWidth, list,
				r.config.CostWidth, billed)
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+%s+%s+",
				strings.Repeat("-", r.config.ResourceWidth+2),
				strings.Repeat("-", r.config.UsageWidth+2),
				strings.Repeat("-", r.config.CostWidth+2),
				strings.Repeat("-", r.config.CostWidth+2))
		},
		"usage": func(d domain.RecordDetail) string {
			if d.Kind == domain.UsageKindStorage {
				return humanize.IBytes(uint64(d.TotalQuantity))
			}
			return humanize.CommafWithDigits(d.TotalQuantity, 2) + " SU"
		},
		"money": func(d decimal.Decimal) string {
			return d.StringFixed(2)
		},
	}
}

const summaryTmpl = `
Billing period: {{.Result.Period.Month}} ({{.Result.Period.Start.Format "2006-01-02"}} to {{.Result.Period.End.Format "2006-01-02"}})
Artifact: {{.ArtifactPath}}
{{- if .Archived}}
Archived run: {{.Archived.ID}}
{{- end}}

{{separator}}
{{formatRow "Resource" "Usage" "List" "Billed"}}
{{separator}}
{{range .Result.Details}}{{formatRow .Record.ResourceID (usage .) (money .Record.ListCost) (money .Record.BilledCost)}}
{{end}}{{separator}}

Total list:   {{.Currency}} {{money .Result.Summary.TotalListCost}}
Total billed: {{.Currency}} {{money .Result.Summary.TotalBilledCost}}
Subsidies:    {{.Currency}} {{money .Result.Summary.TotalSubsidyAmount}}
Processed {{.Result.Summary.ProcessedCount}} usage records, skipped {{.Result.Summary.SkippedCount}}.
{{- if .Result.Summary.UnknownEntityKeys}}

Unknown entities ({{len .Result.Summary.UnknownEntityKeys}}):
{{- range .Result.Summary.UnknownEntityKeys}}
  - {{.}}
{{- end}}
{{- end}}
{{- if .Result.Summary.Warnings}}

Warnings ({{len .Result.Summary.Warnings}}):
{{- range .Result.Summary.Warnings}}
  - [{{.Kind}}] {{.Message}}
{{- end}}
{{- end}}
`

// Summary renders the result of one billing pass.
func (r *Reporter) Summary(result *domain.RunResult, currency, artifactPath string, archived *domain.Run) error {
	t, err := template.New("summary").Funcs(r.funcMap()).Parse(summaryTmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	data := struct {
		Result       *domain.RunResult
		Currency     string
		ArtifactPath string
		Archived     *domain.Run
	}{
		Result:       result,
		Currency:     currency,
		ArtifactPath: artifactPath,
		Archived:     archived,
	}
	return t.Execute(r.writer, data)
}

const runsTmpl = `{{if not .}}No archived runs.
{{else}}{{range .}}{{.ID}}  {{.Period.Month}}  {{.Source}}  billed {{money .Summary.TotalBilledCost}}  ({{.GeneratedAt.Format "2006-01-02 15:04"}})
{{end}}{{end}}`

// Runs renders the archived run list, newest first.
func (r *Reporter) Runs(runs []domain.Run) error {
	t, err := template.New("runs").Funcs(r.funcMap()).Parse(runsTmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}
	return t.Execute(r.writer, runs)
}
