package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/rc-tools/cost-ledger/pkg/adapters"
	"github.com/rc-tools/cost-ledger/pkg/models/api"
	"github.com/rc-tools/cost-ledger/pkg/models/domain"
)

// BuildAnalysisReport assembles the analysis document for one billing pass.
func BuildAnalysisReport(result *domain.RunResult, source, service string, generatedAt time.Time) api.AnalysisReport {
	report := api.AnalysisReport{
		GeneratedAt: generatedAt,
		Source:      source,
		ServiceName: service,
		Period:      adapters.MapPeriodDomainToApi(result.Period),
		Records:     []api.RecordDetail{},
		Summary:     adapters.MapRunSummaryDomainToApi(result.Summary),
	}
	for _, d := range result.Details {
		report.Records = append(report.Records, adapters.MapRecordDetailDomainToApi(d))
	}
	return report
}

// WriteAnalysis writes the analysis artifact as indented JSON.
func WriteAnalysis(w io.Writer, report api.AnalysisReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("failed to encode analysis report: %w", err)
	}
	return nil
}
