package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rc-tools/cost-ledger/pkg/models/domain"
)

// Format selects which artifact one invocation produces. The two modes are
// mutually exclusive; a run never writes both.
type Format string

const (
	FormatCSV      Format = "csv"
	FormatAnalysis Format = "analysis"
)

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatCSV:
		return FormatCSV, nil
	case FormatAnalysis:
		return FormatAnalysis, nil
	default:
		return "", fmt.Errorf("unsupported format %q, expected csv or analysis", s)
	}
}

// Write emits the selected artifact for one run result.
func Write(w io.Writer, format Format, result *domain.RunResult, source, service string, generatedAt time.Time) error {
	switch format {
	case FormatCSV:
		return WriteFocusCSV(w, result.Records())
	case FormatAnalysis:
		return WriteAnalysis(w, BuildAnalysisReport(result, source, service, generatedAt))
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}
