package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"csv", FormatCSV},
		{"CSV", FormatCSV},
		{"analysis", FormatAnalysis},
		{"Analysis", FormatAnalysis},
	}

	for _, tc := range tests {
		got, err := ParseFormat(tc.in)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}

	_, err := ParseFormat("xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported format "xml"`)
}

func TestWrite_Dispatch(t *testing.T) {
	result := sampleResult(t)
	generatedAt := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)

	t.Run("csv", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, FormatCSV, result, "cluster", "compute", generatedAt))
		assert.True(t, strings.HasPrefix(buf.String(), "BillingPeriodStart,"))
	})

	t.Run("analysis", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, FormatAnalysis, result, "cluster", "compute", generatedAt))
		assert.True(t, strings.HasPrefix(buf.String(), "{"))
		assert.Contains(t, buf.String(), `"generated_at"`)
	})

	t.Run("unknown format", func(t *testing.T) {
		var buf bytes.Buffer
		err := Write(&buf, Format("xml"), result, "cluster", "compute", generatedAt)
		require.Error(t, err)
	})
}
