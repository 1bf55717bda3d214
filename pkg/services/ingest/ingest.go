package ingest

import (
	"context"

	"github.com/rc-tools/cost-ledger/pkg/models/domain"
)

// Source turns one upstream usage feed into normalized usage records.
// Collect never fails on individual bad records: those are skipped and
// reported through the result, and only unreadable input is an error.
type Source interface {
	Name() string
	Kind() domain.UsageKind
	Collect(ctx context.Context, period domain.Period, rates domain.RateConfig) (*domain.IngestResult, error)
}
