package billing

import (
	"context"
	"fmt"

	"github.com/rc-tools/cost-ledger/pkg/models/domain"
	"github.com/rc-tools/cost-ledger/pkg/services/ingest"
	"github.com/rc-tools/cost-ledger/pkg/services/metadata"
	"github.com/rs/zerolog"
)

// ExportRequest carries everything one billing pass needs.
type ExportRequest struct {
	Source   ingest.Source
	Period   domain.Period
	Rates    domain.RateConfig
	Metadata map[string]domain.MetadataRecord
}

// Controller runs billing passes end to end: collect, aggregate, price.
type Controller interface {
	Run(ctx context.Context, req ExportRequest) (*domain.RunResult, error)
}

type controller struct{}

func NewController() Controller {
	return &controller{}
}

func (c *controller) Run(ctx context.Context, req ExportRequest) (*domain.RunResult, error) {
	logger := zerolog.Ctx(ctx)

	ingested, err := req.Source.Collect(ctx, req.Period, req.Rates)
	if err != nil {
		return nil, fmt.Errorf("failed to collect usage from %s: %w", req.Source.Name(), err)
	}

	resolver := metadata.NewResolver(req.Metadata)
	result, err := Aggregate(ctx, ingested.Records, req.Rates, resolver, req.Period)
	if err != nil {
		return nil, err
	}

	// Ingest-side skips and warnings belong to the same pass.
	result.Summary.SkippedCount += ingested.Skipped
	result.Summary.Warnings = append(ingested.Warnings, result.Summary.Warnings...)

	logger.Info().
		Str("source", req.Source.Name()).
		Str("period", req.Period.Month()).
		Int("processed", result.Summary.ProcessedCount).
		Int("skipped", result.Summary.SkippedCount).
		Int("records", len(result.Details)).
		Str("billed_total", result.Summary.TotalBilledCost.StringFixed(2)).
		Msg("billing pass complete")

	return result, nil
}
