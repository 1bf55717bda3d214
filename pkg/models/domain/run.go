package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BucketKey identifies one aggregation bucket. Every usage record with the
// same entity and resource class folds into the same bucket.
type BucketKey struct {
	EntityKey     string
	ResourceClass string
}

// AggregationBucket accumulates raw usage for one bucket key. Buckets are
// created on first match, updated additively, and consumed exactly once
// when focus records are emitted.
type AggregationBucket struct {
	Key           BucketKey
	Kind          UsageKind
	TotalQuantity float64
	RecordCount   int
}

// RunSummary totals one billing pass. TotalListCost and TotalBilledCost are
// sums of the individually rounded per-record costs, so they always match
// what the emitted records add up to.
type RunSummary struct {
	TotalListCost      decimal.Decimal
	TotalBilledCost    decimal.Decimal
	TotalSubsidyAmount decimal.Decimal
	ProcessedCount     int
	SkippedCount       int
	UnknownEntityKeys  []string
	Warnings           []Warning
}

// RecordDetail pairs an emitted focus record with the bucket it came from,
// for analysis output and run archiving.
type RecordDetail struct {
	Record        FocusRecord
	Kind          UsageKind
	TotalQuantity float64
	RecordCount   int
}

// RunResult is the complete outcome of one billing pass.
type RunResult struct {
	Period  Period
	Details []RecordDetail
	Summary RunSummary
}

// Records returns the emitted focus records in stable output order.
func (r *RunResult) Records() []FocusRecord {
	records := make([]FocusRecord, 0, len(r.Details))
	for _, d := range r.Details {
		records = append(records, d.Record)
	}
	return records
}

// Run is one archived billing pass.
type Run struct {
	ID          string
	Source      string
	ServiceName string
	Period      Period
	GeneratedAt time.Time
	Summary     RunSummary
}
