package domain

type UsageKind string

const (
	UsageKindCompute UsageKind = "compute"
	UsageKindStorage UsageKind = "storage"
)

// UsageRecord is one normalized usage observation produced by a source.
// Quantity is in a kind-specific unit: service units for compute
// (allocated units x elapsed hours x class multiplier), bytes for storage.
type UsageRecord struct {
	EntityKey     string
	ResourceClass string
	Quantity      float64
	Kind          UsageKind
}

// IngestResult is what a source hands to the billing pass: the usable
// records plus everything it had to drop along the way.
type IngestResult struct {
	Records  []UsageRecord
	Skipped  int
	Warnings []Warning
}

type WarningKind string

const (
	WarningInvalidUsage         WarningKind = "invalid_usage"
	WarningUnknownResourceClass WarningKind = "unknown_resource_class"
)

type Warning struct {
	Kind    WarningKind
	Message string
}
