package api

import "time"

type Tags struct {
	PIEmail   string `json:"pi_email"`
	ProjectID string `json:"project_id"`
	FundOrg   string `json:"fund_org"`
}

// FocusRecord is the wire form of one billing line. Dates are plain ISO
// dates and costs are fixed two-decimal strings, exactly as they appear in
// the CSV artifact.
type FocusRecord struct {
	BillingPeriodStart string `json:"billing_period_start"`
	BillingPeriodEnd   string `json:"billing_period_end"`
	ChargePeriodStart  string `json:"charge_period_start"`
	ChargePeriodEnd    string `json:"charge_period_end"`
	ListCost           string `json:"list_cost"`
	BilledCost         string `json:"billed_cost"`
	ResourceID         string `json:"resource_id"`
	ResourceName       string `json:"resource_name"`
	ServiceName        string `json:"service_name"`
	Tags               Tags   `json:"tags"`
}

type RecordDetail struct {
	Record        FocusRecord `json:"record"`
	Kind          string      `json:"kind"`
	TotalQuantity float64     `json:"total_quantity"`
	RecordCount   int         `json:"record_count"`
}

type Warning struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type RunSummary struct {
	TotalListCost      string    `json:"total_list_cost"`
	TotalBilledCost    string    `json:"total_billed_cost"`
	TotalSubsidyAmount string    `json:"total_subsidy_amount"`
	ProcessedCount     int       `json:"processed_count"`
	SkippedCount       int       `json:"skipped_count"`
	UnknownEntityKeys  []string  `json:"unknown_entity_keys"`
	Warnings           []Warning `json:"warnings,omitempty"`
}

type Period struct {
	Month string `json:"month"`
	Start string `json:"start"`
	End   string `json:"end"`
}

type Run struct {
	ID          string     `json:"id"`
	Source      string     `json:"source"`
	ServiceName string     `json:"service_name"`
	Period      Period     `json:"period"`
	GeneratedAt time.Time  `json:"generated_at"`
	Summary     RunSummary `json:"summary"`
}

// AnalysisReport is the analysis artifact: run metadata, full per-record
// detail, and the summary with totals and review lists.
type AnalysisReport struct {
	GeneratedAt time.Time      `json:"generated_at"`
	Source      string         `json:"source,omitempty"`
	ServiceName string         `json:"service_name,omitempty"`
	Period      Period         `json:"period"`
	Records     []RecordDetail `json:"records"`
	Summary     RunSummary     `json:"summary"`
}
