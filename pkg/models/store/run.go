package store

import "time"

type RunWarning struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type Run struct {
	ID                 string
	Source             string
	ServiceName        string
	PeriodStart        time.Time
	PeriodEnd          time.Time
	GeneratedAt        time.Time
	TotalListCost      float64
	TotalBilledCost    float64
	TotalSubsidyAmount float64
	ProcessedCount     int
	SkippedCount       int
	UnknownEntityKeys  []string
	Warnings           []RunWarning
}

type FocusRecord struct {
	RunID              string
	BillingPeriodStart time.Time
	BillingPeriodEnd   time.Time
	ChargePeriodStart  time.Time
	ChargePeriodEnd    time.Time
	ListCost           float64
	BilledCost         float64
	ResourceID         string
	ResourceName       string
	ServiceName        string
	Tags               map[string]string
}
