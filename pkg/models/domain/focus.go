package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tags carries the ownership attributes embedded in every FOCUS record.
type Tags struct {
	PIEmail   string
	ProjectID string
	FundOrg   string
}

// FocusRecord is one normalized billing line in the FOCUS column set.
// ListCost and BilledCost are rounded half-up to two decimal places when the
// record is built and never re-rounded afterwards. BilledCost never exceeds
// ListCost and neither is negative.
type FocusRecord struct {
	BillingPeriodStart time.Time
	BillingPeriodEnd   time.Time
	ChargePeriodStart  time.Time
	ChargePeriodEnd    time.Time
	ListCost           decimal.Decimal
	BilledCost         decimal.Decimal
	ResourceID         string
	ResourceName       string
	ServiceName        string
	Tags               Tags
}
