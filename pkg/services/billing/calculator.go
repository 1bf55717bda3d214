package billing

import (
	"errors"
	"fmt"

	"github.com/rc-tools/cost-ledger/pkg/models/domain"
	"github.com/shopspring/decimal"
)

// ErrInvalidUsage marks usage that violates the record contract, such as a
// negative quantity. Callers skip the offending record instead of clamping.
var ErrInvalidUsage = errors.New("invalid usage")

const (
	bytesPerGB = int64(1) << 30
	bytesPerTB = int64(1) << 40
)

var (
	gbPerTB = decimal.NewFromInt(1024)
	hundred = decimal.NewFromInt(100)
)

// Cost prices one aggregation bucket against the rate configuration. Both
// returned amounts are rounded half-up to two decimal places here and
// nowhere else; everything upstream stays unrounded.
func Cost(bucket domain.AggregationBucket, rates domain.RateConfig) (listCost, billedCost decimal.Decimal, err error) {
	if bucket.TotalQuantity < 0 {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: bucket %s/%s has negative quantity",
			ErrInvalidUsage, bucket.Key.EntityKey, bucket.Key.ResourceClass)
	}

	switch bucket.Kind {
	case domain.UsageKindCompute:
		list, billed := computeCost(bucket.TotalQuantity, rates, bucket.Key.ResourceClass)
		return list, billed, nil
	case domain.UsageKindStorage:
		list, billed := storageCost(bucket.TotalQuantity, rates)
		return list, billed, nil
	default:
		return decimal.Zero, decimal.Zero, fmt.Errorf("unsupported usage kind %q", bucket.Kind)
	}
}

// computeCost prices service units. Billed cost derives from the already
// rounded list cost, so a full subsidy always lands on exactly 0.00 and the
// billed amount can never exceed the list amount.
// decimal.Round rounds half away from zero, which is half-up for the
// non-negative amounts produced here.
func computeCost(quantity float64, rates domain.RateConfig, class string) (decimal.Decimal, decimal.Decimal) {
	rate := decimal.NewFromFloat(rates.BaseRate)
	list := decimal.NewFromFloat(quantity).Mul(rate).Round(2)

	subsidy := decimal.Zero
	if mod, ok := rates.Modifier(class); ok {
		subsidy = decimal.NewFromFloat(mod.SubsidyPercent)
	}
	billed := list.Mul(decimal.NewFromInt(1).Sub(subsidy.Div(hundred))).Round(2)

	return list, billed
}

// storageCost prices bytes at a per-TB rate. List cost covers the full
// usage; billed cost only the usage above the free allowance, which applies
// at the GB level before pricing.
func storageCost(quantity float64, rates domain.RateConfig) (decimal.Decimal, decimal.Decimal) {
	rate := decimal.NewFromFloat(rates.BaseRate)
	size := decimal.NewFromFloat(quantity)

	usageTB := size.Div(decimal.NewFromInt(bytesPerTB))
	list := usageTB.Mul(rate).Round(2)

	usageGB := size.Div(decimal.NewFromInt(bytesPerGB))
	billableGB := usageGB.Sub(decimal.NewFromFloat(rates.FreeAllowanceGB))
	if billableGB.IsNegative() {
		billableGB = decimal.Zero
	}
	billed := billableGB.Div(gbPerTB).Mul(rate).Round(2)

	return list, billed
}
