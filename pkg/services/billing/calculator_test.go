package billing

import (
	"testing"

	"github.com/rc-tools/cost-ledger/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const gib = float64(1 << 30)

func computeRates(subsidy float64) domain.RateConfig {
	return domain.RateConfig{
		ServiceName: "HPC Compute",
		Currency:    "USD",
		BaseRate:    0.01,
		Modifiers: map[string]domain.ClassModifier{
			"gpu":      {Multiplier: 20, SubsidyPercent: subsidy, Description: "GPU"},
			"standard": {Multiplier: 1},
		},
	}
}

func storageRates() domain.RateConfig {
	return domain.RateConfig{
		ServiceName:     "Research Storage",
		Currency:        "USD",
		BaseRate:        10,
		FreeAllowanceGB: 500,
	}
}

func computeBucket(class string, quantity float64) domain.AggregationBucket {
	return domain.AggregationBucket{
		Key:           domain.BucketKey{EntityKey: "chem-lab", ResourceClass: class},
		Kind:          domain.UsageKindCompute,
		TotalQuantity: quantity,
	}
}

func storageBucket(quantity float64) domain.AggregationBucket {
	return domain.AggregationBucket{
		Key:           domain.BucketKey{EntityKey: "/ifs/projects/chem", ResourceClass: "storage"},
		Kind:          domain.UsageKindStorage,
		TotalQuantity: quantity,
	}
}

func TestCost_Compute(t *testing.T) {
	tests := []struct {
		name   string
		bucket domain.AggregationBucket
		rates  domain.RateConfig
		list   string
		billed string
	}{
		{
			// 4 CPUs for 10 hours on a 20x partition fold into 800 units.
			name:   "multiplier adjusted units price at the base rate",
			bucket: computeBucket("gpu", 800),
			rates:  computeRates(0),
			list:   "8.00",
			billed: "8.00",
		},
		{
			name:   "full subsidy zeroes the billed cost",
			bucket: computeBucket("gpu", 800),
			rates:  computeRates(100),
			list:   "8.00",
			billed: "0.00",
		},
		{
			name:   "partial subsidy discounts the rounded list cost",
			bucket: computeBucket("gpu", 1000),
			rates:  computeRates(25),
			list:   "10.00",
			billed: "7.50",
		},
		{
			name:   "class without a modifier bills at list",
			bucket: computeBucket("mystery", 50),
			rates:  computeRates(100),
			list:   "0.50",
			billed: "0.50",
		},
		{
			name:   "fractional cost rounds half up",
			bucket: computeBucket("standard", 0.5),
			rates:  computeRates(0),
			list:   "0.01",
			billed: "0.01",
		},
		{
			name:   "zero quantity is free",
			bucket: computeBucket("standard", 0),
			rates:  computeRates(0),
			list:   "0.00",
			billed: "0.00",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			list, billed, err := Cost(tc.bucket, tc.rates)
			require.NoError(t, err)
			assert.Equal(t, tc.list, list.StringFixed(2))
			assert.Equal(t, tc.billed, billed.StringFixed(2))
		})
	}
}

func TestCost_Storage(t *testing.T) {
	tests := []struct {
		name   string
		bucket domain.AggregationBucket
		rates  domain.RateConfig
		list   string
		billed string
	}{
		{
			// 1536 GB is 1.5 TB; 1036 GB sit above the 500 GB allowance.
			name:   "usage above the allowance bills the excess",
			bucket: storageBucket(1536 * gib),
			rates:  storageRates(),
			list:   "15.00",
			billed: "10.12",
		},
		{
			name:   "usage below the allowance bills nothing",
			bucket: storageBucket(400 * gib),
			rates:  storageRates(),
			list:   "3.91",
			billed: "0.00",
		},
		{
			name:   "usage exactly at the allowance bills nothing",
			bucket: storageBucket(500 * gib),
			rates:  storageRates(),
			list:   "4.88",
			billed: "0.00",
		},
		{
			name: "no allowance bills the full usage",
			bucket: storageBucket(1536 * gib),
			rates: domain.RateConfig{
				ServiceName: "Research Storage",
				BaseRate:    10,
			},
			list:   "15.00",
			billed: "15.00",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			list, billed, err := Cost(tc.bucket, tc.rates)
			require.NoError(t, err)
			assert.Equal(t, tc.list, list.StringFixed(2))
			assert.Equal(t, tc.billed, billed.StringFixed(2))
		})
	}
}

func TestCost_NegativeQuantity(t *testing.T) {
	_, _, err := Cost(computeBucket("gpu", -1), computeRates(0))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidUsage)
}

func TestCost_UnsupportedKind(t *testing.T) {
	bucket := domain.AggregationBucket{
		Key:           domain.BucketKey{EntityKey: "chem-lab", ResourceClass: "network"},
		Kind:          domain.UsageKind("network"),
		TotalQuantity: 1,
	}

	_, _, err := Cost(bucket, computeRates(0))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported usage kind")
}

func TestCost_BilledNeverExceedsList(t *testing.T) {
	quantities := []float64{0, 0.5, 1, 333.33, 800, 123456.789}
	subsidies := []float64{0, 12.5, 33.33, 50, 99.99, 100}

	for _, q := range quantities {
		for _, s := range subsidies {
			list, billed, err := Cost(computeBucket("gpu", q), computeRates(s))
			require.NoError(t, err)
			assert.True(t, billed.LessThanOrEqual(list),
				"quantity %v subsidy %v: billed %s exceeds list %s", q, s, billed, list)
			assert.False(t, billed.IsNegative())
		}
	}

	for _, q := range []float64{0, 10 * gib, 500 * gib, 1536 * gib, 5000 * gib} {
		list, billed, err := Cost(storageBucket(q), storageRates())
		require.NoError(t, err)
		assert.True(t, billed.LessThanOrEqual(list),
			"quantity %v: billed %s exceeds list %s", q, billed, list)
		assert.False(t, billed.IsNegative())
	}
}
