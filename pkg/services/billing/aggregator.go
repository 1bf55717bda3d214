package billing

import (
	"context"
	"fmt"
	"sort"

	"github.com/rc-tools/cost-ledger/pkg/models/domain"
	"github.com/rc-tools/cost-ledger/pkg/services/metadata"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Aggregate folds usage records into (entity, resource class) buckets,
// prices each bucket exactly once, and emits focus records in sorted bucket
// order so the same input and configuration always produce the same
// artifact. Summary totals are sums of the individually rounded per-record
// costs, keeping them equal to what the emitted records add up to.
func Aggregate(ctx context.Context, records []domain.UsageRecord, rates domain.RateConfig, resolver *metadata.Resolver, period domain.Period) (*domain.RunResult, error) {
	logger := zerolog.Ctx(ctx)

	buckets := make(map[domain.BucketKey]*domain.AggregationBucket)
	summary := domain.RunSummary{
		TotalListCost:   decimal.Zero,
		TotalBilledCost: decimal.Zero,
	}

	for _, rec := range records {
		if rates.IsExcluded(rec.EntityKey) {
			summary.SkippedCount++
			continue
		}
		if rec.Quantity < 0 {
			summary.SkippedCount++
			summary.Warnings = append(summary.Warnings, domain.Warning{
				Kind:    domain.WarningInvalidUsage,
				Message: fmt.Sprintf("entity %s: negative quantity %v", rec.EntityKey, rec.Quantity),
			})
			continue
		}

		key := domain.BucketKey{EntityKey: rec.EntityKey, ResourceClass: rec.ResourceClass}
		bucket, ok := buckets[key]
		if !ok {
			bucket = &domain.AggregationBucket{Key: key, Kind: rec.Kind}
			buckets[key] = bucket
		}
		bucket.TotalQuantity += rec.Quantity
		bucket.RecordCount++
		summary.ProcessedCount++
	}

	keys := make([]domain.BucketKey, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].EntityKey != keys[j].EntityKey {
			return keys[i].EntityKey < keys[j].EntityKey
		}
		return keys[i].ResourceClass < keys[j].ResourceClass
	})

	result := &domain.RunResult{Period: period}
	for _, key := range keys {
		bucket := buckets[key]

		list, billed, err := Cost(*bucket, rates)
		if err != nil {
			return nil, fmt.Errorf("failed to price bucket %s/%s: %w", key.EntityKey, key.ResourceClass, err)
		}

		meta, known := resolver.Resolve(key.EntityKey)
		if !known {
			logger.Debug().
				Str("entity", key.EntityKey).
				Msg("entity missing from metadata, billing with fallback identifiers")
		}

		result.Details = append(result.Details, domain.RecordDetail{
			Record:        buildFocusRecord(*bucket, rates, meta, period, list, billed),
			Kind:          bucket.Kind,
			TotalQuantity: bucket.TotalQuantity,
			RecordCount:   bucket.RecordCount,
		})

		summary.TotalListCost = summary.TotalListCost.Add(list)
		summary.TotalBilledCost = summary.TotalBilledCost.Add(billed)
	}

	summary.TotalSubsidyAmount = summary.TotalListCost.Sub(summary.TotalBilledCost)
	summary.UnknownEntityKeys = resolver.UnknownEntityKeys()
	result.Summary = summary

	return result, nil
}

func buildFocusRecord(bucket domain.AggregationBucket, rates domain.RateConfig, meta domain.MetadataRecord, period domain.Period, list, billed decimal.Decimal) domain.FocusRecord {
	class := bucket.Key.ResourceClass

	serviceName := rates.ServiceName
	resourceName := fmt.Sprintf("%s (%s)", bucket.Key.EntityKey, class)
	if mod, ok := rates.Modifier(class); ok && mod.Description != "" {
		serviceName = fmt.Sprintf("%s - %s", rates.ServiceName, mod.Description)
		resourceName = fmt.Sprintf("%s (%s)", bucket.Key.EntityKey, mod.Description)
	}

	return domain.FocusRecord{
		BillingPeriodStart: period.Start,
		BillingPeriodEnd:   period.End,
		ChargePeriodStart:  period.Start,
		ChargePeriodEnd:    period.End,
		ListCost:           list,
		BilledCost:         billed,
		ResourceID:         fmt.Sprintf("%s:%s", bucket.Key.EntityKey, class),
		ResourceName:       resourceName,
		ServiceName:        serviceName,
		Tags: domain.Tags{
			PIEmail:   meta.PIEmail,
			ProjectID: meta.ProjectID,
			FundOrg:   meta.FundOrg,
		},
	}
}
