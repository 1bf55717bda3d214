package adapters

import (
	"slices"

	"github.com/rc-tools/cost-ledger/pkg/models/api"
	"github.com/rc-tools/cost-ledger/pkg/models/domain"
	"github.com/rc-tools/cost-ledger/pkg/models/store"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

func MapPeriodDomainToApi(p domain.Period) api.Period {
	return api.Period{
		Month: p.Month(),
		Start: p.Start.Format(dateLayout),
		End:   p.End.Format(dateLayout),
	}
}

func MapFocusRecordDomainToApi(rec domain.FocusRecord) api.FocusRecord {
	return api.FocusRecord{
		BillingPeriodStart: rec.BillingPeriodStart.Format(dateLayout),
		BillingPeriodEnd:   rec.BillingPeriodEnd.Format(dateLayout),
		ChargePeriodStart:  rec.ChargePeriodStart.Format(dateLayout),
		ChargePeriodEnd:    rec.ChargePeriodEnd.Format(dateLayout),
		ListCost:           rec.ListCost.StringFixed(2),
		BilledCost:         rec.BilledCost.StringFixed(2),
		ResourceID:         rec.ResourceID,
		ResourceName:       rec.ResourceName,
		ServiceName:        rec.ServiceName,
		Tags: api.Tags{
			PIEmail:   rec.Tags.PIEmail,
			ProjectID: rec.Tags.ProjectID,
			FundOrg:   rec.Tags.FundOrg,
		},
	}
}

func MapRecordDetailDomainToApi(d domain.RecordDetail) api.RecordDetail {
	return api.RecordDetail{
		Record:        MapFocusRecordDomainToApi(d.Record),
		Kind:          string(d.Kind),
		TotalQuantity: d.TotalQuantity,
		RecordCount:   d.RecordCount,
	}
}

func MapWarningDomainToApi(w domain.Warning) api.Warning {
	return api.Warning{
		Kind:    string(w.Kind),
		Message: w.Message,
	}
}

func MapRunSummaryDomainToApi(s domain.RunSummary) api.RunSummary {
	summary := api.RunSummary{
		TotalListCost:      s.TotalListCost.StringFixed(2),
		TotalBilledCost:    s.TotalBilledCost.StringFixed(2),
		TotalSubsidyAmount: s.TotalSubsidyAmount.StringFixed(2),
		ProcessedCount:     s.ProcessedCount,
		SkippedCount:       s.SkippedCount,
		UnknownEntityKeys:  []string{},
	}

	if len(s.UnknownEntityKeys) > 0 {
		summary.UnknownEntityKeys = slices.Clone(s.UnknownEntityKeys)
	}
	for _, w := range s.Warnings {
		summary.Warnings = append(summary.Warnings, MapWarningDomainToApi(w))
	}
	return summary
}

func MapRunDomainToApi(run domain.Run) api.Run {
	return api.Run{
		ID:          run.ID,
		Source:      run.Source,
		ServiceName: run.ServiceName,
		Period:      MapPeriodDomainToApi(run.Period),
		GeneratedAt: run.GeneratedAt,
		Summary:     MapRunSummaryDomainToApi(run.Summary),
	}
}

func MapRunDomainToStore(run domain.Run) store.Run {
	rec := store.Run{
		ID:                 run.ID,
		Source:             run.Source,
		ServiceName:        run.ServiceName,
		PeriodStart:        run.Period.Start,
		PeriodEnd:          run.Period.End,
		GeneratedAt:        run.GeneratedAt,
		TotalListCost:      run.Summary.TotalListCost.InexactFloat64(),
		TotalBilledCost:    run.Summary.TotalBilledCost.InexactFloat64(),
		TotalSubsidyAmount: run.Summary.TotalSubsidyAmount.InexactFloat64(),
		ProcessedCount:     run.Summary.ProcessedCount,
		SkippedCount:       run.Summary.SkippedCount,
		UnknownEntityKeys:  slices.Clone(run.Summary.UnknownEntityKeys),
	}
	for _, w := range run.Summary.Warnings {
		rec.Warnings = append(rec.Warnings, store.RunWarning{Kind: string(w.Kind), Message: w.Message})
	}
	return rec
}

func MapStoreRunToDomain(rec store.Run) domain.Run {
	summary := domain.RunSummary{
		TotalListCost:      decimal.NewFromFloat(rec.TotalListCost),
		TotalBilledCost:    decimal.NewFromFloat(rec.TotalBilledCost),
		TotalSubsidyAmount: decimal.NewFromFloat(rec.TotalSubsidyAmount),
		ProcessedCount:     rec.ProcessedCount,
		SkippedCount:       rec.SkippedCount,
		UnknownEntityKeys:  slices.Clone(rec.UnknownEntityKeys),
	}
	for _, w := range rec.Warnings {
		summary.Warnings = append(summary.Warnings, domain.Warning{
			Kind:    domain.WarningKind(w.Kind),
			Message: w.Message,
		})
	}

	return domain.Run{
		ID:          rec.ID,
		Source:      rec.Source,
		ServiceName: rec.ServiceName,
		Period:      domain.Period{Start: rec.PeriodStart, End: rec.PeriodEnd},
		GeneratedAt: rec.GeneratedAt,
		Summary:     summary,
	}
}

func MapFocusRecordDomainToStore(runID string, rec domain.FocusRecord) store.FocusRecord {
	return store.FocusRecord{
		RunID:              runID,
		BillingPeriodStart: rec.BillingPeriodStart,
		BillingPeriodEnd:   rec.BillingPeriodEnd,
		ChargePeriodStart:  rec.ChargePeriodStart,
		ChargePeriodEnd:    rec.ChargePeriodEnd,
		ListCost:           rec.ListCost.InexactFloat64(),
		BilledCost:         rec.BilledCost.InexactFloat64(),
		ResourceID:         rec.ResourceID,
		ResourceName:       rec.ResourceName,
		ServiceName:        rec.ServiceName,
		Tags: map[string]string{
			"pi_email":   rec.Tags.PIEmail,
			"project_id": rec.Tags.ProjectID,
			"fund_org":   rec.Tags.FundOrg,
		},
	}
}

func MapStoreFocusRecordToDomain(rec store.FocusRecord) domain.FocusRecord {
	return domain.FocusRecord{
		BillingPeriodStart: rec.BillingPeriodStart,
		BillingPeriodEnd:   rec.BillingPeriodEnd,
		ChargePeriodStart:  rec.ChargePeriodStart,
		ChargePeriodEnd:    rec.ChargePeriodEnd,
		ListCost:           decimal.NewFromFloat(rec.ListCost),
		BilledCost:         decimal.NewFromFloat(rec.BilledCost),
		ResourceID:         rec.ResourceID,
		ResourceName:       rec.ResourceName,
		ServiceName:        rec.ServiceName,
		Tags: domain.Tags{
			PIEmail:   rec.Tags["pi_email"],
			ProjectID: rec.Tags["project_id"],
			FundOrg:   rec.Tags["fund_org"],
		},
	}
}
