package isilon

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rc-tools/cost-ledger/pkg/models/domain"
	"github.com/rc-tools/cost-ledger/pkg/services/config"
	"github.com/rc-tools/cost-ledger/pkg/services/ingest"
)

// ResourceClass is the single resource class storage usage bills under.
const ResourceClass = "storage"

type quotaSnapshot struct {
	Quotas []quotaEntry `json:"quotas"`
}

type quotaEntry struct {
	Path  string     `json:"path"`
	Usage quotaUsage `json:"usage"`
}

// quotaUsage mirrors the quota export's usage block. Different OneFS
// releases populate different fields, so the first non-null one wins.
type quotaUsage struct {
	Logical  *float64 `json:"logical"`
	Physical *float64 `json:"physical"`
	Generic  *float64 `json:"usage"`
}

func (u quotaUsage) bytes() (float64, bool) {
	for _, v := range []*float64{u.Logical, u.Physical, u.Generic} {
		if v != nil {
			return *v, true
		}
	}
	return 0, false
}

// Source reads storage usage from a quota snapshot export.
type Source struct {
	name  string
	input string
}

func NewFromProfile(profile config.SourceProfile) (ingest.Source, error) {
	if profile.Input == "" {
		return nil, fmt.Errorf("profile %s needs a quota snapshot input file", profile.Name)
	}
	return &Source{name: profile.Name, input: profile.Input}, nil
}

func (s *Source) Name() string {
	return s.name
}

func (s *Source) Kind() domain.UsageKind {
	return domain.UsageKindStorage
}

func (s *Source) Collect(_ context.Context, _ domain.Period, _ domain.RateConfig) (*domain.IngestResult, error) {
	data, err := os.ReadFile(s.input)
	if err != nil {
		return nil, fmt.Errorf("failed to read quota snapshot: %w", err)
	}

	var snapshot quotaSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to parse quota snapshot: %w", err)
	}

	res := &domain.IngestResult{}
	for _, quota := range snapshot.Quotas {
		if quota.Path == "" {
			res.Skipped++
			res.Warnings = append(res.Warnings, domain.Warning{
				Kind:    domain.WarningInvalidUsage,
				Message: "quota entry has no path",
			})
			continue
		}

		size, ok := quota.Usage.bytes()
		if !ok || size == 0 {
			// Empty and unreported quotas are not billable, and not an error.
			res.Skipped++
			continue
		}
		if size < 0 {
			res.Skipped++
			res.Warnings = append(res.Warnings, domain.Warning{
				Kind:    domain.WarningInvalidUsage,
				Message: fmt.Sprintf("quota %s reports negative usage", quota.Path),
			})
			continue
		}

		res.Records = append(res.Records, domain.UsageRecord{
			EntityKey:     quota.Path,
			ResourceClass: ResourceClass,
			Quantity:      size,
			Kind:          domain.UsageKindStorage,
		})
	}

	return res, nil
}
