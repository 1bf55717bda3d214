package config

import (
	"fmt"

	"github.com/rc-tools/cost-ledger/pkg/models/domain"
	"github.com/spf13/viper"
)

type MetadataFile struct {
	Entities map[string]MetadataEntry `mapstructure:"entities"`
}

type MetadataEntry struct {
	PIEmail   string `mapstructure:"pi_email"`
	ProjectID string `mapstructure:"project_id"`
	FundOrg   string `mapstructure:"fund_org"`
}

// LoadMetadata reads the entity metadata map. Every listed entity must carry
// all three ownership attributes; a partial entry is a configuration error,
// not an unknown entity.
func LoadMetadata(path string) (map[string]domain.MetadataRecord, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read metadata file: %w", err)
	}

	var file MetadataFile
	if err := v.Unmarshal(&file); err != nil {
		return nil, fmt.Errorf("failed to parse metadata file: %w", err)
	}

	records := make(map[string]domain.MetadataRecord, len(file.Entities))
	for key, entry := range file.Entities {
		if entry.PIEmail == "" || entry.ProjectID == "" || entry.FundOrg == "" {
			return nil, fmt.Errorf("metadata entry %q is incomplete: pi_email, project_id and fund_org are all required", key)
		}
		records[key] = domain.MetadataRecord{
			PIEmail:   entry.PIEmail,
			ProjectID: entry.ProjectID,
			FundOrg:   entry.FundOrg,
		}
	}
	return records, nil
}
