package config

import (
	"fmt"

	"github.com/rc-tools/cost-ledger/pkg/models/domain"
	"github.com/spf13/viper"
)

const DefaultCurrency = "USD"

type RatesFile struct {
	Currency string               `mapstructure:"currency"`
	Services map[string]RateEntry `mapstructure:"services"`
}

type RateEntry struct {
	Currency         string                   `mapstructure:"currency"`
	BaseRate         float64                  `mapstructure:"base_rate"`
	Modifiers        map[string]ModifierEntry `mapstructure:"modifiers"`
	FreeAllowanceGB  float64                  `mapstructure:"free_allowance_gb"`
	ExcludedEntities []string                 `mapstructure:"excluded_entities"`
}

type ModifierEntry struct {
	Multiplier     float64 `mapstructure:"multiplier"`
	SubsidyPercent float64 `mapstructure:"subsidy_percent"`
	Description    string  `mapstructure:"description"`
}

// LoadRates reads the rates file and returns the pricing configuration for
// one service. Any violation of the rate invariants is fatal here, before a
// single usage record is touched.
func LoadRates(path string, service string) (domain.RateConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return domain.RateConfig{}, fmt.Errorf("failed to read rates file: %w", err)
	}

	var file RatesFile
	if err := v.Unmarshal(&file); err != nil {
		return domain.RateConfig{}, fmt.Errorf("failed to parse rates file: %w", err)
	}

	if len(file.Services) == 0 {
		return domain.RateConfig{}, fmt.Errorf("rates file %s defines no services", path)
	}

	entry, ok := file.Services[service]
	if !ok {
		return domain.RateConfig{}, fmt.Errorf("service %q not found in rates file %s", service, path)
	}

	if err := validateRateEntry(service, entry); err != nil {
		return domain.RateConfig{}, err
	}

	currency := entry.Currency
	if currency == "" {
		currency = file.Currency
	}
	if currency == "" {
		currency = DefaultCurrency
	}

	modifiers := make(map[string]domain.ClassModifier, len(entry.Modifiers))
	for class, m := range entry.Modifiers {
		modifiers[class] = domain.ClassModifier{
			Multiplier:     m.Multiplier,
			SubsidyPercent: m.SubsidyPercent,
			Description:    m.Description,
		}
	}

	return domain.RateConfig{
		ServiceName:      service,
		Currency:         currency,
		BaseRate:         entry.BaseRate,
		Modifiers:        modifiers,
		FreeAllowanceGB:  entry.FreeAllowanceGB,
		ExcludedEntities: entry.ExcludedEntities,
	}, nil
}

func validateRateEntry(service string, entry RateEntry) error {
	if entry.BaseRate < 0 {
		return fmt.Errorf("service %q: base rate cannot be negative", service)
	}
	if entry.FreeAllowanceGB < 0 {
		return fmt.Errorf("service %q: free allowance cannot be negative", service)
	}
	for class, m := range entry.Modifiers {
		if m.Multiplier < 0 {
			return fmt.Errorf("service %q: modifier %q: multiplier cannot be negative", service, class)
		}
		if m.SubsidyPercent < 0 || m.SubsidyPercent > 100 {
			return fmt.Errorf("service %q: modifier %q: subsidy percent must be between 0 and 100", service, class)
		}
	}
	return nil
}
