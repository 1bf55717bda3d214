package domain

import "slices"

// ClassModifier adjusts pricing for one resource class: a service-unit
// multiplier (e.g. GPU partitions bill at 20x), an optional subsidy, and a
// human readable description used in service names.
type ClassModifier struct {
	Multiplier     float64
	SubsidyPercent float64
	Description    string
}

// RateConfig is the static pricing configuration for one billed service.
type RateConfig struct {
	ServiceName      string
	Currency         string
	BaseRate         float64
	Modifiers        map[string]ClassModifier
	FreeAllowanceGB  float64
	ExcludedEntities []string
}

// Modifier looks up the class modifier for a resource class. The second
// return reports whether the class is configured; callers fall back to a
// neutral multiplier of 1 when it is not.
func (rc RateConfig) Modifier(class string) (ClassModifier, bool) {
	m, ok := rc.Modifiers[class]
	return m, ok
}

func (rc RateConfig) IsExcluded(entityKey string) bool {
	return slices.Contains(rc.ExcludedEntities, entityKey)
}
