package metadata

import (
	"regexp"
	"strings"

	"github.com/rc-tools/cost-ledger/pkg/models/domain"
)

var sanitizePattern = regexp.MustCompile(`[^a-z0-9]+`)

// Resolver maps entity keys to their ownership metadata. Lookups never fail:
// an entity missing from the map resolves to fallback identifiers and is
// remembered once, in first-seen order, for the review list.
type Resolver struct {
	records map[string]domain.MetadataRecord
	seen    map[string]struct{}
	unknown []string
}

func NewResolver(records map[string]domain.MetadataRecord) *Resolver {
	return &Resolver{
		records: records,
		seen:    make(map[string]struct{}),
	}
}

// Resolve returns the metadata for an entity key. The second return reports
// whether the entity was found in the map.
func (r *Resolver) Resolve(entityKey string) (domain.MetadataRecord, bool) {
	if rec, ok := r.records[entityKey]; ok {
		return rec, true
	}

	if _, dup := r.seen[entityKey]; !dup {
		r.seen[entityKey] = struct{}{}
		r.unknown = append(r.unknown, entityKey)
	}

	return domain.MetadataRecord{ProjectID: Sanitize(entityKey)}, false
}

// UnknownEntityKeys returns every entity key that missed the map, each once,
// in the order first encountered.
func (r *Resolver) UnknownEntityKeys() []string {
	return r.unknown
}

// Sanitize turns an arbitrary entity key into a safe project identifier:
// lowercased, runs of anything outside [a-z0-9] collapsed to single hyphens,
// no leading or trailing hyphen.
func Sanitize(entityKey string) string {
	s := sanitizePattern.ReplaceAllString(strings.ToLower(entityKey), "-")
	return strings.Trim(s, "-")
}
