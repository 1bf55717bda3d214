package domain

// MetadataRecord holds the ownership attributes attached to every billed
// entity. All three fields are populated for a known entity.
type MetadataRecord struct {
	PIEmail   string
	ProjectID string
	FundOrg   string
}
