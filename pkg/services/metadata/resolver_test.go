package metadata

import (
	"testing"

	"github.com/rc-tools/cost-ledger/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolver_KnownEntity(t *testing.T) {
	resolver := NewResolver(map[string]domain.MetadataRecord{
		"chem-lab": {PIEmail: "pi@uni.edu", ProjectID: "chem-001", FundOrg: "ORG-1"},
	})

	rec, ok := resolver.Resolve("chem-lab")

	require.True(t, ok)
	assert.Equal(t, "pi@uni.edu", rec.PIEmail)
	assert.Equal(t, "chem-001", rec.ProjectID)
	assert.Equal(t, "ORG-1", rec.FundOrg)
	assert.Empty(t, resolver.UnknownEntityKeys())
}

func TestResolver_UnknownEntityFallsBack(t *testing.T) {
	resolver := NewResolver(nil)

	rec, ok := resolver.Resolve("Chem_Lab A")

	require.False(t, ok)
	assert.Equal(t, "chem-lab-a", rec.ProjectID)
	assert.Empty(t, rec.PIEmail)
	assert.Empty(t, rec.FundOrg)
}

func TestResolver_RemembersUnknownsOnce(t *testing.T) {
	resolver := NewResolver(map[string]domain.MetadataRecord{
		"known": {PIEmail: "pi@uni.edu", ProjectID: "p", FundOrg: "o"},
	})

	resolver.Resolve("second")
	resolver.Resolve("first")
	resolver.Resolve("second")
	resolver.Resolve("known")

	// Each unknown appears once, in the order first seen.
	assert.Equal(t, []string{"second", "first"}, resolver.UnknownEntityKeys())
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"chem-lab", "chem-lab"},
		{"Chem_Lab", "chem-lab"},
		{"UPPER123", "upper123"},
		{"  padded key  ", "padded-key"},
		{"a!!b??c", "a-b-c"},
		{"/ifs/projects/chem", "ifs-projects-chem"},
		{"---", ""},
		{"", ""},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, Sanitize(tc.in))
		})
	}
}
