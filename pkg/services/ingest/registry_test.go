package ingest

import (
	"context"
	"fmt"
	"testing"

	"github.com/rc-tools/cost-ledger/pkg/models/domain"
	"github.com/rc-tools/cost-ledger/pkg/services/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	name string
}

func (s *stubSource) Name() string           { return s.name }
func (s *stubSource) Kind() domain.UsageKind { return domain.UsageKindCompute }
func (s *stubSource) Collect(context.Context, domain.Period, domain.RateConfig) (*domain.IngestResult, error) {
	return &domain.IngestResult{}, nil
}

func stubFactory(profile config.SourceProfile) (Source, error) {
	return &stubSource{name: profile.Name}, nil
}

func TestRegistry_Register(t *testing.T) {
	registry := NewRegistry()

	require.NoError(t, registry.Register("slurm", stubFactory))

	t.Run("error - empty type", func(t *testing.T) {
		assert.Error(t, registry.Register("", stubFactory))
	})

	t.Run("error - nil factory", func(t *testing.T) {
		assert.Error(t, registry.Register("isilon", nil))
	})

	t.Run("error - duplicate type", func(t *testing.T) {
		err := registry.Register("slurm", stubFactory)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already registered")
	})
}

func TestRegistry_Create(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Register("slurm", stubFactory))

	t.Run("dispatches to the registered factory", func(t *testing.T) {
		src, err := registry.Create(config.SourceProfile{Name: "cluster", Type: "slurm"})
		require.NoError(t, err)
		assert.Equal(t, "cluster", src.Name())
	})

	t.Run("error - unregistered type", func(t *testing.T) {
		_, err := registry.Create(config.SourceProfile{Name: "x", Type: "lustre"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), `source type "lustre" is not registered`)
	})

	t.Run("factory errors propagate", func(t *testing.T) {
		require.NoError(t, registry.Register("broken", func(config.SourceProfile) (Source, error) {
			return nil, fmt.Errorf("bad profile")
		}))
		_, err := registry.Create(config.SourceProfile{Name: "x", Type: "broken"})
		assert.EqualError(t, err, "bad profile")
	})
}

func TestRegistry_ListTypes(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Register("slurm", stubFactory))
	require.NoError(t, registry.Register("isilon", stubFactory))

	assert.ElementsMatch(t, []string{"slurm", "isilon"}, registry.ListTypes())
}
