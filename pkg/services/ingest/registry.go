package ingest

import (
	"fmt"
	"sync"

	"github.com/rc-tools/cost-ledger/pkg/services/config"
)

// SourceFactory is a function type that creates a Source from a profile
type SourceFactory func(profile config.SourceProfile) (Source, error)

// Registry manages source factories keyed by source type
type Registry interface {
	// Register adds a new source factory
	Register(sourceType string, factory SourceFactory) error
	// Create instantiates a source for the profile's type
	Create(profile config.SourceProfile) (Source, error)
	// ListTypes returns a list of registered source types
	ListTypes() []string
}

type registry struct {
	mu        sync.RWMutex
	factories map[string]SourceFactory
}

// NewRegistry creates a new source registry
func NewRegistry() Registry {
	return &registry{
		factories: make(map[string]SourceFactory),
	}
}

func (r *registry) Register(sourceType string, factory SourceFactory) error {
	if sourceType == "" {
		return fmt.Errorf("source type cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[sourceType]; exists {
		return fmt.Errorf("source type %q is already registered", sourceType)
	}

	r.factories[sourceType] = factory
	return nil
}

func (r *registry) Create(profile config.SourceProfile) (Source, error) {
	r.mu.RLock()
	factory, exists := r.factories[profile.Type]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("source type %q is not registered", profile.Type)
	}

	return factory(profile)
}

func (r *registry) ListTypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.factories))
	for sourceType := range r.factories {
		types = append(types, sourceType)
	}
	return types
}
