package config

import (
	"context"
	"fmt"

	"gopkg.in/ini.v1"
)

// SourceProfile describes one named usage source from the profiles file.
// Input points at a saved export; Command runs the accounting tool directly.
// A slurm profile needs one of the two, an isilon profile needs Input.
type SourceProfile struct {
	Name    string
	Type    string
	Service string
	Input   string
	Command string
	States  []string
}

type Registry interface {
	GetProfiles(ctx context.Context) ([]string, error)
	GetProfile(ctx context.Context, name string) (SourceProfile, error)
}

type profileRegistry struct {
	cfg *ini.File
}

func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load profiles file: %w", err)
	}
	return &profileRegistry{cfg: cfg}, nil
}

func (pr *profileRegistry) GetProfiles(_ context.Context) ([]string, error) {
	var profiles []string
	for _, section := range pr.cfg.Sections() {
		if len(section.Keys()) > 0 {
			profiles = append(profiles, section.Name())
		}
	}
	return profiles, nil
}

func (pr *profileRegistry) GetProfile(_ context.Context, name string) (SourceProfile, error) {
	section, err := pr.cfg.GetSection(name)
	if err != nil {
		return SourceProfile{}, fmt.Errorf("profile %s not found", name)
	}

	profile := SourceProfile{
		Name:    name,
		Type:    section.Key("type").String(),
		Service: section.Key("service").String(),
		Input:   section.Key("input").String(),
		Command: section.Key("command").String(),
		States:  section.Key("states").Strings(","),
	}

	if profile.Type == "" {
		return SourceProfile{}, fmt.Errorf("profile %s has no source type", name)
	}
	if profile.Service == "" {
		return SourceProfile{}, fmt.Errorf("profile %s has no service", name)
	}
	return profile, nil
}
