package config

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"insurance_quotes/internal/domain/entities"
	"insurance_quotes/internal/platform/logger"
	"insurance_quotes/internal/provider"
	"insurance_quotes/internal/usecase/interfaces"
)

// ProviderEntry is one roster line: the public profile plus the variant
// settings used to build the integration. Settings values may reference
// environment variables as ${NAME}.
type ProviderEntry struct {
	entities.ProviderProfile `yaml:",inline"`
	Settings                 map[string]string `yaml:"settings"`
}

type rosterFile struct {
	Providers []ProviderEntry `yaml:"providers"`
}

// LoadRoster reads the roster file, or returns the demo roster when path is
// empty.
func LoadRoster(path string) ([]ProviderEntry, error) {
	if path == "" {
		return DemoRoster(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read roster %s: %w", path, err)
	}
	return ParseRoster(raw)
}

func ParseRoster(raw []byte) ([]ProviderEntry, error) {
	var file rosterFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse roster: %w", err)
	}

	seen := map[string]struct{}{}
	for i := range file.Providers {
		e := &file.Providers[i]
		e.Code = strings.TrimSpace(e.Code)
		if e.Code == "" {
			return nil, fmt.Errorf("roster entry %d: code is required", i)
		}
		if _, dup := seen[e.Code]; dup {
			return nil, fmt.Errorf("roster entry %d: duplicate code %q", i, e.Code)
		}
		seen[e.Code] = struct{}{}
		if e.Variant == "" {
			return nil, fmt.Errorf("provider %s: variant is required", e.Code)
		}
		if e.Name == "" {
			e.Name = e.Code
		}
		for k, v := range e.Settings {
			e.Settings[k] = os.ExpandEnv(v)
		}
	}
	return file.Providers, nil
}

// DemoRoster is a set of mock insurers for local runs.
func DemoRoster() []ProviderEntry {
	rating := func(v float64) *float64 { return &v }
	speed := func(v int64) *int64 { return &v }
	return []ProviderEntry{
		{
			ProviderProfile: entities.ProviderProfile{Code: "anadolu-demo", Name: "Anadolu Demo", Variant: "mock", Categories: []string{"traffic", "kasko"}, Rating: rating(4.5), AvgResponseMs: speed(900), Enabled: true},
			Settings:        map[string]string{"base_price": "1450", "latency": "400ms"},
		},
		{
			ProviderProfile: entities.ProviderProfile{Code: "axa-demo", Name: "AXA Demo", Variant: "mock", Categories: []string{"traffic", "kasko", "health"}, Rating: rating(4.1), AvgResponseMs: speed(1800), Enabled: true},
			Settings:        map[string]string{"base_price": "1300", "latency": "1200ms"},
		},
		{
			ProviderProfile: entities.ProviderProfile{Code: "allianz-demo", Name: "Allianz Demo", Variant: "mock", Categories: []string{"traffic"}, Enabled: true},
			Settings:        map[string]string{"base_price": "1600", "latency": "700ms", "failure_ratio": "0.2"},
		},
		{
			ProviderProfile: entities.ProviderProfile{Code: "sompo-demo", Name: "Sompo Demo", Variant: "mock", Categories: []string{"kasko"}, Enabled: false},
			Settings:        map[string]string{"base_price": "2100"},
		},
	}
}

// Roster serves the loaded profiles. It is immutable after construction.
type Roster struct {
	profiles []entities.ProviderProfile
}

var _ interfaces.IProviderRoster = (*Roster)(nil)

func NewRoster(entries []ProviderEntry) *Roster {
	profiles := make([]entities.ProviderProfile, 0, len(entries))
	for _, e := range entries {
		profiles = append(profiles, e.ProviderProfile)
	}
	sort.Slice(profiles, func(i, j int) bool { return profiles[i].Code < profiles[j].Code })
	return &Roster{profiles: profiles}
}

func (r *Roster) List(context.Context) ([]entities.ProviderProfile, error) {
	return append([]entities.ProviderProfile(nil), r.profiles...), nil
}

func (r *Roster) ListEnabled(_ context.Context, category string) ([]entities.ProviderProfile, error) {
	out := make([]entities.ProviderProfile, 0, len(r.profiles))
	for _, p := range r.profiles {
		if p.Enabled && p.Supports(category) {
			out = append(out, p)
		}
	}
	return out, nil
}

// BuildCatalog builds a factory for every enabled entry. A disabled entry is
// skipped; a broken enabled entry fails startup.
func BuildCatalog(reg *provider.Registry, entries []ProviderEntry, log *logger.Logger) (*provider.Catalog, error) {
	if log == nil {
		log = logger.NewNop()
	}
	catalog := provider.NewCatalog()
	for _, e := range entries {
		if !e.Enabled {
			log.Info("provider disabled, not built", "provider", e.Code)
			continue
		}
		factory, err := reg.Build(e.Code, e.Variant, e.Settings)
		if err != nil {
			return nil, err
		}
		catalog.Add(e.Code, factory)
	}
	return catalog, nil
}
