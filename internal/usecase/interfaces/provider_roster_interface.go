package interfaces

import (
	"context"

	"insurance_quotes/internal/domain/entities"
	"insurance_quotes/internal/provider"
)

// IProviderRoster exposes the externally maintained provider profiles.
// List returns every profile, enabled or not, so that quotes from a provider
// disabled after dispatch can still be scored.
type IProviderRoster interface {
	List(ctx context.Context) ([]entities.ProviderProfile, error)
	ListEnabled(ctx context.Context, category string) ([]entities.ProviderProfile, error)
}

// IProviderCatalog resolves a provider code to a factory of fresh instances.
// *provider.Catalog satisfies it.
type IProviderCatalog interface {
	Lookup(code string) (provider.Factory, bool)
}
