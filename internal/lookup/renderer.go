package lookup

import (
	"context"

	"country-explorer/internal/models"
)

// Renderer receives the visible side effects of a lookup. Implementations are
// called with the controller lock held; they must return without waiting on
// I/O and must not call back into the Controller.
type Renderer interface {
	Render(country models.Country)
	RenderNeighbors(neighbors []models.Country)
	HideNeighbors()
	RenderError(message string)
	SetLoading(loading bool)
	ClearResults()
}

// CountrySource is the part of the country repository the controller needs.
type CountrySource interface {
	ResolveByName(ctx context.Context, name string) (*models.Country, error)
	ResolveByCodes(ctx context.Context, codes []string) ([]models.Country, error)
	ListAllNames(ctx context.Context) ([]string, error)
	ListRegionNames(ctx context.Context, region string) ([]string, error)
}
