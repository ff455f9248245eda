package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ ReferenceResolver = (*RepositoryResolver)(nil)

// RepositoryResolver resuelve materiales y ubicaciones contra los repositorios de datos maestros.
type RepositoryResolver struct {
	materials repository.MaterialRepository
	locations repository.LocationRepository
}

// NewRepositoryResolver construye el resolver.
func NewRepositoryResolver(materials repository.MaterialRepository, locations repository.LocationRepository) *RepositoryResolver {
	return &RepositoryResolver{materials: materials, locations: locations}
}

// ResolveMaterial obtiene el material o domain.ErrMaterialNotFound.
func (r *RepositoryResolver) ResolveMaterial(ctx context.Context, materialID string) (*entity.Material, error) {
	m, err := r.materials.GetByID(ctx, materialID)
	if err != nil {
		return nil, fmt.Errorf("resolve material %s: %w", materialID, err)
	}
	if m == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrMaterialNotFound, materialID)
	}
	return m, nil
}

// ResolveLocation obtiene la ubicación o domain.ErrLocationNotFound.
func (r *RepositoryResolver) ResolveLocation(ctx context.Context, locationID string) (*entity.Location, error) {
	l, err := r.locations.GetByID(ctx, locationID)
	if err != nil {
		return nil, fmt.Errorf("resolve location %s: %w", locationID, err)
	}
	if l == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrLocationNotFound, locationID)
	}
	return l, nil
}
