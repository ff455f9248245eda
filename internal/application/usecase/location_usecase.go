package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// LocationUseCase alta y consulta de ubicaciones (centro + almacén).
type LocationUseCase struct {
	repo  repository.LocationRepository
	limit int
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(repo repository.LocationRepository, limit int) *LocationUseCase {
	return &LocationUseCase{repo: repo, limit: limit}
}

// Create registra una ubicación. El par (plant_code, storage_location) es único.
func (uc *LocationUseCase) Create(ctx context.Context, in dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	in.PlantCode = strings.TrimSpace(in.PlantCode)
	in.StorageLocation = strings.TrimSpace(in.StorageLocation)
	if in.PlantCode == "" {
		return nil, domain.NewValidationError("plant_code", "es requerido")
	}
	if in.StorageLocation == "" {
		return nil, domain.NewValidationError("storage_location", "es requerido")
	}
	location := &entity.Location{
		ID:              uuid.New().String(),
		PlantCode:       in.PlantCode,
		PlantName:       in.PlantName,
		StorageLocation: in.StorageLocation,
		Description:     in.Description,
		CreatedAt:       time.Now(),
	}
	if err := uc.repo.Create(ctx, location); err != nil {
		return nil, err
	}
	return toLocationResponse(location), nil
}

// GetByID obtiene una ubicación o domain.ErrLocationNotFound.
func (uc *LocationUseCase) GetByID(ctx context.Context, id string) (*dto.LocationResponse, error) {
	location, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, domain.ErrLocationNotFound
	}
	return toLocationResponse(location), nil
}

// List ubicaciones de la más reciente a la más antigua.
func (uc *LocationUseCase) List(ctx context.Context) (*dto.ListResponse[dto.LocationResponse], error) {
	list, err := uc.repo.List(ctx, uc.limit)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LocationResponse, 0, len(list))
	for _, l := range list {
		items = append(items, *toLocationResponse(l))
	}
	out := dto.NewListResponse(items)
	return &out, nil
}

func toLocationResponse(l *entity.Location) *dto.LocationResponse {
	if l == nil {
		return nil
	}
	return &dto.LocationResponse{
		ID:              l.ID,
		PlantCode:       l.PlantCode,
		PlantName:       l.PlantName,
		StorageLocation: l.StorageLocation,
		Description:     l.Description,
		CreatedAt:       l.CreatedAt,
	}
}
