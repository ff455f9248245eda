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

// MaterialUseCase alta y consulta del maestro de materiales. El stock se maneja vía movimientos.
type MaterialUseCase struct {
	repo  repository.MaterialRepository
	limit int
}

// NewMaterialUseCase construye el caso de uso.
func NewMaterialUseCase(repo repository.MaterialRepository, limit int) *MaterialUseCase {
	return &MaterialUseCase{repo: repo, limit: limit}
}

// Create registra un material. El código es único y la unidad debe ser PC, KG, LT, MT o EA.
func (uc *MaterialUseCase) Create(ctx context.Context, in dto.CreateMaterialRequest) (*dto.MaterialResponse, error) {
	code := strings.TrimSpace(in.MaterialCode)
	if code == "" {
		return nil, domain.NewValidationError("material_code", "es requerido")
	}
	if strings.TrimSpace(in.MaterialDescription) == "" {
		return nil, domain.NewValidationError("material_description", "es requerida")
	}
	uom := entity.UnitOfMeasure(strings.ToUpper(strings.TrimSpace(in.UnitOfMeasure)))
	if !uom.Valid() {
		return nil, domain.NewValidationError("unit_of_measure", "debe ser PC, KG, LT, MT o EA")
	}
	existing, err := uc.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	material := &entity.Material{
		ID:            uuid.New().String(),
		Code:          code,
		Description:   in.MaterialDescription,
		Group:         in.MaterialGroup,
		UnitOfMeasure: uom,
		CreatedAt:     time.Now(),
	}
	if err := uc.repo.Create(ctx, material); err != nil {
		return nil, err
	}
	return toMaterialResponse(material), nil
}

// GetByID obtiene un material o domain.ErrMaterialNotFound.
func (uc *MaterialUseCase) GetByID(ctx context.Context, id string) (*dto.MaterialResponse, error) {
	material, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.ErrMaterialNotFound
	}
	return toMaterialResponse(material), nil
}

func (uc *MaterialUseCase) List(ctx context.Context) (*dto.ListResponse[dto.MaterialResponse], error) {
	list, err := uc.repo.List(ctx, uc.limit)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MaterialResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMaterialResponse(m))
	}
	out := dto.NewListResponse(items)
	return &out, nil
}

func toMaterialResponse(m *entity.Material) *dto.MaterialResponse {
	if m == nil {
		return nil
	}
	return &dto.MaterialResponse{
		ID:                  m.ID,
		MaterialCode:        m.Code,
		MaterialDescription: m.Description,
		MaterialGroup:       m.Group,
		UnitOfMeasure:       string(m.UnitOfMeasure),
		CreatedAt:           m.CreatedAt,
	}
}
