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

// PurchaseOrderUseCase registro de órdenes de compra; las entradas solo las referencian.
type PurchaseOrderUseCase struct {
	repo  repository.PurchaseOrderRepository
	limit int
}

// NewPurchaseOrderUseCase construye el caso de uso.
func NewPurchaseOrderUseCase(repo repository.PurchaseOrderRepository, limit int) *PurchaseOrderUseCase {
	return &PurchaseOrderUseCase{repo: repo, limit: limit}
}

func (uc *PurchaseOrderUseCase) Create(ctx context.Context, in dto.CreatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	if strings.TrimSpace(in.PONumber) == "" {
		return nil, domain.NewValidationError("po_number", "es requerido")
	}
	if strings.TrimSpace(in.VendorCode) == "" {
		return nil, domain.NewValidationError("vendor_code", "es requerido")
	}
	poDate, err := parseDate("po_date", in.PODate)
	if err != nil {
		return nil, err
	}
	po := &entity.PurchaseOrder{
		ID:         uuid.New().String(),
		PONumber:   strings.TrimSpace(in.PONumber),
		VendorCode: in.VendorCode,
		VendorName: in.VendorName,
		PODate:     poDate,
		CreatedAt:  time.Now(),
	}
	if err := uc.repo.Create(ctx, po); err != nil {
		return nil, err
	}
	return toPurchaseOrderResponse(po), nil
}

func (uc *PurchaseOrderUseCase) List(ctx context.Context) (*dto.ListResponse[dto.PurchaseOrderResponse], error) {
	list, err := uc.repo.List(ctx, uc.limit)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PurchaseOrderResponse, 0, len(list))
	for _, po := range list {
		items = append(items, *toPurchaseOrderResponse(po))
	}
	out := dto.NewListResponse(items)
	return &out, nil
}

func toPurchaseOrderResponse(po *entity.PurchaseOrder) *dto.PurchaseOrderResponse {
	return &dto.PurchaseOrderResponse{
		ID:         po.ID,
		PONumber:   po.PONumber,
		VendorCode: po.VendorCode,
		VendorName: po.VendorName,
		PODate:     po.PODate.Format(dto.DateLayout),
		CreatedAt:  po.CreatedAt,
	}
}

// parseDate fecha obligatoria en formato YYYY-MM-DD.
func parseDate(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, domain.NewValidationError(field, "es requerida")
	}
	t, err := time.Parse(dto.DateLayout, value)
	if err != nil {
		return time.Time{}, domain.NewValidationError(field, "formato esperado YYYY-MM-DD")
	}
	return t, nil
}
