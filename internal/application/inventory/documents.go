package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	domaininv "github.com/jhoicas/stock-ledger/internal/domain/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// DocumentSlip datos del comprobante impreso de un documento de material.
type DocumentSlip struct {
	Title          string
	DocumentNumber string
	MovementType   entity.MovementType
	MovementLabel  string
	PostingDate    string
	DocumentDate   string
	PartnerLabel   string // proveedor en entradas; vacío en salidas
	Location       string
	HeaderText     string
	Lines          []SlipLine
}

// SlipLine línea del comprobante.
type SlipLine struct {
	MaterialCode  string
	Description   string
	Quantity      decimal.Decimal
	UnitOfMeasure string
	UnitPrice     *decimal.Decimal
	TotalAmount   *decimal.Decimal
	CostCenter    string
}

// DocumentQueryUseCase lectura de documentos contabilizados y generación de comprobantes.
type DocumentQueryUseCase struct {
	receipts  repository.GoodsReceiptRepository
	issues    repository.GoodsIssueRepository
	transfers repository.StockTransferRepository
	resolver  ReferenceResolver
	slips     SlipGenerator
	limit     int
}

// NewDocumentQueryUseCase construye el caso de uso. slips puede ser nil si no se exponen comprobantes.
func NewDocumentQueryUseCase(
	receipts repository.GoodsReceiptRepository,
	issues repository.GoodsIssueRepository,
	transfers repository.StockTransferRepository,
	resolver ReferenceResolver,
	slips SlipGenerator,
	limit int,
) *DocumentQueryUseCase {
	if limit <= 0 {
		limit = 1000
	}
	return &DocumentQueryUseCase{
		receipts:  receipts,
		issues:    issues,
		transfers: transfers,
		resolver:  resolver,
		slips:     slips,
		limit:     limit,
	}
}

func (uc *DocumentQueryUseCase) GetGoodsReceipt(ctx context.Context, id string) (*dto.GoodsReceiptResponse, error) {
	gr, err := uc.receipts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if gr == nil {
		return nil, domain.ErrNotFound
	}
	return ToGoodsReceiptResponse(gr), nil
}

func (uc *DocumentQueryUseCase) ListGoodsReceipts(ctx context.Context) ([]dto.GoodsReceiptResponse, error) {
	list, err := uc.receipts.List(ctx, uc.limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.GoodsReceiptResponse, 0, len(list))
	for _, gr := range list {
		out = append(out, *ToGoodsReceiptResponse(gr))
	}
	return out, nil
}

func (uc *DocumentQueryUseCase) GetGoodsIssue(ctx context.Context, id string) (*dto.GoodsIssueResponse, error) {
	gi, err := uc.issues.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if gi == nil {
		return nil, domain.ErrNotFound
	}
	return ToGoodsIssueResponse(gi), nil
}

func (uc *DocumentQueryUseCase) ListGoodsIssues(ctx context.Context) ([]dto.GoodsIssueResponse, error) {
	list, err := uc.issues.List(ctx, uc.limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.GoodsIssueResponse, 0, len(list))
	for _, gi := range list {
		out = append(out, *ToGoodsIssueResponse(gi))
	}
	return out, nil
}

func (uc *DocumentQueryUseCase) ListStockTransfers(ctx context.Context) ([]dto.StockTransferResponse, error) {
	list, err := uc.transfers.List(ctx, uc.limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockTransferResponse, 0, len(list))
	for _, tr := range list {
		out = append(out, *ToStockTransferResponse(tr))
	}
	return out, nil
}

// GoodsReceiptSlip genera el comprobante PDF de una entrada.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si el documento no existe.
func (uc *DocumentQueryUseCase) GoodsReceiptSlip(ctx context.Context, id string) ([]byte, string, error) {
	gr, err := uc.receipts.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if gr == nil {
		return nil, "", domain.ErrNotFound
	}
	slip := DocumentSlip{
		Title:          "Entrada de mercancía",
		DocumentNumber: gr.DocumentNumber,
		MovementType:   entity.MovementTypeGoodsReceipt,
		PostingDate:    gr.PostingDate.Format(dto.DateLayout),
		DocumentDate:   gr.DocumentDate.Format(dto.DateLayout),
		PartnerLabel:   partnerLabel(gr.VendorCode, gr.VendorName),
		Location:       locationLabel(gr.PlantCode, gr.StorageLocation),
		HeaderText:     gr.HeaderText,
	}
	for _, it := range gr.Items {
		line, err := uc.slipLine(ctx, it.MaterialID, it.MaterialCode, it.Quantity)
		if err != nil {
			return nil, "", err
		}
		line.UnitPrice = it.UnitPrice
		line.TotalAmount = it.TotalAmount
		slip.Lines = append(slip.Lines, line)
	}
	return uc.render(ctx, slip)
}

// GoodsIssueSlip genera el comprobante PDF de una salida.
func (uc *DocumentQueryUseCase) GoodsIssueSlip(ctx context.Context, id string) ([]byte, string, error) {
	gi, err := uc.issues.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if gi == nil {
		return nil, "", domain.ErrNotFound
	}
	slip := DocumentSlip{
		Title:          "Salida de mercancía",
		DocumentNumber: gi.DocumentNumber,
		MovementType:   gi.MovementType,
		PostingDate:    gi.PostingDate.Format(dto.DateLayout),
		DocumentDate:   gi.DocumentDate.Format(dto.DateLayout),
		Location:       locationLabel(gi.PlantCode, gi.StorageLocation),
		HeaderText:     gi.HeaderText,
	}
	for _, it := range gi.Items {
		line, err := uc.slipLine(ctx, it.MaterialID, it.MaterialCode, it.Quantity)
		if err != nil {
			return nil, "", err
		}
		line.CostCenter = it.CostCenter
		slip.Lines = append(slip.Lines, line)
	}
	return uc.render(ctx, slip)
}

func (uc *DocumentQueryUseCase) render(ctx context.Context, slip DocumentSlip) ([]byte, string, error) {
	if uc.slips == nil {
		return nil, "", fmt.Errorf("%w: comprobantes no configurados", domain.ErrPersistence)
	}
	if p, ok := domaininv.PolicyFor(slip.MovementType); ok {
		slip.MovementLabel = p.Label
	}
	pdf, err := uc.slips.GenerateSlip(ctx, slip)
	if err != nil {
		return nil, "", fmt.Errorf("generar comprobante %s: %w", slip.DocumentNumber, err)
	}
	return pdf, slip.DocumentNumber + ".pdf", nil
}

// slipLine completa descripción y unidad desde el maestro; si el material ya no resuelve
// se imprime solo el código registrado.
func (uc *DocumentQueryUseCase) slipLine(ctx context.Context, materialID, code string, qty decimal.Decimal) (SlipLine, error) {
	line := SlipLine{MaterialCode: code, Quantity: qty}
	m, err := uc.resolver.ResolveMaterial(ctx, materialID)
	switch {
	case err == nil:
		line.Description = m.Description
		line.UnitOfMeasure = string(m.UnitOfMeasure)
	case errors.Is(err, domain.ErrNotFound):
	default:
		return SlipLine{}, err
	}
	return line, nil
}

func partnerLabel(code, name string) string {
	if name == "" {
		return code
	}
	return code + " - " + name
}

func locationLabel(plant, storage string) string {
	return plant + " / " + storage
}
