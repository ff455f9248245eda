package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	domaininv "github.com/jhoicas/stock-ledger/internal/domain/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// PostingDocument vista de un documento ya validado, lista para generar asientos.
type PostingDocument struct {
	DocumentNumber    string
	PostingDate       time.Time
	ReferenceDocument string // solo se propaga en entradas (101)
	Lines             []PostingLine
}

// PostingLine cantidad bruta (positiva) de un material.
type PostingLine struct {
	MaterialID string
	Quantity   decimal.Decimal
}

// MovementRecorder convierte las líneas de un documento en asientos del libro de stock.
// Es el único que consulta la tabla de políticas; el agregador confía en el signo recibido.
type MovementRecorder struct {
	now func() time.Time
}

// NewMovementRecorder construye el recorder.
func NewMovementRecorder() *MovementRecorder {
	return &MovementRecorder{now: time.Now}
}

// BuildEntries genera un asiento por línea sin escribir nada.
// Un material ausente de materials es error para todo el documento.
func (r *MovementRecorder) BuildEntries(
	doc PostingDocument,
	mt entity.MovementType,
	location *entity.Location,
	materials map[string]*entity.Material,
) ([]*entity.StockMovement, error) {
	if location == nil {
		return nil, domain.ErrLocationNotFound
	}
	if len(doc.Lines) == 0 {
		return nil, domain.NewValidationError("items", "el documento no tiene líneas")
	}
	ref := ""
	if mt == entity.MovementTypeGoodsReceipt {
		ref = doc.ReferenceDocument
	}
	now := r.now()
	entries := make([]*entity.StockMovement, 0, len(doc.Lines))
	for i, line := range doc.Lines {
		material, ok := materials[line.MaterialID]
		if !ok || material == nil {
			return nil, fmt.Errorf("línea %d: %w: %s", i+1, domain.ErrMaterialNotFound, line.MaterialID)
		}
		signed, err := domaininv.SignedQuantity(mt, line.Quantity)
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", i+1, err)
		}
		entries = append(entries, newEntry(doc, mt, location, material, signed, ref, now))
	}
	return entries, nil
}

// BuildTransferEntries genera dos asientos enlazados por línea: salida en origen y entrada en destino.
// El signo de destino sale de la política del traslado; el de origen es su opuesto.
func (r *MovementRecorder) BuildTransferEntries(
	doc PostingDocument,
	from, to *entity.Location,
	materials map[string]*entity.Material,
) ([]*entity.StockMovement, error) {
	if from == nil || to == nil {
		return nil, domain.ErrLocationNotFound
	}
	if len(doc.Lines) == 0 {
		return nil, domain.NewValidationError("items", "el documento no tiene líneas")
	}
	now := r.now()
	entries := make([]*entity.StockMovement, 0, 2*len(doc.Lines))
	for i, line := range doc.Lines {
		material, ok := materials[line.MaterialID]
		if !ok || material == nil {
			return nil, fmt.Errorf("línea %d: %w: %s", i+1, domain.ErrMaterialNotFound, line.MaterialID)
		}
		inbound, err := domaininv.SignedQuantity(entity.MovementTypeTransfer, line.Quantity)
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", i+1, err)
		}
		entries = append(entries,
			newEntry(doc, entity.MovementTypeTransfer, from, material, inbound.Neg(), "", now),
			newEntry(doc, entity.MovementTypeTransfer, to, material, inbound, "", now),
		)
	}
	return entries, nil
}

// Append persiste los asientos en el libro. No modifica asientos existentes.
func (r *MovementRecorder) Append(ctx context.Context, movRepo repository.StockMovementRepository, entries []*entity.StockMovement) error {
	for _, e := range entries {
		if err := movRepo.Append(ctx, e); err != nil {
			return fmt.Errorf("append movement %s/%s: %w", e.DocumentNumber, e.MaterialCode, err)
		}
	}
	return nil
}

// Record construye y persiste los asientos de un documento.
func (r *MovementRecorder) Record(
	ctx context.Context,
	movRepo repository.StockMovementRepository,
	doc PostingDocument,
	mt entity.MovementType,
	location *entity.Location,
	materials map[string]*entity.Material,
) ([]*entity.StockMovement, error) {
	entries, err := r.BuildEntries(doc, mt, location, materials)
	if err != nil {
		return nil, err
	}
	if err := r.Append(ctx, movRepo, entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func newEntry(
	doc PostingDocument,
	mt entity.MovementType,
	location *entity.Location,
	material *entity.Material,
	signed decimal.Decimal,
	ref string,
	now time.Time,
) *entity.StockMovement {
	return &entity.StockMovement{
		ID:                uuid.New().String(),
		MaterialID:        material.ID,
		MaterialCode:      material.Code,
		LocationID:        location.ID,
		PlantCode:         location.PlantCode,
		StorageLocation:   location.StorageLocation,
		MovementType:      mt,
		DocumentNumber:    doc.DocumentNumber,
		Quantity:          signed,
		UnitOfMeasure:     material.UnitOfMeasure,
		PostingDate:       doc.PostingDate,
		ReferenceDocument: ref,
		CreatedAt:         now,
	}
}
