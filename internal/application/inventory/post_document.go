package inventory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	domaininv "github.com/jhoicas/stock-ledger/internal/domain/inventory"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// Tipos de movimiento admitidos en un documento de salida.
var issueMovementTypes = map[entity.MovementType]bool{
	entity.MovementTypeIssueConsumption:   true,
	entity.MovementTypeIssueSales:         true,
	entity.MovementTypeReturnToVendor:     true,
	entity.MovementTypeReturnFromCustomer: true,
}

// PostingOptions reintentos ante domain.ErrConcurrentUpdate.
type PostingOptions struct {
	MaxRetries   int
	RetryBackoff time.Duration // espera lineal: RetryBackoff * intento
}

// PostDocumentUseCase contabiliza documentos de material en dos fases:
//  1. validación y resolución de ubicación y materiales, sin escrituras;
//  2. una transacción que guarda el documento, agrega los asientos y aplica los saldos.
//
// Si algo falla no queda nada escrito.
type PostDocumentUseCase struct {
	txRunner   TxRunner
	resolver   ReferenceResolver
	recorder   *MovementRecorder
	aggregator *BalanceAggregator
	log        *logger.Logger
	opts       PostingOptions
	now        func() time.Time
}

// NewPostDocumentUseCase construye el caso de uso.
func NewPostDocumentUseCase(
	txRunner TxRunner,
	resolver ReferenceResolver,
	recorder *MovementRecorder,
	aggregator *BalanceAggregator,
	log *logger.Logger,
	opts PostingOptions,
) *PostDocumentUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &PostDocumentUseCase{
		txRunner:   txRunner,
		resolver:   resolver,
		recorder:   recorder,
		aggregator: aggregator,
		log:        log,
		opts:       opts,
		now:        time.Now,
	}
}

type lineInput struct {
	MaterialID   string
	MaterialCode string
	Quantity     decimal.Decimal
}

// PostGoodsReceipt contabiliza una entrada de mercancía (101).
func (uc *PostDocumentUseCase) PostGoodsReceipt(ctx context.Context, in dto.CreateGoodsReceiptRequest) (*dto.GoodsReceiptResponse, error) {
	postingDate, documentDate, err := parseDocumentDates(in.PostingDate, in.DocumentDate)
	if err != nil {
		return nil, err
	}
	if in.VendorCode == "" {
		return nil, domain.NewValidationError("vendor_code", "es requerido")
	}
	lines := make([]lineInput, 0, len(in.Items))
	for _, it := range in.Items {
		lines = append(lines, lineInput{MaterialID: it.MaterialID, MaterialCode: it.MaterialCode, Quantity: it.Quantity})
	}
	for i, it := range in.Items {
		if it.UnitPrice == nil {
			continue
		}
		if it.UnitPrice.IsNegative() {
			return nil, domain.NewValidationError(fmt.Sprintf("items[%d].unit_price", i), "no puede ser negativo")
		}
		if !domaininv.FitsScale(*it.UnitPrice, domaininv.UnitPriceScale) {
			return nil, domain.NewValidationError(fmt.Sprintf("items[%d].unit_price", i),
				fmt.Sprintf("admite como máximo %d decimales", domaininv.UnitPriceScale))
		}
	}
	location, materials, err := uc.resolve(ctx, in.LocationID, lines)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	gr := &entity.GoodsReceipt{
		ID:              uuid.New().String(),
		DocumentNumber:  newDocumentNumber("GR"),
		POID:            in.POID,
		PONumber:        in.PONumber,
		InvoiceID:       in.InvoiceID,
		VendorCode:      in.VendorCode,
		VendorName:      in.VendorName,
		LocationID:      location.ID,
		PlantCode:       location.PlantCode,
		StorageLocation: location.StorageLocation,
		PostingDate:     postingDate,
		DocumentDate:    documentDate,
		HeaderText:      in.HeaderText,
		CreatedAt:       now,
	}
	for _, it := range in.Items {
		gr.Items = append(gr.Items, entity.GoodsReceiptItem{
			MaterialID:   it.MaterialID,
			MaterialCode: materials[it.MaterialID].Code,
			Quantity:     it.Quantity,
			UnitPrice:    it.UnitPrice,
			TotalAmount:  domaininv.LineAmount(it.Quantity, it.UnitPrice),
		})
	}

	doc := postingDocument(gr.DocumentNumber, postingDate, gr.PONumber, lines)
	entries, err := uc.recorder.BuildEntries(doc, entity.MovementTypeGoodsReceipt, location, materials)
	if err != nil {
		return nil, err
	}
	locations := map[string]*entity.Location{location.ID: location}
	err = uc.commit(ctx, gr.DocumentNumber, func(repos LedgerRepos) error {
		if err := repos.Receipts.Create(ctx, gr); err != nil {
			return fmt.Errorf("save goods receipt: %w", err)
		}
		return uc.recordAndApply(ctx, repos, entries, materials, locations)
	})
	if err != nil {
		return nil, err
	}
	uc.logPosted(gr.DocumentNumber, entity.MovementTypeGoodsReceipt, len(gr.Items), len(entries))

	out := ToGoodsReceiptResponse(gr)
	out.Movements = ToMovementResponses(entries)
	return out, nil
}

// PostGoodsIssue contabiliza una salida (201, 601, 122) o una devolución de cliente (161).
func (uc *PostDocumentUseCase) PostGoodsIssue(ctx context.Context, in dto.CreateGoodsIssueRequest) (*dto.GoodsIssueResponse, error) {
	mt := entity.MovementType(in.MovementType)
	if !issueMovementTypes[mt] {
		return nil, domain.NewValidationError("movement_type", "tipo no admitido en una salida: "+in.MovementType)
	}
	postingDate, documentDate, err := parseDocumentDates(in.PostingDate, in.DocumentDate)
	if err != nil {
		return nil, err
	}
	lines := make([]lineInput, 0, len(in.Items))
	for _, it := range in.Items {
		lines = append(lines, lineInput{MaterialID: it.MaterialID, MaterialCode: it.MaterialCode, Quantity: it.Quantity})
	}
	location, materials, err := uc.resolve(ctx, in.LocationID, lines)
	if err != nil {
		return nil, err
	}

	gi := &entity.GoodsIssue{
		ID:              uuid.New().String(),
		DocumentNumber:  newDocumentNumber("GI"),
		MovementType:    mt,
		LocationID:      location.ID,
		PlantCode:       location.PlantCode,
		StorageLocation: location.StorageLocation,
		PostingDate:     postingDate,
		DocumentDate:    documentDate,
		HeaderText:      in.HeaderText,
		CreatedAt:       uc.now(),
	}
	for _, it := range in.Items {
		gi.Items = append(gi.Items, entity.GoodsIssueItem{
			MaterialID:   it.MaterialID,
			MaterialCode: materials[it.MaterialID].Code,
			Quantity:     it.Quantity,
			CostCenter:   it.CostCenter,
		})
	}

	doc := postingDocument(gi.DocumentNumber, postingDate, "", lines)
	entries, err := uc.recorder.BuildEntries(doc, mt, location, materials)
	if err != nil {
		return nil, err
	}
	locations := map[string]*entity.Location{location.ID: location}
	err = uc.commit(ctx, gi.DocumentNumber, func(repos LedgerRepos) error {
		if err := repos.Issues.Create(ctx, gi); err != nil {
			return fmt.Errorf("save goods issue: %w", err)
		}
		return uc.recordAndApply(ctx, repos, entries, materials, locations)
	})
	if err != nil {
		return nil, err
	}
	uc.logPosted(gi.DocumentNumber, mt, len(gi.Items), len(entries))

	out := ToGoodsIssueResponse(gi)
	out.Movements = ToMovementResponses(entries)
	return out, nil
}

// PostStockTransfer contabiliza un traslado (311): salida en origen y entrada en destino por línea.
func (uc *PostDocumentUseCase) PostStockTransfer(ctx context.Context, in dto.CreateStockTransferRequest) (*dto.StockTransferResponse, error) {
	if in.FromLocationID == "" {
		return nil, domain.NewValidationError("from_location_id", "es requerido")
	}
	if in.ToLocationID == "" {
		return nil, domain.NewValidationError("to_location_id", "es requerido")
	}
	if in.FromLocationID == in.ToLocationID {
		return nil, domain.NewValidationError("to_location_id", "debe ser distinta del origen")
	}
	postingDate, documentDate, err := parseDocumentDates(in.PostingDate, in.DocumentDate)
	if err != nil {
		return nil, err
	}
	lines := make([]lineInput, 0, len(in.Items))
	for _, it := range in.Items {
		lines = append(lines, lineInput{MaterialID: it.MaterialID, MaterialCode: it.MaterialCode, Quantity: it.Quantity})
	}
	from, materials, err := uc.resolve(ctx, in.FromLocationID, lines)
	if err != nil {
		return nil, err
	}
	to, err := uc.resolver.ResolveLocation(ctx, in.ToLocationID)
	if err != nil {
		return nil, err
	}

	tr := &entity.StockTransfer{
		ID:             uuid.New().String(),
		DocumentNumber: newDocumentNumber("TR"),
		FromLocationID: from.ID,
		ToLocationID:   to.ID,
		PostingDate:    postingDate,
		DocumentDate:   documentDate,
		HeaderText:     in.HeaderText,
		CreatedAt:      uc.now(),
	}
	for _, it := range in.Items {
		tr.Items = append(tr.Items, entity.StockTransferItem{
			MaterialID:   it.MaterialID,
			MaterialCode: materials[it.MaterialID].Code,
			Quantity:     it.Quantity,
		})
	}

	doc := postingDocument(tr.DocumentNumber, postingDate, "", lines)
	entries, err := uc.recorder.BuildTransferEntries(doc, from, to, materials)
	if err != nil {
		return nil, err
	}
	locations := map[string]*entity.Location{from.ID: from, to.ID: to}
	err = uc.commit(ctx, tr.DocumentNumber, func(repos LedgerRepos) error {
		if err := repos.Transfers.Create(ctx, tr); err != nil {
			return fmt.Errorf("save stock transfer: %w", err)
		}
		return uc.recordAndApply(ctx, repos, entries, materials, locations)
	})
	if err != nil {
		return nil, err
	}
	uc.logPosted(tr.DocumentNumber, entity.MovementTypeTransfer, len(tr.Items), len(entries))

	out := ToStockTransferResponse(tr)
	out.Movements = ToMovementResponses(entries)
	return out, nil
}

// resolve valida las líneas y resuelve la ubicación y cada material distinto. No escribe nada.
func (uc *PostDocumentUseCase) resolve(ctx context.Context, locationID string, lines []lineInput) (*entity.Location, map[string]*entity.Material, error) {
	if locationID == "" {
		return nil, nil, domain.NewValidationError("location_id", "es requerido")
	}
	if err := validateLines(lines); err != nil {
		return nil, nil, err
	}
	location, err := uc.resolver.ResolveLocation(ctx, locationID)
	if err != nil {
		return nil, nil, err
	}
	materials := make(map[string]*entity.Material, len(lines))
	for i, l := range lines {
		m, ok := materials[l.MaterialID]
		if !ok {
			m, err = uc.resolver.ResolveMaterial(ctx, l.MaterialID)
			if err != nil {
				return nil, nil, fmt.Errorf("línea %d: %w", i+1, err)
			}
			materials[l.MaterialID] = m
		}
		if l.MaterialCode != "" && l.MaterialCode != m.Code {
			return nil, nil, domain.NewValidationError(
				fmt.Sprintf("items[%d].material_code", i),
				fmt.Sprintf("%s no corresponde al material %s (%s)", l.MaterialCode, m.ID, m.Code),
			)
		}
	}
	return location, materials, nil
}

// recordAndApply agrega los asientos al libro y luego aplica cada uno a su saldo.
// Los saldos se actualizan en orden de clave para que dos documentos concurrentes
// bloqueen las filas en el mismo orden.
func (uc *PostDocumentUseCase) recordAndApply(
	ctx context.Context,
	repos LedgerRepos,
	entries []*entity.StockMovement,
	materials map[string]*entity.Material,
	locations map[string]*entity.Location,
) error {
	if err := uc.recorder.Append(ctx, repos.Movements, entries); err != nil {
		return err
	}
	ordered := make([]*entity.StockMovement, len(entries))
	copy(ordered, entries)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Key().Less(ordered[j].Key()) })
	for _, e := range ordered {
		if _, err := uc.aggregator.Apply(ctx, repos.Stock, e, materials[e.MaterialID], locations[e.LocationID]); err != nil {
			return err
		}
	}
	return nil
}

// commit ejecuta fn en una transacción y la reintenta completa si perdió una carrera.
func (uc *PostDocumentUseCase) commit(ctx context.Context, documentNumber string, fn func(repos LedgerRepos) error) error {
	for attempt := 0; ; attempt++ {
		err := uc.txRunner.Run(ctx, fn)
		if err == nil || !errors.Is(err, domain.ErrConcurrentUpdate) || attempt >= uc.opts.MaxRetries {
			return err
		}
		uc.log.Warn().Err(err).
			Str("document_number", documentNumber).
			Int("attempt", attempt+1).
			Msg("conflicto de concurrencia, reintentando contabilización")
		if err := sleepContext(ctx, uc.opts.RetryBackoff*time.Duration(attempt+1)); err != nil {
			return err
		}
	}
}

func (uc *PostDocumentUseCase) logPosted(documentNumber string, mt entity.MovementType, lines, entries int) {
	uc.log.Info().
		Str("document_number", documentNumber).
		Str("movement_type", string(mt)).
		Int("lines", lines).
		Int("entries", entries).
		Msg("documento contabilizado")
}

func validateLines(lines []lineInput) error {
	if len(lines) == 0 {
		return domain.NewValidationError("items", "se requiere al menos una línea")
	}
	for i, l := range lines {
		if l.MaterialID == "" {
			return domain.NewValidationError(fmt.Sprintf("items[%d].material_id", i), "es requerido")
		}
		if !l.Quantity.IsPositive() {
			return domain.NewValidationError(fmt.Sprintf("items[%d].quantity", i), "debe ser mayor que cero")
		}
		if !domaininv.FitsScale(l.Quantity, domaininv.QuantityScale) {
			return domain.NewValidationError(fmt.Sprintf("items[%d].quantity", i),
				fmt.Sprintf("admite como máximo %d decimales", domaininv.QuantityScale))
		}
	}
	return nil
}

func postingDocument(number string, postingDate time.Time, ref string, lines []lineInput) PostingDocument {
	doc := PostingDocument{DocumentNumber: number, PostingDate: postingDate, ReferenceDocument: ref}
	for _, l := range lines {
		doc.Lines = append(doc.Lines, PostingLine{MaterialID: l.MaterialID, Quantity: l.Quantity})
	}
	return doc
}

// parseDocumentDates posting_date es obligatoria; document_date por defecto igual a posting_date.
func parseDocumentDates(posting, document string) (time.Time, time.Time, error) {
	if posting == "" {
		return time.Time{}, time.Time{}, domain.NewValidationError("posting_date", "es requerida")
	}
	pd, err := time.Parse(dto.DateLayout, posting)
	if err != nil {
		return time.Time{}, time.Time{}, domain.NewValidationError("posting_date", "formato esperado YYYY-MM-DD")
	}
	if document == "" {
		return pd, pd, nil
	}
	dd, err := time.Parse(dto.DateLayout, document)
	if err != nil {
		return time.Time{}, time.Time{}, domain.NewValidationError("document_date", "formato esperado YYYY-MM-DD")
	}
	return pd, dd, nil
}

// newDocumentNumber prefijo + 8 caracteres hexadecimales en mayúscula (p.ej. GR1A2B3C4D).
func newDocumentNumber(prefix string) string {
	return prefix + strings.ToUpper(uuid.New().String()[:8])
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
