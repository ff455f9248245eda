package usecase

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// InvoiceUseCase facturas de proveedor: alta, estado y archivo adjunto.
// No hay conciliación contra entradas; las entradas solo guardan invoice_id.
type InvoiceUseCase struct {
	repo      repository.InvoiceRepository
	uploadDir string
	limit     int
}

// NewInvoiceUseCase construye el caso de uso. uploadDir es el directorio de adjuntos.
func NewInvoiceUseCase(repo repository.InvoiceRepository, uploadDir string, limit int) *InvoiceUseCase {
	return &InvoiceUseCase{repo: repo, uploadDir: uploadDir, limit: limit}
}

// Create registra la factura en estado pending.
func (uc *InvoiceUseCase) Create(ctx context.Context, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if strings.TrimSpace(in.InvoiceNumber) == "" {
		return nil, domain.NewValidationError("invoice_number", "es requerido")
	}
	if strings.TrimSpace(in.VendorCode) == "" {
		return nil, domain.NewValidationError("vendor_code", "es requerido")
	}
	if in.InvoiceAmount.IsNegative() {
		return nil, domain.NewValidationError("invoice_amount", "no puede ser negativo")
	}
	date, err := parseDate("invoice_date", in.InvoiceDate)
	if err != nil {
		return nil, err
	}
	inv := &entity.Invoice{
		ID:            uuid.New().String(),
		InvoiceNumber: strings.TrimSpace(in.InvoiceNumber),
		VendorCode:    in.VendorCode,
		VendorName:    in.VendorName,
		InvoiceDate:   date,
		InvoiceAmount: in.InvoiceAmount.Round(2),
		Status:        entity.InvoiceStatusPending,
		CreatedAt:     time.Now(),
	}
	if err := uc.repo.Create(ctx, inv); err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv), nil
}

func (uc *InvoiceUseCase) GetByID(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return toInvoiceResponse(inv), nil
}

func (uc *InvoiceUseCase) List(ctx context.Context) (*dto.ListResponse[dto.InvoiceResponse], error) {
	list, err := uc.repo.List(ctx, uc.limit)
	if err != nil {
		return nil, err
	}
	items := make([]dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		items = append(items, *toInvoiceResponse(inv))
	}
	out := dto.NewListResponse(items)
	return &out, nil
}

// UpdateStatus cambia el estado (pending, verified, blocked, posted).
func (uc *InvoiceUseCase) UpdateStatus(ctx context.Context, id string, in dto.UpdateInvoiceStatusRequest) error {
	status := entity.InvoiceStatus(strings.ToLower(strings.TrimSpace(in.Status)))
	if !status.Valid() {
		return domain.NewValidationError("status", "debe ser pending, verified, blocked o posted")
	}
	return uc.repo.UpdateStatus(ctx, id, status)
}

// AttachFile guarda el adjunto como <uploadDir>/<invoiceID>_<nombre> y registra la ruta.
func (uc *InvoiceUseCase) AttachFile(ctx context.Context, id, filename string, src io.Reader) (string, error) {
	inv, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if inv == nil {
		return "", domain.ErrNotFound
	}
	name := filepath.Base(filepath.Clean("/" + filename))
	if name == "/" || name == "." {
		return "", domain.NewValidationError("file", "nombre de archivo inválido")
	}
	if err := os.MkdirAll(uc.uploadDir, 0o755); err != nil {
		return "", fmt.Errorf("crear directorio de adjuntos: %w", err)
	}
	path := filepath.Join(uc.uploadDir, id+"_"+name)
	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("crear adjunto: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return "", fmt.Errorf("escribir adjunto: %w", err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("cerrar adjunto: %w", err)
	}
	if err := uc.repo.SetFilePath(ctx, id, path); err != nil {
		return "", err
	}
	return path, nil
}

func toInvoiceResponse(inv *entity.Invoice) *dto.InvoiceResponse {
	return &dto.InvoiceResponse{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		VendorCode:    inv.VendorCode,
		VendorName:    inv.VendorName,
		InvoiceDate:   inv.InvoiceDate.Format(dto.DateLayout),
		InvoiceAmount: inv.InvoiceAmount,
		Status:        string(inv.Status),
		FilePath:      inv.FilePath,
		CreatedAt:     inv.CreatedAt,
	}
}
