package inventory

import (
	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// ToGoodsReceiptResponse mapea la entidad al DTO de salida.
func ToGoodsReceiptResponse(gr *entity.GoodsReceipt) *dto.GoodsReceiptResponse {
	if gr == nil {
		return nil
	}
	out := &dto.GoodsReceiptResponse{
		ID:              gr.ID,
		DocumentNumber:  gr.DocumentNumber,
		POID:            gr.POID,
		PONumber:        gr.PONumber,
		InvoiceID:       gr.InvoiceID,
		VendorCode:      gr.VendorCode,
		VendorName:      gr.VendorName,
		LocationID:      gr.LocationID,
		PlantCode:       gr.PlantCode,
		StorageLocation: gr.StorageLocation,
		PostingDate:     gr.PostingDate.Format(dto.DateLayout),
		DocumentDate:    gr.DocumentDate.Format(dto.DateLayout),
		HeaderText:      gr.HeaderText,
		CreatedAt:       gr.CreatedAt,
		Items:           make([]dto.GoodsReceiptItemResponse, 0, len(gr.Items)),
	}
	for _, it := range gr.Items {
		out.Items = append(out.Items, dto.GoodsReceiptItemResponse{
			MaterialID:   it.MaterialID,
			MaterialCode: it.MaterialCode,
			Quantity:     it.Quantity,
			UnitPrice:    it.UnitPrice,
			TotalAmount:  it.TotalAmount,
		})
	}
	return out
}

// ToGoodsIssueResponse mapea la entidad al DTO de salida.
func ToGoodsIssueResponse(gi *entity.GoodsIssue) *dto.GoodsIssueResponse {
	if gi == nil {
		return nil
	}
	out := &dto.GoodsIssueResponse{
		ID:              gi.ID,
		DocumentNumber:  gi.DocumentNumber,
		MovementType:    string(gi.MovementType),
		LocationID:      gi.LocationID,
		PlantCode:       gi.PlantCode,
		StorageLocation: gi.StorageLocation,
		PostingDate:     gi.PostingDate.Format(dto.DateLayout),
		DocumentDate:    gi.DocumentDate.Format(dto.DateLayout),
		HeaderText:      gi.HeaderText,
		CreatedAt:       gi.CreatedAt,
		Items:           make([]dto.GoodsIssueItemResponse, 0, len(gi.Items)),
	}
	for _, it := range gi.Items {
		out.Items = append(out.Items, dto.GoodsIssueItemResponse{
			MaterialID:   it.MaterialID,
			MaterialCode: it.MaterialCode,
			Quantity:     it.Quantity,
			CostCenter:   it.CostCenter,
		})
	}
	return out
}

// ToStockTransferResponse mapea la entidad al DTO de salida.
func ToStockTransferResponse(tr *entity.StockTransfer) *dto.StockTransferResponse {
	if tr == nil {
		return nil
	}
	out := &dto.StockTransferResponse{
		ID:             tr.ID,
		DocumentNumber: tr.DocumentNumber,
		FromLocationID: tr.FromLocationID,
		ToLocationID:   tr.ToLocationID,
		PostingDate:    tr.PostingDate.Format(dto.DateLayout),
		DocumentDate:   tr.DocumentDate.Format(dto.DateLayout),
		HeaderText:     tr.HeaderText,
		CreatedAt:      tr.CreatedAt,
		Items:          make([]dto.StockTransferItemResponse, 0, len(tr.Items)),
	}
	for _, it := range tr.Items {
		out.Items = append(out.Items, dto.StockTransferItemResponse{
			MaterialID:   it.MaterialID,
			MaterialCode: it.MaterialCode,
			Quantity:     it.Quantity,
		})
	}
	return out
}

// ToMovementResponse mapea un asiento del libro.
func ToMovementResponse(m *entity.StockMovement) dto.StockMovementResponse {
	return dto.StockMovementResponse{
		ID:                m.ID,
		MaterialID:        m.MaterialID,
		MaterialCode:      m.MaterialCode,
		LocationID:        m.LocationID,
		PlantCode:         m.PlantCode,
		StorageLocation:   m.StorageLocation,
		MovementType:      string(m.MovementType),
		DocumentNumber:    m.DocumentNumber,
		Quantity:          m.Quantity,
		UnitOfMeasure:     string(m.UnitOfMeasure),
		PostingDate:       m.PostingDate.Format(dto.DateLayout),
		ReferenceDocument: m.ReferenceDocument,
		CreatedAt:         m.CreatedAt,
	}
}

// ToMovementResponses mapea una lista de asientos.
func ToMovementResponses(list []*entity.StockMovement) []dto.StockMovementResponse {
	out := make([]dto.StockMovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, ToMovementResponse(m))
	}
	return out
}

// ToCurrentStockResponse mapea una fila de saldo.
func ToCurrentStockResponse(s *entity.CurrentStock) dto.CurrentStockResponse {
	return dto.CurrentStockResponse{
		ID:                  s.ID,
		MaterialID:          s.MaterialID,
		MaterialCode:        s.MaterialCode,
		MaterialDescription: s.MaterialDescription,
		LocationID:          s.LocationID,
		PlantCode:           s.PlantCode,
		StorageLocation:     s.StorageLocation,
		CurrentQuantity:     s.CurrentQuantity,
		UnitOfMeasure:       string(s.UnitOfMeasure),
		LastUpdated:         s.LastUpdated,
	}
}
