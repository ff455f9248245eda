package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/inventory"
)

// InventoryHandler contabiliza y consulta documentos de material (entradas, salidas, traslados).
type InventoryHandler struct {
	post      *inventory.PostDocumentUseCase
	documents *inventory.DocumentQueryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(post *inventory.PostDocumentUseCase, documents *inventory.DocumentQueryUseCase) *InventoryHandler {
	return &InventoryHandler{post: post, documents: documents}
}

// PostGoodsReceipt godoc
// @Summary      Contabilizar entrada de mercancía (101)
// @Tags         goods-receipts
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateGoodsReceiptRequest  true  "Cabecera, ubicación y líneas"
// @Success      201   {object}  dto.GoodsReceiptResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/goods-receipts [post]
func (h *InventoryHandler) PostGoodsReceipt(c *fiber.Ctx) error {
	var in dto.CreateGoodsReceiptRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.post.PostGoodsReceipt(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListGoodsReceipts godoc
// @Summary      Listar entradas de mercancía
// @Tags         goods-receipts
// @Produce      json
// @Success      200  {object}  dto.ListResponse[dto.GoodsReceiptResponse]
// @Router       /api/goods-receipts [get]
func (h *InventoryHandler) ListGoodsReceipts(c *fiber.Ctx) error {
	list, err := h.documents.ListGoodsReceipts(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewListResponse(list))
}

// GetGoodsReceipt godoc
// @Summary      Obtener entrada de mercancía
// @Tags         goods-receipts
// @Produce      json
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {object}  dto.GoodsReceiptResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/goods-receipts/{id} [get]
func (h *InventoryHandler) GetGoodsReceipt(c *fiber.Ctx) error {
	out, err := h.documents.GetGoodsReceipt(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GoodsReceiptSlip godoc
// @Summary      Comprobante PDF de la entrada
// @Tags         goods-receipts
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/goods-receipts/{id}/slip [get]
func (h *InventoryHandler) GoodsReceiptSlip(c *fiber.Ctx) error {
	body, filename, err := h.documents.GoodsReceiptSlip(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return sendPDF(c, body, filename)
}

// PostGoodsIssue godoc
// @Summary      Contabilizar salida de mercancía (201, 601, 122, 161)
// @Tags         goods-issues
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateGoodsIssueRequest  true  "Tipo de movimiento, ubicación y líneas"
// @Success      201   {object}  dto.GoodsIssueResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/goods-issues [post]
func (h *InventoryHandler) PostGoodsIssue(c *fiber.Ctx) error {
	var in dto.CreateGoodsIssueRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.post.PostGoodsIssue(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListGoodsIssues godoc
// @Summary      Listar salidas de mercancía
// @Tags         goods-issues
// @Produce      json
// @Success      200  {object}  dto.ListResponse[dto.GoodsIssueResponse]
// @Router       /api/goods-issues [get]
func (h *InventoryHandler) ListGoodsIssues(c *fiber.Ctx) error {
	list, err := h.documents.ListGoodsIssues(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewListResponse(list))
}

// GetGoodsIssue godoc
// @Summary      Obtener salida de mercancía
// @Tags         goods-issues
// @Produce      json
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {object}  dto.GoodsIssueResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/goods-issues/{id} [get]
func (h *InventoryHandler) GetGoodsIssue(c *fiber.Ctx) error {
	out, err := h.documents.GetGoodsIssue(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GoodsIssueSlip godoc
// @Summary      Comprobante PDF de la salida
// @Tags         goods-issues
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/goods-issues/{id}/slip [get]
func (h *InventoryHandler) GoodsIssueSlip(c *fiber.Ctx) error {
	body, filename, err := h.documents.GoodsIssueSlip(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return sendPDF(c, body, filename)
}

// PostStockTransfer godoc
// @Summary      Contabilizar traslado entre ubicaciones (311)
// @Tags         stock-transfers
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStockTransferRequest  true  "Origen, destino y líneas"
// @Success      201   {object}  dto.StockTransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock-transfers [post]
func (h *InventoryHandler) PostStockTransfer(c *fiber.Ctx) error {
	var in dto.CreateStockTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.post.PostStockTransfer(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListStockTransfers godoc
// @Summary      Listar traslados
// @Tags         stock-transfers
// @Produce      json
// @Success      200  {object}  dto.ListResponse[dto.StockTransferResponse]
// @Router       /api/stock-transfers [get]
func (h *InventoryHandler) ListStockTransfers(c *fiber.Ctx) error {
	list, err := h.documents.ListStockTransfers(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewListResponse(list))
}

func sendPDF(c *fiber.Ctx, body []byte, filename string) error {
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Attachment(filename)
	return c.Send(body)
}
