package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/inventory"
)

// StockHandler consultas de saldos, historial y tipos de movimiento.
type StockHandler struct {
	uc *inventory.StockQueryUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *inventory.StockQueryUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// Overview godoc
// @Summary      Saldos actuales por material y ubicación
// @Tags         stock
// @Produce      json
// @Success      200  {object}  dto.ListResponse[dto.CurrentStockResponse]
// @Router       /api/stock-overview [get]
func (h *StockHandler) Overview(c *fiber.Ctx) error {
	list, err := h.uc.CurrentBalances(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewListResponse(list))
}

// Balance godoc
// @Summary      Saldo de un material en una ubicación
// @Tags         stock
// @Produce      json
// @Param        materialId  path  string  true  "ID del material"
// @Param        locationId  path  string  true  "ID de la ubicación"
// @Success      200  {object}  dto.CurrentStockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock-overview/{materialId}/{locationId} [get]
func (h *StockHandler) Balance(c *fiber.Ctx) error {
	out, err := h.uc.Balance(c.UserContext(), c.Params("materialId"), c.Params("locationId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Movements godoc
// @Summary      Historial de movimientos (más recientes primero)
// @Tags         stock
// @Produce      json
// @Param        material_id      query  string  false  "Filtrar por material"
// @Param        location_id      query  string  false  "Filtrar por ubicación"
// @Param        document_number  query  string  false  "Filtrar por documento"
// @Param        limit            query  int     false  "Máximo de filas"
// @Success      200  {object}  dto.ListResponse[dto.StockMovementResponse]
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock-movements [get]
func (h *StockHandler) Movements(c *fiber.Ctx) error {
	var q dto.MovementHistoryQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetros de consulta inválidos"})
	}
	list, err := h.uc.MovementHistory(c.UserContext(), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewListResponse(list))
}

// MovementTypes godoc
// @Summary      Tipos de movimiento soportados
// @Tags         stock
// @Produce      json
// @Success      200  {array}  dto.MovementTypeResponse
// @Router       /api/movement-types [get]
func (h *StockHandler) MovementTypes(c *fiber.Ctx) error {
	return c.JSON(h.uc.MovementTypes())
}
