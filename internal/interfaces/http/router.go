package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/application/usecase"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	LocationUC      *usecase.LocationUseCase
	MaterialUC      *usecase.MaterialUseCase
	PurchaseOrderUC *usecase.PurchaseOrderUseCase
	InvoiceUC       *usecase.InvoiceUseCase
	DashboardUC     *usecase.DashboardUseCase
	PostDocument    *inventory.PostDocumentUseCase
	Documents       *inventory.DocumentQueryUseCase
	StockQuery      *inventory.StockQueryUseCase
}

// NewApp crea la aplicación Fiber con recover, log de peticiones y /health.
func NewApp(name string, log *logger.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    10 * 1024 * 1024,
	})
	app.Use(recover.New())
	app.Use(RequestLogger(log.Component("http")))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": name})
	})
	return app
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	locations := api.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations.Post("/", locationHandler.Create)
	locations.Get("/", locationHandler.List)

	materials := api.Group("/materials")
	materialHandler := NewMaterialHandler(deps.MaterialUC)
	materials.Post("/", materialHandler.Create)
	materials.Get("/", materialHandler.List)
	materials.Get("/:id", materialHandler.GetByID)

	purchaseOrders := api.Group("/purchase-orders")
	poHandler := NewPurchaseOrderHandler(deps.PurchaseOrderUC)
	purchaseOrders.Post("/", poHandler.Create)
	purchaseOrders.Get("/", poHandler.List)

	invoices := api.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Post("/:id/upload", invoiceHandler.Upload)
	invoices.Put("/:id/status", invoiceHandler.UpdateStatus)

	// Documentos de material
	inventoryHandler := NewInventoryHandler(deps.PostDocument, deps.Documents)
	receipts := api.Group("/goods-receipts")
	receipts.Post("/", inventoryHandler.PostGoodsReceipt)
	receipts.Get("/", inventoryHandler.ListGoodsReceipts)
	receipts.Get("/:id", inventoryHandler.GetGoodsReceipt)
	receipts.Get("/:id/slip", inventoryHandler.GoodsReceiptSlip)

	issues := api.Group("/goods-issues")
	issues.Post("/", inventoryHandler.PostGoodsIssue)
	issues.Get("/", inventoryHandler.ListGoodsIssues)
	issues.Get("/:id", inventoryHandler.GetGoodsIssue)
	issues.Get("/:id/slip", inventoryHandler.GoodsIssueSlip)

	transfers := api.Group("/stock-transfers")
	transfers.Post("/", inventoryHandler.PostStockTransfer)
	transfers.Get("/", inventoryHandler.ListStockTransfers)

	// Saldos e historial
	stockHandler := NewStockHandler(deps.StockQuery)
	api.Get("/stock-overview", stockHandler.Overview)
	api.Get("/stock-overview/:materialId/:locationId", stockHandler.Balance)
	api.Get("/stock-movements", stockHandler.Movements)
	api.Get("/movement-types", stockHandler.MovementTypes)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	api.Get("/dashboard/stats", dashboardHandler.GetStats)
}
