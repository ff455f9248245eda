package entity

// MovementType motivo de negocio de un movimiento de stock (códigos estilo SAP).
// El signo de cada tipo vive en la tabla de políticas de internal/domain/inventory.
type MovementType string

const (
	MovementTypeGoodsReceipt       MovementType = "101" // entrada de mercancía
	MovementTypeIssueConsumption   MovementType = "201" // salida para consumo
	MovementTypeIssueSales         MovementType = "601" // salida para venta
	MovementTypeTransfer           MovementType = "311" // traslado entre ubicaciones
	MovementTypeReturnToVendor     MovementType = "122" // devolución a proveedor
	MovementTypeReturnFromCustomer MovementType = "161" // devolución de cliente
)
