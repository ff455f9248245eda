package inventory

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// Direction sentido en que un tipo de movimiento afecta el saldo.
type Direction string

const (
	DirectionIncrease Direction = "increase"
	DirectionDecrease Direction = "decrease"
)

// Apply devuelve qty con el signo de la dirección.
func (d Direction) Apply(qty decimal.Decimal) decimal.Decimal {
	if d == DirectionDecrease {
		return qty.Neg()
	}
	return qty
}

// Policy dirección y etiqueta de un tipo de movimiento.
type Policy struct {
	Type      entity.MovementType
	Direction Direction
	Label     string
}

// Tabla única de convenciones de signo. El traslado (311) se registra como entrada en
// destino; la pata de salida en origen la genera el contabilizador con el signo opuesto.
var policies = map[entity.MovementType]Policy{
	entity.MovementTypeGoodsReceipt:       {entity.MovementTypeGoodsReceipt, DirectionIncrease, "Goods Receipt"},
	entity.MovementTypeIssueConsumption:   {entity.MovementTypeIssueConsumption, DirectionDecrease, "Goods Issue for Consumption"},
	entity.MovementTypeIssueSales:         {entity.MovementTypeIssueSales, DirectionDecrease, "Goods Issue for Sales"},
	entity.MovementTypeTransfer:           {entity.MovementTypeTransfer, DirectionIncrease, "Stock Transfer"},
	entity.MovementTypeReturnToVendor:     {entity.MovementTypeReturnToVendor, DirectionDecrease, "Return to Vendor"},
	entity.MovementTypeReturnFromCustomer: {entity.MovementTypeReturnFromCustomer, DirectionIncrease, "Return from Customer"},
}

// PolicyFor devuelve la política del tipo de movimiento.
func PolicyFor(mt entity.MovementType) (Policy, bool) {
	p, ok := policies[mt]
	return p, ok
}

// SignedQuantity aplica la dirección del tipo a una cantidad bruta positiva.
func SignedQuantity(mt entity.MovementType, qty decimal.Decimal) (decimal.Decimal, error) {
	p, ok := policies[mt]
	if !ok {
		return decimal.Zero, domain.NewValidationError("movement_type", "tipo de movimiento desconocido: "+string(mt))
	}
	if !qty.IsPositive() {
		return decimal.Zero, domain.NewValidationError("quantity", "debe ser mayor que cero")
	}
	return p.Direction.Apply(qty), nil
}

// Types lista las políticas ordenadas por código.
func Types() []Policy {
	out := make([]Policy, 0, len(policies))
	for _, p := range policies {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out
}
