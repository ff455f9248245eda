package inventory

import "github.com/shopspring/decimal"

// Escalas de las columnas NUMERIC del esquema.
const (
	QuantityScale  int32 = 3
	UnitPriceScale int32 = 4
)

// FitsScale indica si d se representa sin redondeo con places decimales.
// 1.2300 cabe en 3; 1.2345 no.
func FitsScale(d decimal.Decimal, places int32) bool {
	return d.Equal(d.Truncate(places))
}

// LineAmount importe de una línea de entrada: cantidad * precio unitario.
// Sin precio no hay importe (nil).
func LineAmount(qty decimal.Decimal, unitPrice *decimal.Decimal) *decimal.Decimal {
	if unitPrice == nil {
		return nil
	}
	total := qty.Mul(*unitPrice).Round(UnitPriceScale)
	return &total
}
