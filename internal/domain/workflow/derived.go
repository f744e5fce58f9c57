package workflow

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Maquila-api/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// ApplyDerivedFields recalcula la merma en cada guardado (idempotente).
// Solo aplica a la conversión pergamino seco → excelso con kg después de trilla;
// en cualquier otro caso limpia kg después de trilla y merma.
func ApplyDerivedFields(o *entity.Order) {
	if o.OriginalCoffeeType != entity.CoffeeTypeCPS || o.CoffeeType != entity.CoffeeTypeExcelso || o.KgAfterHulling == nil {
		o.KgAfterHulling = nil
		o.ShrinkPct = nil
		return
	}
	shrink := decimal.Zero
	if o.QuantityKg.IsPositive() {
		shrink = o.QuantityKg.Sub(*o.KgAfterHulling).Div(o.QuantityKg).Mul(hundred).Round(2)
	}
	o.ShrinkPct = &shrink
}

// Percent devuelve part/whole × 100 redondeado a 2 decimales (0 si whole ≤ 0).
func Percent(part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred).Round(2)
}
