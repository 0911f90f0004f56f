package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/epi-estoque/internal/domain/entity"
)

// StockItem es la foto de stock de un material.
type StockItem struct {
	MaterialID   string           `json:"materialId"`
	Name         string           `json:"name"`
	Manufacturer string           `json:"manufacturer"`
	CA           string           `json:"ca,omitempty"`
	MinimumStock *decimal.Decimal `json:"minimumStock"` // nil = sin alerta configurada
	UnitValue    decimal.Decimal  `json:"unitValue"`
	ValidityDays int              `json:"validityDays"`
	TotalInflow  decimal.Decimal  `json:"totalInflow"`
	TotalOutflow decimal.Decimal  `json:"totalOutflow"`
	CurrentStock decimal.Decimal  `json:"currentStock"`
	TotalValue   decimal.Decimal  `json:"totalValue"` // round2(CurrentStock * UnitValue)
}

// StockAlert es un material con saldo igual o menor al mínimo configurado.
type StockAlert struct {
	MaterialID   string          `json:"materialId"`
	Name         string          `json:"name"`
	Manufacturer string          `json:"manufacturer"`
	MinimumStock decimal.Decimal `json:"minimumStock"`
	CurrentStock decimal.Decimal `json:"currentStock"`
	Deficit      decimal.Decimal `json:"deficit"` // MinimumStock - CurrentStock, >= 0
}

// Snapshot es el resultado de BuildSnapshot. Items sigue el orden de los
// materiales recibidos; Alerts es el subconjunto bajo el mínimo, en el mismo orden.
type Snapshot struct {
	Items  []StockItem  `json:"items"`
	Alerts []StockAlert `json:"alerts"`
}

// BuildSnapshot arma la foto de stock de todos los materiales en el período.
//
// Para cada material: el mínimo inválido queda nil, el valor unitario y la
// validez inválidos cuentan cero, CurrentStock sale del mismo cálculo que
// Balance y TotalValue se redondea a 2 decimales. Hay alerta cuando hay mínimo
// y CurrentStock <= MinimumStock.
//
// Mismas entradas, mismo resultado (y mismo JSON). Movimientos de materiales
// que no están en la lista se ignoran.
func BuildSnapshot(
	materials []entity.Material,
	inflows []entity.InflowEvent,
	outflows []entity.OutflowEvent,
	period Period,
) Snapshot {
	totals := Tally(inflows, outflows, period)

	snap := Snapshot{
		Items:  make([]StockItem, 0, len(materials)),
		Alerts: make([]StockAlert, 0),
	}
	for _, m := range materials {
		t := totals[m.ID]
		item := newStockItem(m, t)
		snap.Items = append(snap.Items, item)

		if alert, ok := alertFor(item); ok {
			snap.Alerts = append(snap.Alerts, alert)
		}
	}
	return snap
}

func newStockItem(m entity.Material, t Totals) StockItem {
	unit := decimalOrZero(m.UnitValue)
	stock := t.Balance()

	item := StockItem{
		MaterialID:   m.ID,
		Name:         m.Name,
		Manufacturer: m.Manufacturer,
		CA:           m.CA,
		UnitValue:    unit,
		TotalInflow:  t.Inflow,
		TotalOutflow: t.Outflow,
		CurrentStock: stock,
		TotalValue:   stock.Mul(unit).Round(2),
	}
	if m.MinimumStock.Valid {
		minimum := m.MinimumStock.Decimal
		item.MinimumStock = &minimum
	}
	if m.ValidityDays != nil {
		item.ValidityDays = *m.ValidityDays
	}
	return item
}

func alertFor(item StockItem) (StockAlert, bool) {
	if item.MinimumStock == nil || item.CurrentStock.GreaterThan(*item.MinimumStock) {
		return StockAlert{}, false
	}
	return StockAlert{
		MaterialID:   item.MaterialID,
		Name:         item.Name,
		Manufacturer: item.Manufacturer,
		MinimumStock: *item.MinimumStock,
		CurrentStock: item.CurrentStock,
		Deficit:      item.MinimumStock.Sub(item.CurrentStock),
	}, true
}

func decimalOrZero(d decimal.NullDecimal) decimal.Decimal {
	if !d.Valid {
		return decimal.Zero
	}
	return d.Decimal
}
