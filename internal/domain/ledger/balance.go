package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/epi-estoque/internal/domain/entity"
)

// Movement es lo mínimo que el ledger necesita de un evento de stock.
// entity.InflowEvent y entity.OutflowEvent lo implementan.
type Movement interface {
	MaterialKey() string
	Qty() decimal.Decimal
}

// Totals es el acumulado de un material: entradas, salidas y saldo.
type Totals struct {
	Inflow  decimal.Decimal `json:"inflow"`
	Outflow decimal.Decimal `json:"outflow"`
}

// Balance devuelve entradas - salidas.
func (t Totals) Balance() decimal.Decimal { return t.Inflow.Sub(t.Outflow) }

// Balance calcula el saldo de un material en el período: filtra cada flujo
// por material y por su propio campo de fecha, suma cantidades (inválidas
// cuentan cero) y devuelve sum(entradas) - sum(salidas).
//
// El resultado puede ser negativo y se devuelve tal cual.
//
// Precondición: toda salida recibida es un movimiento válido. Las salidas
// canceladas se excluyen antes de llamar; aquí no se inspecciona estado.
func Balance(
	materialID string,
	inflows []entity.InflowEvent,
	outflows []entity.OutflowEvent,
	period Period,
) decimal.Decimal {
	in := sumFor(materialID, inflows, EntryDate, period)
	out := sumFor(materialID, outflows, DeliveryDate, period)
	return in.Sub(out)
}

// Tally acumula en una pasada las entradas y salidas de todos los materiales
// dentro del período. Para cada material, Tally(...)[id].Balance() es igual a
// Balance(id, ...).
func Tally(
	inflows []entity.InflowEvent,
	outflows []entity.OutflowEvent,
	period Period,
) map[string]Totals {
	totals := make(map[string]Totals)
	accumulate(inflows, EntryDate, period, func(id string, q decimal.Decimal) {
		t := totals[id]
		t.Inflow = t.Inflow.Add(q)
		totals[id] = t
	})
	accumulate(outflows, DeliveryDate, period, func(id string, q decimal.Decimal) {
		t := totals[id]
		t.Outflow = t.Outflow.Add(q)
		totals[id] = t
	})
	return totals
}

func sumFor[E Movement](materialID string, events []E, date DateField[E], period Period) decimal.Decimal {
	sum := decimal.Zero
	accumulate(events, date, period, func(id string, q decimal.Decimal) {
		if id == materialID {
			sum = sum.Add(q)
		}
	})
	return sum
}

// accumulate es el único camino de suma compartido por Balance y Tally.
func accumulate[E Movement](events []E, date DateField[E], period Period, add func(materialID string, qty decimal.Decimal)) {
	for _, e := range events {
		if !MatchesPeriod(e, date, period) {
			continue
		}
		add(e.MaterialKey(), e.Qty())
	}
}
