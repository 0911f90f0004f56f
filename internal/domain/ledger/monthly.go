package ledger

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// UnitValueFunc resuelve el valor unitario con el que se valora un evento.
type UnitValueFunc[E any] func(E) decimal.Decimal

// MonthlyBucket es el acumulado de un mes.
type MonthlyBucket struct {
	Year     int             `json:"year"`
	Month    int             `json:"month"`
	Label    string          `json:"label"` // "2024-03"
	Quantity decimal.Decimal `json:"quantity"`
	Value    decimal.Decimal `json:"value"`
}

type monthKey struct{ year, month int }

type monthAcc struct {
	quantity decimal.Decimal
	value    decimal.Decimal
}

// GroupMonthly agrupa los eventos por (año, mes) UTC de su fecha y devuelve
// los meses en orden ascendente.
//
// Eventos con fecha inválida se omiten. Cantidad y valor se acumulan sin
// redondeo; el valor se redondea a 2 decimales solo al emitir el mes.
// Con unitValue nil el valor queda en cero.
func GroupMonthly[E Movement](events []E, date DateField[E], unitValue UnitValueFunc[E]) []MonthlyBucket {
	acc := make(map[monthKey]monthAcc)
	for _, e := range events {
		year, month, ok := eventMonth(e, date)
		if !ok {
			continue
		}
		k := monthKey{year, month}
		a := acc[k]
		q := e.Qty()
		a.quantity = a.quantity.Add(q)
		if unitValue != nil {
			a.value = a.value.Add(q.Mul(unitValue(e)))
		}
		acc[k] = a
	}

	buckets := make([]MonthlyBucket, 0, len(acc))
	for k, a := range acc {
		buckets = append(buckets, MonthlyBucket{
			Year:     k.year,
			Month:    k.month,
			Label:    fmt.Sprintf("%04d-%02d", k.year, k.month),
			Quantity: a.quantity,
			Value:    a.value.Round(2),
		})
	}
	sort.Slice(buckets, func(i, j int) bool {
		return monthIndex(buckets[i].Year, buckets[i].Month) < monthIndex(buckets[j].Year, buckets[j].Month)
	})
	return buckets
}
