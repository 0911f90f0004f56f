package ledger

import (
	"strings"
	"time"

	"github.com/jhoicas/epi-estoque/internal/domain/entity"
)

// DateField selecciona el atributo de fecha (texto crudo) con el que se
// compara un evento.
type DateField[E any] func(E) string

// EntryDate es el campo de fecha de las entradas.
func EntryDate(e entity.InflowEvent) string { return e.EntryDate }

// DeliveryDate es el campo de fecha de las salidas.
func DeliveryDate(e entity.OutflowEvent) string { return e.DeliveryDate }

// Formatos aceptados para las fechas de eventos. Sin zona se asume UTC.
var dateLayouts = [...]string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05Z07",
}

// ParseDate interpreta la fecha cruda de un evento y la devuelve en UTC.
// Devuelve false si está vacía o no se puede interpretar.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// eventMonth devuelve el (año, mes) UTC del evento.
func eventMonth[E any](event E, date DateField[E]) (year, month int, ok bool) {
	t, ok := ParseDate(date(event))
	if !ok {
		return 0, 0, false
	}
	return t.Year(), int(t.Month()), true
}

// MatchesPeriod es el predicado total del filtro de libro.
//
//   - Unrestricted: siempre true.
//   - Fecha ausente o inválida: false.
//   - Year: igualdad de año. YearMonth: igualdad de año y mes.
//   - Range: el índice year*12+month del evento cae en [inicio, fin], lo que
//     resuelve los cruces de año (nov/2023 – feb/2024) sin casos especiales.
func MatchesPeriod[E any](event E, date DateField[E], p Period) bool {
	if p.IsUnrestricted() {
		return true
	}
	year, month, ok := eventMonth(event, date)
	if !ok {
		return false
	}
	return p.containsMonth(year, month)
}

func (p Period) containsMonth(year, month int) bool {
	switch p.kind {
	case Unrestricted:
		return true
	case Year:
		return year == p.start.Year
	case YearMonth:
		return year == p.start.Year && month == p.start.Month
	case Range:
		idx := monthIndex(year, month)
		return idx >= p.start.firstIndex() && idx <= p.end.lastIndex()
	default:
		return false
	}
}

// FilterEvents devuelve, en el mismo orden, los eventos dentro del período.
func FilterEvents[E any](events []E, date DateField[E], p Period) []E {
	out := make([]E, 0, len(events))
	for _, e := range events {
		if MatchesPeriod(e, date, p) {
			out = append(out, e)
		}
	}
	return out
}
