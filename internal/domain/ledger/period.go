// Package ledger es el motor puro de saldos de EPIs: convierte los flujos de
// entradas y salidas en saldos por período, alertas de stock mínimo y
// tendencias mensuales.
//
// No hace I/O, no guarda estado entre llamadas y no usa variables globales
// mutables: todas las funciones son seguras para uso concurrente.
// Los datos mal formados se degradan (cero, ausente u omitir la fila); el
// paquete no retorna errores.
package ledger

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// PeriodKind identifica la forma de un Period.
type PeriodKind int

const (
	Unrestricted PeriodKind = iota // sin filtro: coincide con todo
	Year                           // un año completo
	YearMonth                      // un mes de un año
	Range                          // intervalo de meses/años inclusivo
)

func (k PeriodKind) String() string {
	switch k {
	case Year:
		return "year"
	case YearMonth:
		return "year_month"
	case Range:
		return "range"
	default:
		return "unrestricted"
	}
}

// Bound es un extremo de período. Month == 0 significa el año completo.
type Bound struct {
	Year  int `json:"year"`
	Month int `json:"month,omitempty"`
}

// HasMonth indica si el extremo tiene mes.
func (b Bound) HasMonth() bool { return b.Month != 0 }

func (b Bound) String() string {
	if b.HasMonth() {
		return fmt.Sprintf("%04d-%02d", b.Year, b.Month)
	}
	return fmt.Sprintf("%04d", b.Year)
}

// firstIndex y lastIndex linealizan el extremo como year*12+month; un extremo
// sin mes abarca de enero a diciembre.
func (b Bound) firstIndex() int {
	if b.HasMonth() {
		return monthIndex(b.Year, b.Month)
	}
	return monthIndex(b.Year, 1)
}

func (b Bound) lastIndex() int {
	if b.HasMonth() {
		return monthIndex(b.Year, b.Month)
	}
	return monthIndex(b.Year, 12)
}

func monthIndex(year, month int) int { return year*12 + month }

// Period es el período canónico. Las combinaciones ilegales no son
// representables: los campos no se exportan y solo se construye con
// AllTime, YearOf, MonthOf o Between. El valor cero es Unrestricted.
type Period struct {
	kind  PeriodKind
	start Bound
	end   Bound
}

// AllTime devuelve el período sin restricción.
func AllTime() Period { return Period{} }

// YearOf devuelve el período de un año completo.
func YearOf(year int) Period {
	b := Bound{Year: year}
	return Period{kind: Year, start: b, end: b}
}

// MonthOf devuelve el período de un mes.
func MonthOf(year, month int) Period {
	b := Bound{Year: year, Month: month}
	return Period{kind: YearMonth, start: b, end: b}
}

// Between devuelve el intervalo inclusivo [start, end]. Si start es posterior
// a end los extremos se intercambian.
func Between(start, end Bound) Period {
	if start.firstIndex() > end.lastIndex() {
		start, end = end, start
	}
	return Period{kind: Range, start: start, end: end}
}

// Kind devuelve la forma del período.
func (p Period) Kind() PeriodKind { return p.kind }

// IsUnrestricted indica si el período no filtra nada.
func (p Period) IsUnrestricted() bool { return p.kind == Unrestricted }

// Start devuelve el extremo inicial (el único extremo en Year/YearMonth).
func (p Period) Start() Bound { return p.start }

// End devuelve el extremo final (igual a Start en Year/YearMonth).
func (p Period) End() Bound { return p.end }

// String devuelve una etiqueta estable: "", "2024", "2024-03" o "2023-11..2024-02".
func (p Period) String() string {
	switch p.kind {
	case Year, YearMonth:
		return p.start.String()
	case Range:
		return p.start.String() + ".." + p.end.String()
	default:
		return ""
	}
}

// ── Parámetros de entrada ─────────────────────────────────────────────────────

// PeriodParams son los parámetros crudos con los que el llamador describe un período.
// PeriodStart/PeriodEnd ("YYYY-MM" o "YYYY") tienen prioridad sobre Year/Month.
type PeriodParams struct {
	PeriodStart string
	PeriodEnd   string
	Year        string
	Month       string
}

// ParsePeriod normaliza los parámetros a un Period canónico.
//
//   - El intervalo explícito gana sobre el par simple cuando ambos están presentes.
//   - Si falta un extremo del intervalo se copia del otro (intervalo de un punto).
//   - Valores no numéricos o fuera de rango cuentan como ausentes, nunca como error.
//   - Sin entrada utilizable devuelve AllTime().
func ParsePeriod(params PeriodParams) Period {
	start, hasStart := parseBound(params.PeriodStart)
	end, hasEnd := parseBound(params.PeriodEnd)
	switch {
	case hasStart && hasEnd:
		return Between(start, end)
	case hasStart:
		return Between(start, start)
	case hasEnd:
		return Between(end, end)
	}

	year, ok := parseYear(params.Year)
	if !ok {
		return AllTime()
	}
	if month, ok := parseMonth(params.Month); ok {
		return MonthOf(year, month)
	}
	return YearOf(year)
}

// parseBound interpreta "YYYY-MM" o "YYYY". Un mes inválido degrada a año completo.
func parseBound(s string) (Bound, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Bound{}, false
	}
	parts := strings.SplitN(s, "-", 3)
	year, ok := parseYear(parts[0])
	if !ok {
		return Bound{}, false
	}
	b := Bound{Year: year}
	if len(parts) > 1 {
		if month, ok := parseMonth(parts[1]); ok {
			b.Month = month
		}
	}
	return b, true
}

func parseYear(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 || n > 9999 {
		return 0, false
	}
	return n, true
}

func parseMonth(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 || n > 12 {
		return 0, false
	}
	return n, true
}

// ── Rango concreto ────────────────────────────────────────────────────────────

// DateRange es un rango UTC inclusivo en ambos extremos.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains indica si t cae dentro del rango.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// ResolveRange convierte el período en un rango UTC concreto.
// Mes: día 1 00:00:00.000 a último día 23:59:59.999. Año: 1 de enero a 31 de
// diciembre 23:59:59.999. Intervalo: inicio del extremo inicial a fin del final.
// Devuelve false para Unrestricted.
func ResolveRange(p Period) (DateRange, bool) {
	if p.IsUnrestricted() {
		return DateRange{}, false
	}
	return DateRange{
		Start: boundStart(p.start),
		End:   boundEnd(p.end),
	}, true
}

func boundStart(b Bound) time.Time {
	month := time.January
	if b.HasMonth() {
		month = time.Month(b.Month)
	}
	return time.Date(b.Year, month, 1, 0, 0, 0, 0, time.UTC)
}

// boundEnd es el último milisegundo del mes (o del año): primer instante del
// período siguiente menos 1ms.
func boundEnd(b Bound) time.Time {
	var next time.Time
	if b.HasMonth() {
		next = time.Date(b.Year, time.Month(b.Month)+1, 1, 0, 0, 0, 0, time.UTC)
	} else {
		next = time.Date(b.Year+1, time.January, 1, 0, 0, 0, 0, time.UTC)
	}
	return next.Add(-time.Millisecond)
}
