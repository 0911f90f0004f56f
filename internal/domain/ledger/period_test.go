package ledger_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/epi-estoque/internal/domain/ledger"
)

func utc(y int, m time.Month, d, h, mi, s, ms int) time.Time {
	return time.Date(y, m, d, h, mi, s, ms*int(time.Millisecond), time.UTC)
}

func assertRange(t *testing.T, p ledger.Period, start, end time.Time) {
	t.Helper()
	r, ok := ledger.ResolveRange(p)
	require.True(t, ok, "el período %q debería tener rango", p)
	assert.True(t, r.Start.Equal(start), "inicio: esperado %s, obtenido %s", start, r.Start)
	assert.True(t, r.End.Equal(end), "fin: esperado %s, obtenido %s", end, r.End)
}

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		name   string
		params ledger.PeriodParams
		want   ledger.Period
	}{
		{"sin parámetros", ledger.PeriodParams{}, ledger.AllTime()},
		{"solo año", ledger.PeriodParams{Year: "2024"}, ledger.YearOf(2024)},
		{"año y mes", ledger.PeriodParams{Year: "2024", Month: "3"}, ledger.MonthOf(2024, 3)},
		{"mes con cero a la izquierda", ledger.PeriodParams{Year: "2024", Month: "03"}, ledger.MonthOf(2024, 3)},
		{"espacios", ledger.PeriodParams{Year: " 2024 ", Month: " 7"}, ledger.MonthOf(2024, 7)},
		{"año inválido", ledger.PeriodParams{Year: "abc", Month: "3"}, ledger.AllTime()},
		{"año fuera de rango", ledger.PeriodParams{Year: "0"}, ledger.AllTime()},
		{"mes inválido degrada a año", ledger.PeriodParams{Year: "2024", Month: "13"}, ledger.YearOf(2024)},
		{"mes no numérico degrada a año", ledger.PeriodParams{Year: "2024", Month: "mar"}, ledger.YearOf(2024)},
		{
			"intervalo completo",
			ledger.PeriodParams{PeriodStart: "2023-11", PeriodEnd: "2024-02"},
			ledger.Between(ledger.Bound{Year: 2023, Month: 11}, ledger.Bound{Year: 2024, Month: 2}),
		},
		{
			"intervalo gana sobre año/mes",
			ledger.PeriodParams{PeriodStart: "2023-11", PeriodEnd: "2024-02", Year: "2020", Month: "5"},
			ledger.Between(ledger.Bound{Year: 2023, Month: 11}, ledger.Bound{Year: 2024, Month: 2}),
		},
		{
			"solo inicio se refleja",
			ledger.PeriodParams{PeriodStart: "2024-05"},
			ledger.Between(ledger.Bound{Year: 2024, Month: 5}, ledger.Bound{Year: 2024, Month: 5}),
		},
		{
			"solo fin se refleja",
			ledger.PeriodParams{PeriodEnd: "2024-06", Year: "2020"},
			ledger.Between(ledger.Bound{Year: 2024, Month: 6}, ledger.Bound{Year: 2024, Month: 6}),
		},
		{
			"extremos solo año",
			ledger.PeriodParams{PeriodStart: "2022", PeriodEnd: "2023-03"},
			ledger.Between(ledger.Bound{Year: 2022}, ledger.Bound{Year: 2023, Month: 3}),
		},
		{
			"fecha completa como extremo",
			ledger.PeriodParams{PeriodStart: "2024-03-15", PeriodEnd: "2024-04-01"},
			ledger.Between(ledger.Bound{Year: 2024, Month: 3}, ledger.Bound{Year: 2024, Month: 4}),
		},
		{
			"extremo inválido cae al par simple",
			ledger.PeriodParams{PeriodStart: "xx", PeriodEnd: "yy", Year: "2021"},
			ledger.YearOf(2021),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ledger.ParsePeriod(tt.params))
		})
	}
}

func TestBetween_InvierteExtremosAlReves(t *testing.T) {
	p := ledger.Between(ledger.Bound{Year: 2024, Month: 2}, ledger.Bound{Year: 2023, Month: 11})

	assert.Equal(t, ledger.Range, p.Kind())
	assert.Equal(t, ledger.Bound{Year: 2023, Month: 11}, p.Start())
	assert.Equal(t, ledger.Bound{Year: 2024, Month: 2}, p.End())
}

func TestResolveRange_MesRoundTrip(t *testing.T) {
	p := ledger.ParsePeriod(ledger.PeriodParams{Year: "2024", Month: "3"})

	assertRange(t, p, utc(2024, time.March, 1, 0, 0, 0, 0), utc(2024, time.March, 31, 23, 59, 59, 999))
}

func TestResolveRange(t *testing.T) {
	t.Run("febrero bisiesto", func(t *testing.T) {
		assertRange(t, ledger.MonthOf(2024, 2),
			utc(2024, time.February, 1, 0, 0, 0, 0), utc(2024, time.February, 29, 23, 59, 59, 999))
	})
	t.Run("febrero no bisiesto", func(t *testing.T) {
		assertRange(t, ledger.MonthOf(2023, 2),
			utc(2023, time.February, 1, 0, 0, 0, 0), utc(2023, time.February, 28, 23, 59, 59, 999))
	})
	t.Run("diciembre", func(t *testing.T) {
		assertRange(t, ledger.MonthOf(2023, 12),
			utc(2023, time.December, 1, 0, 0, 0, 0), utc(2023, time.December, 31, 23, 59, 59, 999))
	})
	t.Run("año completo", func(t *testing.T) {
		assertRange(t, ledger.YearOf(2024),
			utc(2024, time.January, 1, 0, 0, 0, 0), utc(2024, time.December, 31, 23, 59, 59, 999))
	})
	t.Run("intervalo año a mes", func(t *testing.T) {
		p := ledger.Between(ledger.Bound{Year: 2023}, ledger.Bound{Year: 2024, Month: 2})
		assertRange(t, p, utc(2023, time.January, 1, 0, 0, 0, 0), utc(2024, time.February, 29, 23, 59, 59, 999))
	})
	t.Run("intervalo mes a año", func(t *testing.T) {
		p := ledger.Between(ledger.Bound{Year: 2023, Month: 11}, ledger.Bound{Year: 2024})
		assertRange(t, p, utc(2023, time.November, 1, 0, 0, 0, 0), utc(2024, time.December, 31, 23, 59, 59, 999))
	})
	t.Run("sin restricción", func(t *testing.T) {
		_, ok := ledger.ResolveRange(ledger.AllTime())
		assert.False(t, ok)
	})
}

func TestDateRange_ContainsInclusivo(t *testing.T) {
	r, ok := ledger.ResolveRange(ledger.MonthOf(2024, 3))
	require.True(t, ok)

	assert.True(t, r.Contains(r.Start))
	assert.True(t, r.Contains(r.End))
	assert.False(t, r.Contains(r.End.Add(time.Millisecond)))
	assert.False(t, r.Contains(r.Start.Add(-time.Millisecond)))
}

func TestPeriod_String(t *testing.T) {
	assert.Equal(t, "", ledger.AllTime().String())
	assert.Equal(t, "2024", ledger.YearOf(2024).String())
	assert.Equal(t, "2024-03", ledger.MonthOf(2024, 3).String())
	assert.Equal(t, "2023-11..2024-02",
		ledger.Between(ledger.Bound{Year: 2023, Month: 11}, ledger.Bound{Year: 2024, Month: 2}).String())
	assert.Equal(t, "range", ledger.Between(ledger.Bound{Year: 2023}, ledger.Bound{Year: 2024}).Kind().String())
}

func TestPeriod_ValorCeroEsSinRestriccion(t *testing.T) {
	var p ledger.Period
	assert.True(t, p.IsUnrestricted())
	assert.Equal(t, ledger.Unrestricted, p.Kind())
}

func TestSummarize(t *testing.T) {
	s := ledger.Summarize(ledger.MonthOf(2024, 3))

	assert.Equal(t, "year_month", s.Kind)
	assert.Equal(t, "2024-03", s.Label)
	require.NotNil(t, s.Range)
	assert.True(t, s.Range.End.Equal(utc(2024, time.March, 31, 23, 59, 59, 999)))

	raw, err := json.Marshal(ledger.Summarize(ledger.AllTime()))
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"unrestricted","label":""}`, string(raw))
}
