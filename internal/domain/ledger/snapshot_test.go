package ledger_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/epi-estoque/internal/domain/entity"
	"github.com/jhoicas/epi-estoque/internal/domain/ledger"
)

func TestBuildSnapshot_EscenarioA(t *testing.T) {
	m := material("M1", "Luva nitrílica", "10")
	m.MinimumStock = num("5")

	snap := ledger.BuildSnapshot(
		[]entity.Material{m},
		[]entity.InflowEvent{inflow("M1", "20", "2024-01-10")},
		[]entity.OutflowEvent{outflow("M1", "17", "2024-01-15")},
		ledger.AllTime(),
	)

	require.Len(t, snap.Items, 1)
	item := snap.Items[0]
	assert.True(t, item.CurrentStock.Equal(d("3")), "saldo: %s", item.CurrentStock)
	assert.Equal(t, "30.00", item.TotalValue.StringFixed(2))
	assert.True(t, item.TotalInflow.Equal(d("20")))
	assert.True(t, item.TotalOutflow.Equal(d("17")))

	require.Len(t, snap.Alerts, 1)
	assert.Equal(t, "M1", snap.Alerts[0].MaterialID)
	assert.True(t, snap.Alerts[0].Deficit.Equal(d("2")))
}

func TestBuildSnapshot_AlertaInclusiva(t *testing.T) {
	m := material("M1", "Capacete", "1")
	m.MinimumStock = num("5")

	snap := ledger.BuildSnapshot(
		[]entity.Material{m},
		[]entity.InflowEvent{inflow("M1", "5", "2024-01-10")},
		nil,
		ledger.AllTime(),
	)

	require.Len(t, snap.Alerts, 1, "saldo igual al mínimo debe alertar")
	assert.True(t, snap.Alerts[0].Deficit.IsZero())
}

func TestBuildSnapshot_MinimoAusenteNoEsCero(t *testing.T) {
	sinMinimo := material("M1", "Protetor auricular", "2")
	minimoCero := material("M2", "Avental", "2")
	minimoCero.MinimumStock = num("0")
	validity := 180
	sinMinimo.ValidityDays = &validity

	snap := ledger.BuildSnapshot(
		[]entity.Material{sinMinimo, minimoCero},
		nil,
		[]entity.OutflowEvent{outflow("M1", "3", "2024-01-01")},
		ledger.AllTime(),
	)

	require.Len(t, snap.Items, 2)
	assert.Nil(t, snap.Items[0].MinimumStock)
	assert.True(t, snap.Items[0].CurrentStock.Equal(d("-3")))
	assert.Equal(t, 180, snap.Items[0].ValidityDays)
	require.NotNil(t, snap.Items[1].MinimumStock)
	assert.True(t, snap.Items[1].MinimumStock.IsZero())

	require.Len(t, snap.Alerts, 1, "solo alerta el material con mínimo configurado")
	assert.Equal(t, "M2", snap.Alerts[0].MaterialID)
}

func TestBuildSnapshot_CamposInvalidosCuentanCero(t *testing.T) {
	m := entity.Material{ID: "M1", Name: "Bota"} // sin valor unitario ni validez

	snap := ledger.BuildSnapshot(
		[]entity.Material{m},
		[]entity.InflowEvent{inflow("M1", "4", "2024-01-01")},
		nil,
		ledger.AllTime(),
	)

	item := snap.Items[0]
	assert.True(t, item.UnitValue.IsZero())
	assert.True(t, item.TotalValue.IsZero())
	assert.Equal(t, 0, item.ValidityDays)
	assert.Empty(t, snap.Alerts)
}

func TestBuildSnapshot_RedondeaSoloAlFinal(t *testing.T) {
	m := material("M1", "Máscara PFF2", "0.335")

	snap := ledger.BuildSnapshot(
		[]entity.Material{m},
		[]entity.InflowEvent{inflow("M1", "3", "2024-01-01")},
		nil,
		ledger.AllTime(),
	)

	assert.Equal(t, "1.01", snap.Items[0].TotalValue.StringFixed(2))
}

func TestBuildSnapshot_PorPeriodo(t *testing.T) {
	m := material("M1", "Luva", "1")
	inflows := []entity.InflowEvent{
		inflow("M1", "10", "2023-06-01"),
		inflow("M1", "4", "2024-06-01"),
	}

	all := ledger.BuildSnapshot([]entity.Material{m}, inflows, nil, ledger.AllTime())
	y2024 := ledger.BuildSnapshot([]entity.Material{m}, inflows, nil, ledger.YearOf(2024))

	assert.True(t, all.Items[0].CurrentStock.Equal(d("14")))
	assert.True(t, y2024.Items[0].CurrentStock.Equal(d("4")))
}

func TestBuildSnapshot_Deterministico(t *testing.T) {
	materials := []entity.Material{
		material("M2", "Óculos de proteção", "12.5"),
		material("M1", "Luva", "3.3333"),
		material("M3", "Cinto", "80"),
	}
	materials[1].MinimumStock = num("100")
	inflows, outflows := sampleFlows()

	first, err := json.Marshal(ledger.BuildSnapshot(materials, inflows, outflows, ledger.YearOf(2024)))
	require.NoError(t, err)
	second, err := json.Marshal(ledger.BuildSnapshot(materials, inflows, outflows, ledger.YearOf(2024)))
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))

	snap := ledger.BuildSnapshot(materials, inflows, outflows, ledger.YearOf(2024))
	ids := []string{snap.Items[0].MaterialID, snap.Items[1].MaterialID, snap.Items[2].MaterialID}
	assert.Equal(t, []string{"M2", "M1", "M3"}, ids, "respeta el orden de entrada")
}

func TestBuildSnapshot_ListasVaciasSerializanComoArreglo(t *testing.T) {
	raw, err := json.Marshal(ledger.BuildSnapshot(nil, nil, nil, ledger.AllTime()))
	require.NoError(t, err)

	assert.JSONEq(t, `{"items":[],"alerts":[]}`, string(raw))
}

func TestBuildSnapshot_TotalValueUsaSaldoNegativo(t *testing.T) {
	m := material("M1", "Luva", "2.5")

	snap := ledger.BuildSnapshot(
		[]entity.Material{m},
		nil,
		[]entity.OutflowEvent{outflow("M1", "2", "2024-01-01")},
		ledger.AllTime(),
	)

	assert.True(t, snap.Items[0].TotalValue.Equal(decimal.NewFromInt(-5)))
}
