package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/epi-estoque/internal/application/inventory"
	"github.com/jhoicas/epi-estoque/internal/domain"
	"github.com/jhoicas/epi-estoque/internal/domain/entity"
	"github.com/jhoicas/epi-estoque/internal/domain/ledger"
	"github.com/jhoicas/epi-estoque/internal/infrastructure/memory"
	"github.com/jhoicas/epi-estoque/pkg/logger"
)

const company = "c1"

func num(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newStore() *memory.Store {
	s := memory.NewStore()
	s.Put(company, memory.Company{
		Materials: []entity.Material{
			{ID: "M1", Name: "Luva", MinimumStock: num("5"), UnitValue: num("2.50")},
			{ID: "M2", Name: "Capacete", UnitValue: num("40")},
		},
		Inflows: []entity.InflowEvent{
			{ID: "E1", MaterialID: "M1", Quantity: num("10"), EntryDate: "2024-01-05"},
			{ID: "E2", MaterialID: "M2", Quantity: num("3"), EntryDate: "2024-02-01"},
		},
		Outflows: []entity.OutflowEvent{
			{ID: "S1", MaterialID: "M1", Quantity: num("3"), DeliveryDate: "2024-01-10", Status: entity.OutflowStatusActive},
			{ID: "S2", MaterialID: "M1", Quantity: num("4"), DeliveryDate: "2024-01-11", Status: entity.OutflowStatusCanceled},
			{ID: "S3", MaterialID: "M2", Quantity: num("5"), DeliveryDate: "2024-03-01"},
		},
	})
	return s
}

func newUseCase(s *memory.Store) *inventory.StockUseCase {
	return inventory.NewStockUseCase(s, s.Inflows(), s.Outflows(""), logger.Nop(), 0)
}

func TestGetSnapshot_SaldoValorYAlerta(t *testing.T) {
	uc := newUseCase(newStore())

	snap, err := uc.GetSnapshot(context.Background(), company, ledger.AllTime())
	require.NoError(t, err)

	require.Len(t, snap.Items, 2)
	luva := snap.Items[0]
	assert.Equal(t, "M1", luva.MaterialID)
	assert.True(t, luva.CurrentStock.Equal(d("7")), "la salida cancelada no descuenta")
	assert.Equal(t, "17.50", luva.TotalValue.StringFixed(2))
	assert.Empty(t, snap.Alerts, "7 > 5")

	assert.Equal(t, "unrestricted", snap.Period.Kind)
}

func TestGetSnapshot_PeriodoRecorta(t *testing.T) {
	uc := newUseCase(newStore())

	snap, err := uc.GetSnapshot(context.Background(), company, ledger.MonthOf(2024, 2))
	require.NoError(t, err)

	assert.True(t, snap.Items[0].CurrentStock.IsZero())
	assert.True(t, snap.Items[1].CurrentStock.Equal(d("3")))
	require.Len(t, snap.Alerts, 1)
	assert.Equal(t, "M1", snap.Alerts[0].MaterialID)
}

func TestGetAlerts(t *testing.T) {
	s := newStore()
	uc := inventory.NewStockUseCase(s, s.Inflows(), s.Outflows("inexistente"), logger.Nop(), 0)

	// Con otro estado de cancelación S2 cuenta: 10 - 3 - 4 = 3 <= 5.
	alerts, err := uc.GetAlerts(context.Background(), company, ledger.AllTime())
	require.NoError(t, err)

	require.Equal(t, 1, alerts.Count)
	assert.Equal(t, "M1", alerts.Alerts[0].MaterialID)
	assert.True(t, alerts.Alerts[0].Deficit.Equal(d("2")))
}

func TestGetBalance(t *testing.T) {
	uc := newUseCase(newStore())

	bal, err := uc.GetBalance(context.Background(), company, "M2", ledger.AllTime())
	require.NoError(t, err)

	assert.Equal(t, "Capacete", bal.Name)
	assert.True(t, bal.TotalInflow.Equal(d("3")))
	assert.True(t, bal.TotalOutflow.Equal(d("5")))
	assert.True(t, bal.Balance.Equal(d("-2")))
	assert.True(t, bal.Negative)
}

func TestGetBalance_MaterialInexistente(t *testing.T) {
	uc := newUseCase(newStore())

	_, err := uc.GetBalance(context.Background(), company, "M9", ledger.AllTime())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetSnapshot_PropagaErrores(t *testing.T) {
	s := newStore()
	boom := errors.New("timeout de red")
	s.SetErr(boom)

	_, err := newUseCase(s).GetSnapshot(context.Background(), company, ledger.AllTime())
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "stock:")
}
