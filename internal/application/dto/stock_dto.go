package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/epi-estoque/internal/domain/ledger"
)

// Modos de la foto de stock embebida en el dashboard.
const (
	ModeAllTime  = "all"
	ModeMovement = "movement"
)

// PeriodQuery son los parámetros de período de los endpoints de stock y dashboard.
// Valores no numéricos o fuera de rango se ignoran (sin filtro), no son error.
type PeriodQuery struct {
	PeriodStart string `query:"periodStart"`
	PeriodEnd   string `query:"periodEnd"`
	Year        string `query:"year"`
	Month       string `query:"month"`
	Mode        string `query:"mode" validate:"omitempty,oneof=all movement"`
}

// Period normaliza la consulta al período canónico.
func (q PeriodQuery) Period() ledger.Period {
	return ledger.ParsePeriod(ledger.PeriodParams{
		PeriodStart: q.PeriodStart,
		PeriodEnd:   q.PeriodEnd,
		Year:        q.Year,
		Month:       q.Month,
	})
}

// SnapshotMode traduce Mode al modo del ledger; por defecto histórico.
func (q PeriodQuery) SnapshotMode() ledger.SnapshotMode {
	if q.Mode == ModeMovement {
		return ledger.SnapshotMovement
	}
	return ledger.SnapshotAllTime
}

// StockSnapshotDTO respuesta de GET /api/stock.
type StockSnapshotDTO struct {
	Period ledger.PeriodSummary `json:"period"`
	Items  []ledger.StockItem   `json:"items"`
	Alerts []ledger.StockAlert  `json:"alerts"`
}

// StockAlertsDTO respuesta de GET /api/stock/alerts.
type StockAlertsDTO struct {
	Period ledger.PeriodSummary `json:"period"`
	Alerts []ledger.StockAlert  `json:"alerts"`
	Count  int                  `json:"count"`
}

// MaterialBalanceDTO respuesta de GET /api/stock/:materialId/balance.
type MaterialBalanceDTO struct {
	MaterialID   string               `json:"materialId"`
	Name         string               `json:"name"`
	Period       ledger.PeriodSummary `json:"period"`
	TotalInflow  decimal.Decimal      `json:"totalInflow"`
	TotalOutflow decimal.Decimal      `json:"totalOutflow"`
	Balance      decimal.Decimal      `json:"balance"`
	Negative     bool                 `json:"negative"` // saldo < 0: movimientos inconsistentes
}
