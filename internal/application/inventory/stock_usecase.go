// Package inventory contiene los casos de uso de saldos y alertas de EPIs.
package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/epi-estoque/internal/application/dto"
	"github.com/jhoicas/epi-estoque/internal/domain/entity"
	"github.com/jhoicas/epi-estoque/internal/domain/ledger"
	"github.com/jhoicas/epi-estoque/internal/domain/repository"
	"github.com/jhoicas/epi-estoque/pkg/logger"
)

// StockUseCase calcula la foto de stock, las alertas de mínimo y el saldo por material.
//
// Los repositorios entregan las salidas ya sin canceladas (OutflowRepository.ListActive);
// el ledger no mira estados.
type StockUseCase struct {
	materials repository.MaterialRepository
	inflows   repository.InflowRepository
	outflows  repository.OutflowRepository
	log       *logger.Logger
	timeout   time.Duration
}

// NewStockUseCase construye el caso de uso. timeout <= 0 no limita las consultas.
func NewStockUseCase(
	materials repository.MaterialRepository,
	inflows repository.InflowRepository,
	outflows repository.OutflowRepository,
	log *logger.Logger,
	timeout time.Duration,
) *StockUseCase {
	return &StockUseCase{
		materials: materials,
		inflows:   inflows,
		outflows:  outflows,
		log:       log.Named("stock"),
		timeout:   timeout,
	}
}

// stockData es la foto consistente de una llamada.
type stockData struct {
	materials []entity.Material
	inflows   []entity.InflowEvent
	outflows  []entity.OutflowEvent
}

// load trae materiales, entradas y salidas en paralelo.
func (uc *StockUseCase) load(ctx context.Context, companyID string, filter repository.MovementFilter) (*stockData, error) {
	if uc.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.timeout)
		defer cancel()
	}

	type materialsResult struct {
		rows []entity.Material
		err  error
	}
	type inflowsResult struct {
		rows []entity.InflowEvent
		err  error
	}
	type outflowsResult struct {
		rows []entity.OutflowEvent
		err  error
	}

	materialsCh := make(chan materialsResult, 1)
	inflowsCh := make(chan inflowsResult, 1)
	outflowsCh := make(chan outflowsResult, 1)

	go func() {
		rows, err := uc.materials.List(ctx, companyID)
		materialsCh <- materialsResult{rows, err}
	}()
	go func() {
		rows, err := uc.inflows.List(ctx, companyID, filter)
		inflowsCh <- inflowsResult{rows, err}
	}()
	go func() {
		rows, err := uc.outflows.ListActive(ctx, companyID, filter)
		outflowsCh <- outflowsResult{rows, err}
	}()

	materials := <-materialsCh
	inflows := <-inflowsCh
	outflows := <-outflowsCh

	if materials.err != nil {
		return nil, fmt.Errorf("stock: materiales: %w", materials.err)
	}
	if inflows.err != nil {
		return nil, fmt.Errorf("stock: entradas: %w", inflows.err)
	}
	if outflows.err != nil {
		return nil, fmt.Errorf("stock: salidas: %w", outflows.err)
	}
	return &stockData{materials: materials.rows, inflows: inflows.rows, outflows: outflows.rows}, nil
}

// rangeFilter empuja el rango del período a la base cuando hay restricción.
func rangeFilter(p ledger.Period) repository.MovementFilter {
	var f repository.MovementFilter
	if r, ok := ledger.ResolveRange(p); ok {
		f.Range = &r
	}
	return f
}

// GetSnapshot devuelve la foto de stock de todos los materiales en el período.
func (uc *StockUseCase) GetSnapshot(ctx context.Context, companyID string, period ledger.Period) (*dto.StockSnapshotDTO, error) {
	start := time.Now()
	data, err := uc.load(ctx, companyID, rangeFilter(period))
	if err != nil {
		return nil, err
	}

	snap := ledger.BuildSnapshot(data.materials, data.inflows, data.outflows, period)

	uc.log.Debug().
		Str("company_id", companyID).
		Str("period", period.String()).
		Int("materials", len(snap.Items)).
		Int("alerts", len(snap.Alerts)).
		Dur("elapsed", time.Since(start)).
		Msg("foto de stock calculada")

	return &dto.StockSnapshotDTO{
		Period: ledger.Summarize(period),
		Items:  snap.Items,
		Alerts: snap.Alerts,
	}, nil
}

// GetAlerts devuelve solo los materiales con saldo igual o menor al mínimo.
func (uc *StockUseCase) GetAlerts(ctx context.Context, companyID string, period ledger.Period) (*dto.StockAlertsDTO, error) {
	snap, err := uc.GetSnapshot(ctx, companyID, period)
	if err != nil {
		return nil, err
	}
	return &dto.StockAlertsDTO{
		Period: snap.Period,
		Alerts: snap.Alerts,
		Count:  len(snap.Alerts),
	}, nil
}

// GetBalance devuelve el saldo de un material. domain.ErrNotFound si no existe.
// Un saldo negativo se devuelve tal cual y se registra como advertencia.
func (uc *StockUseCase) GetBalance(ctx context.Context, companyID, materialID string, period ledger.Period) (*dto.MaterialBalanceDTO, error) {
	material, err := uc.materials.GetByID(ctx, companyID, materialID)
	if err != nil {
		return nil, fmt.Errorf("stock: material: %w", err)
	}

	filter := rangeFilter(period)
	filter.MaterialID = materialID
	data, err := uc.load(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}

	totals := ledger.Tally(data.inflows, data.outflows, period)[materialID]
	balance := ledger.Balance(materialID, data.inflows, data.outflows, period)

	if balance.IsNegative() {
		uc.log.Warn().
			Str("company_id", companyID).
			Str("material_id", materialID).
			Str("period", period.String()).
			Str("balance", balance.String()).
			Msg("saldo negativo: revisar movimientos")
	}

	return &dto.MaterialBalanceDTO{
		MaterialID:   material.ID,
		Name:         material.Name,
		Period:       ledger.Summarize(period),
		TotalInflow:  totals.Inflow,
		TotalOutflow: totals.Outflow,
		Balance:      balance,
		Negative:     balance.IsNegative(),
	}, nil
}
