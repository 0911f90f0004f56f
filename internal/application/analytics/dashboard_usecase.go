// Package analytics contiene el caso de uso del dashboard de movimientos de EPIs.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/epi-estoque/internal/domain/entity"
	"github.com/jhoicas/epi-estoque/internal/domain/ledger"
	"github.com/jhoicas/epi-estoque/internal/domain/repository"
	"github.com/jhoicas/epi-estoque/pkg/logger"
)

// DashboardUseCase arma el dashboard de inventario de una empresa.
//
// Fuente de datos: repositorios de solo lectura. Las salidas llegan sin canceladas.
type DashboardUseCase struct {
	materials repository.MaterialRepository
	inflows   repository.InflowRepository
	outflows  repository.OutflowRepository
	people    repository.PersonRepository
	log       *logger.Logger
	topN      int
	timeout   time.Duration
}

// Options ajusta el dashboard; el valor cero usa los defaults del ledger.
type Options struct {
	TopMaterials int
	QueryTimeout time.Duration
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	materials repository.MaterialRepository,
	inflows repository.InflowRepository,
	outflows repository.OutflowRepository,
	people repository.PersonRepository,
	log *logger.Logger,
	opts Options,
) *DashboardUseCase {
	return &DashboardUseCase{
		materials: materials,
		inflows:   inflows,
		outflows:  outflows,
		people:    people,
		log:       log.Named("dashboard"),
		topN:      opts.TopMaterials,
		timeout:   opts.QueryTimeout,
	}
}

// GetDashboard devuelve el dashboard del período.
//
// Cuatro consultas en paralelo: materiales, entradas, salidas vigentes y colaboradores.
// Con la foto histórica (modo por defecto) los movimientos se traen completos,
// porque el saldo necesita toda la historia; en modo movimiento el rango se
// empuja a la base.
func (uc *DashboardUseCase) GetDashboard(
	ctx context.Context,
	companyID string,
	period ledger.Period,
	mode ledger.SnapshotMode,
) (*ledger.Dashboard, error) {
	start := time.Now()
	if uc.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.timeout)
		defer cancel()
	}

	var filter repository.MovementFilter
	if mode == ledger.SnapshotMovement {
		if r, ok := ledger.ResolveRange(period); ok {
			filter.Range = &r
		}
	}

	// ── Goroutines para paralelizar las 4 consultas DB ────────────────────────
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
	type peopleResult struct {
		rows []entity.Person
		err  error
	}

	materialsCh := make(chan materialsResult, 1)
	inflowsCh := make(chan inflowsResult, 1)
	outflowsCh := make(chan outflowsResult, 1)
	peopleCh := make(chan peopleResult, 1)

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
	go func() {
		rows, err := uc.people.List(ctx, companyID)
		peopleCh <- peopleResult{rows, err}
	}()

	materials := <-materialsCh
	inflows := <-inflowsCh
	outflows := <-outflowsCh
	people := <-peopleCh

	if materials.err != nil {
		return nil, fmt.Errorf("dashboard: materiales: %w", materials.err)
	}
	if inflows.err != nil {
		return nil, fmt.Errorf("dashboard: entradas: %w", inflows.err)
	}
	if outflows.err != nil {
		return nil, fmt.Errorf("dashboard: salidas: %w", outflows.err)
	}
	if people.err != nil {
		return nil, fmt.Errorf("dashboard: colaboradores: %w", people.err)
	}

	// ── Componer ───────────────────────────────────────────────────────────────
	dash := ledger.Compose(ledger.DashboardInput{
		Materials: materials.rows,
		Inflows:   inflows.rows,
		Outflows:  outflows.rows,
		People:    people.rows,
		Catalog:   ledger.NewCatalog(materials.rows, people.rows),
	}, period, ledger.ComposeOptions{Snapshot: mode, TopN: uc.topN})

	uc.log.Debug().
		Str("company_id", companyID).
		Str("period", period.String()).
		Int("inflows", dash.InflowTotals.Count).
		Int("outflows", dash.OutflowTotals.Count).
		Int("alerts", len(dash.StockSnapshot.Alerts)).
		Dur("elapsed", time.Since(start)).
		Msg("dashboard calculado")

	return &dash, nil
}
