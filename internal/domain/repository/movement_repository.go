package repository

import (
	"context"

	"github.com/jhoicas/epi-estoque/internal/domain/entity"
	"github.com/jhoicas/epi-estoque/internal/domain/ledger"
)

// MovementFilter acota la consulta de movimientos en la base. Es solo una
// optimización: el ledger vuelve a filtrar por período con sus propias reglas.
type MovementFilter struct {
	MaterialID string            // vacío = todos
	Range      *ledger.DateRange // nil = sin restricción de fechas
}

// InflowRepository define el puerto de lectura de entradas de stock.
type InflowRepository interface {
	List(ctx context.Context, companyID string, f MovementFilter) ([]entity.InflowEvent, error)
}

// OutflowRepository define el puerto de lectura de salidas de stock.
type OutflowRepository interface {
	// ListActive devuelve solo salidas vigentes: las canceladas nunca salen de
	// aquí. Es el único punto donde se aplica el estado de la salida.
	ListActive(ctx context.Context, companyID string, f MovementFilter) ([]entity.OutflowEvent, error)
}
