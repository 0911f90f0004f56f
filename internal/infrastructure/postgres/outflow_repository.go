package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/epi-estoque/internal/domain/entity"
	"github.com/jhoicas/epi-estoque/internal/domain/repository"
)

var _ repository.OutflowRepository = (*OutflowRepo)(nil)

const outflowsTable = "saidas"

type outflowRow struct {
	ID            string              `db:"id"`
	MaterialID    string              `db:"material_id"`
	Quantity      decimal.NullDecimal `db:"quantidade"`
	DeliveryDate  *string             `db:"data_entrega"`
	RecipientID   *string             `db:"colaborador_id"`
	CostCenter    *string             `db:"centro_custo"`
	ServiceCenter *string             `db:"centro_servico"`
	Status        *string             `db:"status"`
}

// OutflowRepo lee salidas de stock. Es el único lugar donde se excluyen las
// salidas canceladas antes de llegar al ledger.
type OutflowRepo struct {
	q              Querier
	canceledStatus string
}

// NewOutflowRepository construye el adaptador. canceledStatus vacío usa
// entity.OutflowStatusCanceled.
func NewOutflowRepository(q Querier, canceledStatus string) *OutflowRepo {
	if canceledStatus == "" {
		canceledStatus = entity.OutflowStatusCanceled
	}
	return &OutflowRepo{q: q, canceledStatus: canceledStatus}
}

// listActiveQuery: status NULL cuenta como vigente.
func (r *OutflowRepo) listActiveQuery(companyID string, f repository.MovementFilter) squirrel.SelectBuilder {
	q := psql.Select(
		"id::text AS id", "material_id::text AS material_id", "quantidade",
		"data_entrega::text AS data_entrega", "colaborador_id::text AS colaborador_id",
		"centro_custo", "centro_servico", "status",
	).From(outflowsTable).
		Where(squirrel.Eq{"company_id": companyID}).
		Where(squirrel.Or{
			squirrel.Eq{"status": nil},
			squirrel.NotEq{"status": r.canceledStatus},
		})
	return applyMovementFilter(q, "data_entrega", f).OrderBy("data_entrega", "id")
}

// ListActive devuelve las salidas vigentes de la empresa, acotadas por el filtro.
func (r *OutflowRepo) ListActive(ctx context.Context, companyID string, f repository.MovementFilter) ([]entity.OutflowEvent, error) {
	sql, args, err := r.listActiveQuery(companyID, f).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build outflows query: %w", err)
	}
	var rows []outflowRow
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		return nil, wrapQueryErr("list outflows", err)
	}
	out := make([]entity.OutflowEvent, 0, len(rows))
	for _, row := range rows {
		out = append(out, entity.OutflowEvent{
			ID:            row.ID,
			MaterialID:    row.MaterialID,
			Quantity:      row.Quantity,
			DeliveryDate:  deref(row.DeliveryDate),
			RecipientID:   deref(row.RecipientID),
			CostCenter:    deref(row.CostCenter),
			ServiceCenter: deref(row.ServiceCenter),
			Status:        deref(row.Status),
		})
	}
	return out, nil
}
