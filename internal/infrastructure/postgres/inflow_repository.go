package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/epi-estoque/internal/domain/entity"
	"github.com/jhoicas/epi-estoque/internal/domain/repository"
)

var _ repository.InflowRepository = (*InflowRepo)(nil)

const inflowsTable = "entradas"

type inflowRow struct {
	ID         string              `db:"id"`
	MaterialID string              `db:"material_id"`
	Quantity   decimal.NullDecimal `db:"quantidade"`
	EntryDate  *string             `db:"data_entrada"`
	CostCenter *string             `db:"centro_custo"`
	UnitValue  decimal.NullDecimal `db:"valor_unitario"`
}

// InflowRepo lee entradas de stock.
type InflowRepo struct {
	q Querier
}

// NewInflowRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInflowRepository(q Querier) *InflowRepo {
	return &InflowRepo{q: q}
}

// listQuery selecciona la fecha como texto: el ledger es quien la interpreta.
func (r *InflowRepo) listQuery(companyID string, f repository.MovementFilter) squirrel.SelectBuilder {
	q := psql.Select(
		"id::text AS id", "material_id::text AS material_id", "quantidade",
		"data_entrada::text AS data_entrada", "centro_custo", "valor_unitario",
	).From(inflowsTable).
		Where(squirrel.Eq{"company_id": companyID})
	return applyMovementFilter(q, "data_entrada", f).OrderBy("data_entrada", "id")
}

// List devuelve las entradas de la empresa, acotadas por el filtro.
func (r *InflowRepo) List(ctx context.Context, companyID string, f repository.MovementFilter) ([]entity.InflowEvent, error) {
	sql, args, err := r.listQuery(companyID, f).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build inflows query: %w", err)
	}
	var rows []inflowRow
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		return nil, wrapQueryErr("list inflows", err)
	}
	out := make([]entity.InflowEvent, 0, len(rows))
	for _, row := range rows {
		out = append(out, entity.InflowEvent{
			ID:         row.ID,
			MaterialID: row.MaterialID,
			Quantity:   row.Quantity,
			EntryDate:  deref(row.EntryDate),
			CostCenter: deref(row.CostCenter),
			UnitValue:  row.UnitValue,
		})
	}
	return out, nil
}

// applyMovementFilter empuja material y rango a la consulta.
//
// La columna de fecha puede ser text, date o timestamptz, así que el rango se
// compara sobre el prefijo YYYY-MM-DD del texto, nunca contra el time.Time.
// Los límites se abren un día hacia cada lado para cubrir offsets de zona
// horaria; el ledger vuelve a filtrar con la fecha ya normalizada a UTC.
func applyMovementFilter(q squirrel.SelectBuilder, dateColumn string, f repository.MovementFilter) squirrel.SelectBuilder {
	if f.MaterialID != "" {
		q = q.Where(squirrel.Eq{"material_id::text": f.MaterialID})
	}
	if f.Range != nil {
		day := datePrefix(dateColumn)
		q = q.Where(squirrel.Expr(day+" >= ?", f.Range.Start.AddDate(0, 0, -1).Format(time.DateOnly))).
			Where(squirrel.Expr(day+" <= ?", f.Range.End.AddDate(0, 0, 1).Format(time.DateOnly)))
	}
	return q
}

// datePrefix: los primeros 10 caracteres (YYYY-MM-DD) de la fecha como texto.
func datePrefix(column string) string {
	return "left(btrim(" + column + "::text), 10)"
}
