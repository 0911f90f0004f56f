package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/epi-estoque/internal/domain"
	"github.com/jhoicas/epi-estoque/internal/domain/entity"
	"github.com/jhoicas/epi-estoque/internal/domain/repository"
)

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

const materialsTable = "materiais"

type materialRow struct {
	ID           string              `db:"id"`
	Name         string              `db:"nome"`
	Manufacturer *string             `db:"fabricante"`
	CA           *string             `db:"ca"`
	MinimumStock decimal.NullDecimal `db:"estoque_minimo"`
	UnitValue    decimal.NullDecimal `db:"valor_unitario"`
	ValidityDays *int                `db:"validade_dias"`
}

func (r materialRow) toEntity() entity.Material {
	return entity.Material{
		ID:           r.ID,
		Name:         r.Name,
		Manufacturer: deref(r.Manufacturer),
		CA:           deref(r.CA),
		MinimumStock: r.MinimumStock,
		UnitValue:    r.UnitValue,
		ValidityDays: r.ValidityDays,
	}
}

// MaterialRepo implementación del puerto MaterialRepository sobre PostgreSQL.
type MaterialRepo struct {
	q Querier
}

// NewMaterialRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMaterialRepository(q Querier) *MaterialRepo {
	return &MaterialRepo{q: q}
}

func materialSelect(companyID string) squirrel.SelectBuilder {
	return psql.Select(
		"id::text AS id", "nome", "fabricante", "ca",
		"estoque_minimo", "valor_unitario", "validade_dias",
	).From(materialsTable).
		Where(squirrel.Eq{"company_id": companyID})
}

// List devuelve el catálogo de la empresa ordenado por nombre. El orden de
// esta lista es el orden de los ítems de la foto de stock.
func (r *MaterialRepo) List(ctx context.Context, companyID string) ([]entity.Material, error) {
	sql, args, err := materialSelect(companyID).OrderBy("nome", "id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build materials query: %w", err)
	}
	var rows []materialRow
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		return nil, wrapQueryErr("list materials", err)
	}
	out := make([]entity.Material, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, nil
}

// GetByID obtiene un material por ID; domain.ErrNotFound si no existe.
func (r *MaterialRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Material, error) {
	sql, args, err := materialSelect(companyID).Where(squirrel.Eq{"id::text": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build material query: %w", err)
	}
	var row materialRow
	if err := pgxscan.Get(ctx, r.q, &row, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, fmt.Errorf("material %s: %w", id, domain.ErrNotFound)
		}
		return nil, wrapQueryErr("get material", err)
	}
	m := row.toEntity()
	return &m, nil
}
