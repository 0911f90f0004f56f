package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/jhoicas/epi-estoque/internal/domain/entity"
	"github.com/jhoicas/epi-estoque/internal/domain/repository"
)

var _ repository.PersonRepository = (*PersonRepo)(nil)

const peopleTable = "colaboradores"

type personRow struct {
	ID           string  `db:"id"`
	Name         string  `db:"nome"`
	Registration *string `db:"matricula"`
	Role         *string `db:"cargo"`
	CostCenter   *string `db:"centro_custo"`
}

// PersonRepo lee colaboradores.
type PersonRepo struct {
	q Querier
}

// NewPersonRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPersonRepository(q Querier) *PersonRepo {
	return &PersonRepo{q: q}
}

func personListQuery(companyID string) squirrel.SelectBuilder {
	return psql.Select("id::text AS id", "nome", "matricula", "cargo", "centro_custo").
		From(peopleTable).
		Where(squirrel.Eq{"company_id": companyID}).
		OrderBy("nome", "id")
}

// List devuelve los colaboradores de la empresa.
func (r *PersonRepo) List(ctx context.Context, companyID string) ([]entity.Person, error) {
	sql, args, err := personListQuery(companyID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build people query: %w", err)
	}
	var rows []personRow
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		return nil, wrapQueryErr("list people", err)
	}
	out := make([]entity.Person, 0, len(rows))
	for _, row := range rows {
		out = append(out, entity.Person{
			ID:           row.ID,
			Name:         row.Name,
			Registration: deref(row.Registration),
			Role:         deref(row.Role),
			CostCenter:   deref(row.CostCenter),
		})
	}
	return out, nil
}
