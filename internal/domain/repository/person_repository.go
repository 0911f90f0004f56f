package repository

import (
	"context"

	"github.com/jhoicas/epi-estoque/internal/domain/entity"
)

// PersonRepository define el puerto de lectura de colaboradores.
type PersonRepository interface {
	List(ctx context.Context, companyID string) ([]entity.Person, error)
}
