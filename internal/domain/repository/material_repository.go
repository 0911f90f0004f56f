package repository

import (
	"context"

	"github.com/jhoicas/epi-estoque/internal/domain/entity"
)

// MaterialRepository define el puerto de lectura del catálogo de EPIs.
type MaterialRepository interface {
	List(ctx context.Context, companyID string) ([]entity.Material, error)
	// GetByID devuelve domain.ErrNotFound si el material no existe en la empresa.
	GetByID(ctx context.Context, companyID, id string) (*entity.Material, error)
}
