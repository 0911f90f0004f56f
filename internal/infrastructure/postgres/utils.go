package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/epi-estoque/internal/domain"
)

// Códigos SQLSTATE que indican que la base no está lista para atender.
const (
	codeUndefinedTable  = "42P01"
	codeUndefinedColumn = "42703"
	codeCannotConnect   = "08006"
	codeTooManyConns    = "53300"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// wrapQueryErr envuelve el error con contexto y lo marca como domain.ErrUnavailable
// cuando el problema es de infraestructura (esquema ausente, conexión, timeout).
func wrapQueryErr(op string, err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return fmt.Errorf("%s: %w: %w", op, domain.ErrUnavailable, err)
	}
	switch pgCode(err) {
	case codeUndefinedTable, codeUndefinedColumn, codeCannotConnect, codeTooManyConns:
		return fmt.Errorf("%s: %w: %w", op, domain.ErrUnavailable, err)
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return fmt.Errorf("%s: %w: %w", op, domain.ErrUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
