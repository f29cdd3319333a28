package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
)

// mapPostgresError traduce errores de PostgreSQL a errores de dominio.
// Devuelve el error original envuelto si no corresponde a ningún caso conocido.
func mapPostgresError(op string, err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return fmt.Errorf("%s: %w", op, err)
	}

	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		switch pgErr.ConstraintName {
		case "companies_ruc_key":
			return domain.NewValidationError("ruc", entity.MsgRUCTaken)
		case "companies_email_key":
			return domain.NewValidationError("email", entity.MsgEmailTaken)
		case "users_email_key":
			return domain.ErrEmailAlreadyExists
		default:
			return fmt.Errorf("%w: %s", domain.ErrConflict, pgErr.ConstraintName)
		}

	case pgerrcode.ExclusionViolation:
		// company_users_one_default_per_user
		return fmt.Errorf("%w: %s", domain.ErrConflict, pgErr.ConstraintName)

	case pgerrcode.ForeignKeyViolation:
		return fmt.Errorf("%w: %s", domain.ErrNotFound, pgErr.ConstraintName)

	case pgerrcode.CheckViolation:
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, pgErr.ConstraintName)

	case pgerrcode.InvalidTextRepresentation:
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, pgErr.Message)

	default:
		return fmt.Errorf("%s: postgres error [%s]: %s (detail: %s): %w",
			op, pgErr.Code, pgErr.Message, pgErr.Detail, err)
	}
}
