package repository

import (
	"context"

	"github.com/jhoicas/Contable-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	// Create devuelve domain.ErrEmailAlreadyExists si el email está registrado.
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// LockByID lee el usuario bloqueando su fila hasta el fin de la transacción.
	// Serializa las operaciones concurrentes de un mismo usuario.
	LockByID(ctx context.Context, id string) (*entity.User, error)
	SetCurrentCompany(ctx context.Context, userID string, companyID *string) error
	SetCurrentTeam(ctx context.Context, userID string, teamID *string) error
}
