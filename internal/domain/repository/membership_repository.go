package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Contable-api/internal/domain/entity"
)

// MembershipRepository puerto de persistencia de company_users.
type MembershipRepository interface {
	// Create devuelve domain.ErrConflict si ya existe una membresía para el par.
	Create(ctx context.Context, m *entity.Membership) error
	Get(ctx context.Context, userID, companyID string) (*entity.Membership, error)
	Update(ctx context.Context, m *entity.Membership) error
	GetDefault(ctx context.Context, userID string) (*entity.Membership, error)
	CountActiveByUser(ctx context.Context, userID string) (int, error)
	// CountActiveOwners bloquea las filas contadas cuando corre dentro de una transacción.
	CountActiveOwners(ctx context.Context, companyID string) (int, error)
	// SetDefault marca companyID como predeterminada y limpia la anterior en una sola
	// escritura acotada al usuario. domain.ErrNotAMember si la membresía no está activa.
	SetDefault(ctx context.Context, userID, companyID string) error
	// OldestActive membresía activa más antigua (joined_at) excluyendo exceptCompanyID.
	OldestActive(ctx context.Context, userID, exceptCompanyID string) (*entity.Membership, error)
	Touch(ctx context.Context, userID, companyID string, at time.Time) error
	// ListActiveCompanies proyección de las membresías activas del usuario.
	ListActiveCompanies(ctx context.Context, userID string) ([]entity.MembershipCompany, error)
}
