package membership

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
	"github.com/jhoicas/Contable-api/pkg/logger"
)

// Manager mantiene los invariantes de propiedad y empresa predeterminada:
// toda empresa conserva al menos un propietario activo y cada usuario tiene
// como máximo una membresía activa marcada como predeterminada.
type Manager struct {
	tx          TxRunner
	memberships repository.MembershipRepository
	log         *logger.Logger
	now         func() time.Time
}

// Option configura el Manager.
type Option func(*Manager)

// WithClock reemplaza el reloj (tests).
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// NewManager construye el servicio de membresías.
func NewManager(tx TxRunner, memberships repository.MembershipRepository, log *logger.Logger, opts ...Option) *Manager {
	m := &Manager{tx: tx, memberships: memberships, log: log, now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// CreateOptions opciones de CreateCompanyWithOwner.
type CreateOptions struct {
	// MakeDefault marca la nueva empresa como predeterminada aunque el usuario ya tenga otras.
	MakeDefault bool
	// Permissions del propietario; nil usa entity.OwnerPermissions.
	Permissions *entity.MembershipPermissions
}

// RoleInfo rol y permisos almacenados para el par usuario-empresa.
type RoleInfo struct {
	IsOwner     bool
	IsDefault   bool
	IsActive    bool
	State       entity.MembershipState
	Permissions entity.MembershipPermissions
	Membership  entity.Membership
}

// CreateCompanyWithOwner persiste la empresa y la membresía del propietario en una sola transacción.
// RUC o email duplicados devuelven *domain.ValidationError; el resto de fallos domain.ErrTransactionAborted.
func (m *Manager) CreateCompanyWithOwner(ctx context.Context, company *entity.Company, ownerID, teamID string, opts CreateOptions) (*entity.Company, error) {
	if company == nil || ownerID == "" || teamID == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := company.Settings.Validate(); err != nil {
		return nil, err
	}
	perms := entity.OwnerPermissions()
	if opts.Permissions != nil {
		perms = opts.Permissions.Clone()
	}
	if err := perms.Validate(); err != nil {
		return nil, err
	}

	now := m.now().UTC()
	created := company.Clone()
	if created.ID == "" {
		created.ID = uuid.New().String()
	}
	created.TeamID = teamID
	created.CreatedAt = now
	created.UpdatedAt = now

	var isDefault bool
	err := m.tx.Run(ctx, func(repos repository.Repositories) error {
		user, err := repos.Users.LockByID(ctx, ownerID)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.ErrUserNotFound
		}
		belongs, err := repos.Teams.BelongsToTeam(ctx, ownerID, teamID)
		if err != nil {
			return err
		}
		if !belongs {
			return fmt.Errorf("%w: el usuario no pertenece al equipo", domain.ErrNotAMember)
		}
		prior, err := repos.Memberships.CountActiveByUser(ctx, ownerID)
		if err != nil {
			return err
		}
		if err := repos.Companies.Create(ctx, &created); err != nil {
			return err
		}
		joined := now
		owner := &entity.Membership{
			ID:          uuid.New().String(),
			CompanyID:   created.ID,
			UserID:      ownerID,
			IsActive:    true,
			IsOwner:     true,
			Permissions: perms,
			JoinedAt:    &joined,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := repos.Memberships.Create(ctx, owner); err != nil {
			return err
		}
		isDefault = prior == 0 || opts.MakeDefault
		if isDefault {
			// Una sola escritura acotada al usuario: limpia la anterior y marca la nueva.
			if err := repos.Memberships.SetDefault(ctx, ownerID, created.ID); err != nil {
				return err
			}
		}
		if prior == 0 || user.CurrentCompanyID == nil {
			id := created.ID
			if err := repos.Users.SetCurrentCompany(ctx, ownerID, &id); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		err = classify(err)
		m.log.Error().Err(err).Str("user_id", ownerID).Str("ruc", company.RUC).Msg("create company with owner")
		return nil, err
	}
	m.log.Info().
		Str("company_id", created.ID).
		Str("user_id", ownerID).
		Str("team_id", teamID).
		Bool("is_default", isDefault).
		Msg("company created")
	return &created, nil
}

// SetDefaultCompany marca companyID como predeterminada para el usuario y limpia la anterior
// (si existe) en la misma escritura. domain.ErrNotAMember si no hay membresía activa.
func (m *Manager) SetDefaultCompany(ctx context.Context, userID, companyID string) error {
	if userID == "" || companyID == "" {
		return domain.ErrInvalidInput
	}
	err := m.tx.Run(ctx, func(repos repository.Repositories) error {
		// Serializa pestañas concurrentes del mismo usuario.
		user, err := repos.Users.LockByID(ctx, userID)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.ErrUserNotFound
		}
		current, err := repos.Memberships.Get(ctx, userID, companyID)
		if err != nil {
			return err
		}
		if current == nil || !current.IsActive {
			return domain.ErrNotAMember
		}
		if current.IsDefault {
			return nil
		}
		return repos.Memberships.SetDefault(ctx, userID, companyID)
	})
	if err != nil {
		return classify(err)
	}
	m.log.Info().Str("user_id", userID).Str("company_id", companyID).Msg("default company changed")
	return nil
}

// IsOwner informa si existe una membresía activa con propiedad para el par.
func (m *Manager) IsOwner(ctx context.Context, userID, companyID string) (bool, error) {
	mem, err := m.memberships.Get(ctx, userID, companyID)
	if err != nil {
		return false, err
	}
	return mem != nil && mem.IsActive && mem.IsOwner, nil
}

// GetRole devuelve el rol almacenado para el par; (nil, nil) si no hay membresía.
func (m *Manager) GetRole(ctx context.Context, userID, companyID string) (*RoleInfo, error) {
	mem, err := m.memberships.Get(ctx, userID, companyID)
	if err != nil {
		return nil, err
	}
	if mem == nil {
		return nil, nil
	}
	return &RoleInfo{
		IsOwner:     mem.IsOwner,
		IsDefault:   mem.IsDefault,
		IsActive:    mem.IsActive,
		State:       mem.State(),
		Permissions: mem.Permissions.Clone(),
		Membership:  mem.Clone(),
	}, nil
}

// IsActiveMember informa si el usuario tiene una membresía activa en la empresa.
func (m *Manager) IsActiveMember(ctx context.Context, userID, companyID string) (bool, error) {
	mem, err := m.memberships.Get(ctx, userID, companyID)
	if err != nil {
		return false, err
	}
	return mem != nil && mem.IsActive, nil
}
