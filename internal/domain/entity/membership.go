package entity

import (
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/Contable-api/internal/domain"
)

// MembershipState estado derivado de los flags y marcas de tiempo de la membresía.
type MembershipState string

// invited -> joined -> inactive; inactive solo vuelve a joined mediante una nueva invitación.
const (
	MembershipInvited  MembershipState = "invited"
	MembershipJoined   MembershipState = "joined"
	MembershipInactive MembershipState = "inactive"
)

// Membership vincula un usuario con una empresa (tabla company_users).
// Único por (UserID, CompanyID).
type Membership struct {
	ID             string
	CompanyID      string
	UserID         string
	IsActive       bool
	IsDefault      bool
	IsOwner        bool
	Permissions    MembershipPermissions
	InvitedAt      *time.Time
	JoinedAt       *time.Time
	LastAccessedAt *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// State deriva el estado del ciclo de vida.
func (m *Membership) State() MembershipState {
	switch {
	case m.IsActive:
		return MembershipJoined
	case m.JoinedAt == nil && m.InvitedAt != nil:
		return MembershipInvited
	default:
		return MembershipInactive
	}
}

// Validate comprueba la coherencia de los flags de una sola fila. Reúne los errores de
// flags y de permisos en un único *domain.ValidationError.
func (m *Membership) Validate() error {
	var vErr domain.ValidationError
	if m.CompanyID == "" {
		vErr.Add("company_id", "es requerido")
	}
	if m.UserID == "" {
		vErr.Add("user_id", "es requerido")
	}
	if m.IsDefault && !m.IsActive {
		vErr.Add("is_default", "solo una membresía activa puede ser la predeterminada")
	}
	if m.IsActive && m.JoinedAt == nil {
		vErr.Add("joined_at", "una membresía activa requiere fecha de ingreso")
	}
	if err := m.Permissions.Validate(); err != nil {
		var pErr *domain.ValidationError
		if !errors.As(err, &pErr) {
			return err
		}
		for field, msg := range pErr.Fields {
			vErr.Add(field, msg)
		}
	}
	return vErr.OrNil()
}

// Accept transición invited -> joined.
func (m *Membership) Accept(now time.Time) error {
	if m.State() != MembershipInvited {
		return fmt.Errorf("%w: la membresía está en estado %s", domain.ErrConflict, m.State())
	}
	m.JoinedAt = &now
	m.IsActive = true
	m.UpdatedAt = now
	return nil
}

// Deactivate transición joined -> inactive. La membresía deja de ser predeterminada.
func (m *Membership) Deactivate(now time.Time) error {
	if m.State() != MembershipJoined {
		return fmt.Errorf("%w: la membresía está en estado %s", domain.ErrConflict, m.State())
	}
	m.IsActive = false
	m.IsDefault = false
	m.UpdatedAt = now
	return nil
}

// Reinvite reinicia el ciclo de invitación de una membresía inactiva.
// La propiedad no se conserva al volver a invitar.
func (m *Membership) Reinvite(now time.Time, perms MembershipPermissions) error {
	if m.State() != MembershipInactive {
		return fmt.Errorf("%w: la membresía está en estado %s", domain.ErrConflict, m.State())
	}
	m.InvitedAt = &now
	m.JoinedAt = nil
	m.IsOwner = false
	m.IsDefault = false
	m.Permissions = perms
	m.UpdatedAt = now
	return nil
}

// Clone copia profunda.
func (m Membership) Clone() Membership {
	out := m
	out.Permissions = m.Permissions.Clone()
	out.InvitedAt = cloneTime(m.InvitedAt)
	out.JoinedAt = cloneTime(m.JoinedAt)
	out.LastAccessedAt = cloneTime(m.LastAccessedAt)
	return out
}

// MembershipCompany proyección de lectura (membresía activa + datos mínimos de la empresa).
type MembershipCompany struct {
	CompanyID string
	RUC       string
	Name      string
	IsOwner   bool
	IsDefault bool
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
