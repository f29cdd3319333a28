package entity

import "time"

// Estados de User.
const (
	UserStatusActive    = "active"
	UserStatusInactive  = "inactive"
	UserStatusSuspended = "suspended"
)

// User identidad del sistema. Puede pertenecer a varias empresas a través de Membership.
// CurrentCompanyID guarda la última empresa seleccionada; la lógica de negocio la recibe
// resuelta en TenantContext.
type User struct {
	ID               string
	Name             string
	Email            string
	PasswordHash     string // bcrypt hash, nunca plano en dominio después de persistir
	Status           string // active, inactive, suspended
	CurrentTeamID    *string
	CurrentCompanyID *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Clone copia profunda.
func (u User) Clone() User {
	out := u
	if u.CurrentTeamID != nil {
		v := *u.CurrentTeamID
		out.CurrentTeamID = &v
	}
	if u.CurrentCompanyID != nil {
		v := *u.CurrentCompanyID
		out.CurrentCompanyID = &v
	}
	return out
}
