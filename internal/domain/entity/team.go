package entity

import "time"

// Roles dentro de un equipo.
const (
	TeamRoleOwner  = "owner"
	TeamRoleMember = "member"
)

// Team agrupación superior a la empresa; cada empresa pertenece a exactamente un equipo.
type Team struct {
	ID          string
	Name        string
	Description string
	OwnerID     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
