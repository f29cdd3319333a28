package dto

import (
	"time"

	"github.com/jhoicas/Contable-api/internal/domain/entity"
)

// InviteMemberRequest invitación de un usuario existente a la empresa.
type InviteMemberRequest struct {
	Email       string                       `json:"email" validate:"required,email"`
	Permissions entity.MembershipPermissions `json:"permissions"`
}

// TransferOwnershipRequest entrega la propiedad a otro miembro activo.
type TransferOwnershipRequest struct {
	UserID       string `json:"user_id" validate:"required,uuid"`
	KeepPrevious bool   `json:"keep_previous"`
}

// MembershipResponse salida de una membresía (rol y permisos del par usuario-empresa).
type MembershipResponse struct {
	ID             string                       `json:"id"`
	CompanyID      string                       `json:"company_id"`
	UserID         string                       `json:"user_id"`
	State          string                       `json:"state"`
	IsActive       bool                         `json:"is_active"`
	IsDefault      bool                         `json:"is_default"`
	IsOwner        bool                         `json:"is_owner"`
	Permissions    entity.MembershipPermissions `json:"permissions"`
	InvitedAt      *time.Time                   `json:"invited_at"`
	JoinedAt       *time.Time                   `json:"joined_at"`
	LastAccessedAt *time.Time                   `json:"last_accessed_at"`
}

// RoleLookupResponse Membership es null cuando el usuario no tiene rol en la empresa.
type RoleLookupResponse struct {
	Membership *MembershipResponse `json:"membership"`
}

// ToMembershipResponse mapea la entidad a la salida HTTP.
func ToMembershipResponse(m *entity.Membership) *MembershipResponse {
	if m == nil {
		return nil
	}
	return &MembershipResponse{
		ID:             m.ID,
		CompanyID:      m.CompanyID,
		UserID:         m.UserID,
		State:          string(m.State()),
		IsActive:       m.IsActive,
		IsDefault:      m.IsDefault,
		IsOwner:        m.IsOwner,
		Permissions:    m.Permissions,
		InvitedAt:      m.InvitedAt,
		JoinedAt:       m.JoinedAt,
		LastAccessedAt: m.LastAccessedAt,
	}
}
