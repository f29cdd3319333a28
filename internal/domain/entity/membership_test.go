package entity_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
)

func TestMembership_CicloDeVida(t *testing.T) {
	now := time.Date(2025, 7, 22, 10, 0, 0, 0, time.UTC)
	m := &entity.Membership{CompanyID: "c1", UserID: "u1", InvitedAt: &now}
	assert.Equal(t, entity.MembershipInvited, m.State())

	require.NoError(t, m.Accept(now.Add(time.Hour)))
	assert.Equal(t, entity.MembershipJoined, m.State())
	require.NotNil(t, m.JoinedAt)

	m.IsDefault = true
	require.NoError(t, m.Deactivate(now.Add(2*time.Hour)))
	assert.Equal(t, entity.MembershipInactive, m.State())
	assert.False(t, m.IsDefault, "una membresía inactiva no puede quedar como predeterminada")

	// inactive -> joined solo mediante una nueva invitación
	err := m.Accept(now.Add(3 * time.Hour))
	assert.True(t, errors.Is(err, domain.ErrConflict))

	m.IsOwner = true
	require.NoError(t, m.Reinvite(now.Add(4*time.Hour), entity.MembershipPermissions{Role: entity.RoleViewer}))
	assert.Equal(t, entity.MembershipInvited, m.State())
	assert.Nil(t, m.JoinedAt)
	assert.False(t, m.IsOwner)
	assert.Equal(t, now.Add(4*time.Hour), *m.InvitedAt)

	require.NoError(t, m.Accept(now.Add(5*time.Hour)))
	assert.Equal(t, entity.MembershipJoined, m.State())
}

func TestMembership_TransicionesInvalidas(t *testing.T) {
	now := time.Now()
	joined := &entity.Membership{IsActive: true, JoinedAt: &now}
	assert.ErrorIs(t, joined.Reinvite(now, entity.MembershipPermissions{}), domain.ErrConflict)
	assert.ErrorIs(t, joined.Accept(now), domain.ErrConflict)

	invited := &entity.Membership{InvitedAt: &now}
	assert.ErrorIs(t, invited.Deactivate(now), domain.ErrConflict)
}

func TestMembership_Validate(t *testing.T) {
	now := time.Now()
	ok := &entity.Membership{CompanyID: "c", UserID: "u", IsActive: true, IsDefault: true, JoinedAt: &now}
	assert.NoError(t, ok.Validate())

	bad := &entity.Membership{CompanyID: "c", UserID: "u", IsDefault: true}
	err := bad.Validate()
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "is_default")

	badPerms := &entity.Membership{CompanyID: "c", UserID: "u", Permissions: entity.MembershipPermissions{Role: "root"}}
	assert.ErrorIs(t, badPerms.Validate(), domain.ErrValidation)
}

func TestMembership_ValidateReuneFlagsYPermisos(t *testing.T) {
	m := &entity.Membership{
		CompanyID: "c", UserID: "u", IsActive: true, IsDefault: true,
		Permissions: entity.MembershipPermissions{Role: "superuser"},
	}

	var vErr *domain.ValidationError
	require.ErrorAs(t, m.Validate(), &vErr)
	assert.Contains(t, vErr.Fields, "joined_at")
	assert.Contains(t, vErr.Fields, "permissions.role")
}

func TestMembership_CloneNoCompartePunteros(t *testing.T) {
	now := time.Now()
	m := entity.Membership{JoinedAt: &now, Permissions: entity.MembershipPermissions{Modules: []string{entity.ModuleBilling}}}
	c := m.Clone()
	*c.JoinedAt = now.Add(time.Hour)
	c.Permissions.Modules[0] = entity.ModuleReports

	assert.Equal(t, now, *m.JoinedAt)
	assert.Equal(t, entity.ModuleBilling, m.Permissions.Modules[0])
}
