package membership_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Contable-api/internal/application/membership"
	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
)

var accountant = entity.MembershipPermissions{
	Role:    entity.RoleAccountant,
	Modules: []string{entity.ModuleAccounting, entity.ModuleReports},
}

func TestInviteAndAccept_FirstCompanyBecomesDefault(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	x := f.create(t, userU, teamT, "1792146739001", "X", membership.CreateOptions{})

	inv, err := f.manager.Invite(ctx, userU, x.ID, "v@contable.ec", accountant)
	require.NoError(t, err)
	assert.Equal(t, entity.MembershipInvited, inv.State())
	assert.False(t, inv.IsActive)
	assert.NotNil(t, inv.InvitedAt)

	acc, err := f.manager.Accept(ctx, userV, x.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.MembershipJoined, acc.State())
	assert.True(t, acc.IsDefault)
	assert.False(t, acc.IsOwner)
	assert.Equal(t, entity.RoleAccountant, acc.Permissions.Role)
	require.NotNil(t, f.user(t, userV).CurrentCompanyID)
	assert.Equal(t, x.ID, *f.user(t, userV).CurrentCompanyID)
	f.assertInvariants(t, userU, userV)
}

func TestAccept_KeepsExistingDefault(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	x := f.create(t, userU, teamT, "1792146739001", "X", membership.CreateOptions{})
	z := f.create(t, userV, teamT2, "0990017514001", "Z", membership.CreateOptions{})
	_, err := f.manager.Invite(ctx, userU, x.ID, "v@contable.ec", accountant)
	require.NoError(t, err)

	acc, err := f.manager.Accept(ctx, userV, x.ID)
	require.NoError(t, err)

	assert.False(t, acc.IsDefault)
	assert.True(t, f.membership(t, userV, z.ID).IsDefault)
	assert.Equal(t, z.ID, *f.user(t, userV).CurrentCompanyID)
}

func TestInvite_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	x := f.create(t, userU, teamT, "1792146739001", "X", membership.CreateOptions{})

	t.Run("solo propietarios", func(t *testing.T) {
		_, err := f.manager.Invite(ctx, userV, x.ID, "u@contable.ec", accountant)
		require.ErrorIs(t, err, domain.ErrForbidden)
	})
	t.Run("usuario inexistente", func(t *testing.T) {
		_, err := f.manager.Invite(ctx, userU, x.ID, "nadie@contable.ec", accountant)
		require.ErrorIs(t, err, domain.ErrUserNotFound)
	})
	t.Run("permisos inválidos", func(t *testing.T) {
		_, err := f.manager.Invite(ctx, userU, x.ID, "v@contable.ec", entity.MembershipPermissions{Role: "root"})
		require.ErrorIs(t, err, domain.ErrValidation)
	})
	t.Run("invitación duplicada", func(t *testing.T) {
		_, err := f.manager.Invite(ctx, userU, x.ID, "v@contable.ec", accountant)
		require.NoError(t, err)
		_, err = f.manager.Invite(ctx, userU, x.ID, "v@contable.ec", accountant)
		require.ErrorIs(t, err, domain.ErrConflict)
	})
	t.Run("miembro activo", func(t *testing.T) {
		_, err := f.manager.Invite(ctx, userU, x.ID, "u@contable.ec", accountant)
		require.ErrorIs(t, err, domain.ErrConflict)
	})
}

func TestAccept_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	x := f.create(t, userU, teamT, "1792146739001", "X", membership.CreateOptions{})

	_, err := f.manager.Accept(ctx, userV, x.ID)
	require.ErrorIs(t, err, domain.ErrNotAMember)

	_, err = f.manager.Accept(ctx, userU, x.ID)
	require.ErrorIs(t, err, domain.ErrConflict)
}

func TestDeactivate_PromotesOldestActive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	z := f.create(t, userV, teamT2, "0990017514001", "Z", membership.CreateOptions{})
	w := f.create(t, userV, teamT2, "1710034065001", "W", membership.CreateOptions{})
	x := f.create(t, userU, teamT, "1792146739001", "X", membership.CreateOptions{})
	_, err := f.manager.Invite(ctx, userU, x.ID, "v@contable.ec", accountant)
	require.NoError(t, err)
	_, err = f.manager.Accept(ctx, userV, x.ID)
	require.NoError(t, err)
	require.NoError(t, f.manager.SetDefaultCompany(ctx, userV, x.ID))
	require.NoError(t, f.repos.Users.SetCurrentCompany(ctx, userV, &x.ID))

	require.NoError(t, f.manager.Deactivate(ctx, userU, x.ID, userV))

	removed := f.membership(t, userV, x.ID)
	assert.Equal(t, entity.MembershipInactive, removed.State())
	assert.False(t, removed.IsDefault)
	assert.True(t, f.membership(t, userV, z.ID).IsDefault, "se promueve la membresía más antigua")
	assert.False(t, f.membership(t, userV, w.ID).IsDefault)
	require.NotNil(t, f.user(t, userV).CurrentCompanyID)
	assert.Equal(t, z.ID, *f.user(t, userV).CurrentCompanyID)
	f.assertInvariants(t, userU, userV)
}

func TestDeactivate_LastCompanyClearsCurrent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	x := f.create(t, userU, teamT, "1792146739001", "X", membership.CreateOptions{})
	_, err := f.manager.Invite(ctx, userU, x.ID, "v@contable.ec", accountant)
	require.NoError(t, err)
	_, err = f.manager.Accept(ctx, userV, x.ID)
	require.NoError(t, err)

	require.NoError(t, f.manager.Deactivate(ctx, userV, x.ID, userV))

	def, err := f.repos.Memberships.GetDefault(ctx, userV)
	require.NoError(t, err)
	assert.Nil(t, def)
	assert.Nil(t, f.user(t, userV).CurrentCompanyID)
}

func TestDeactivate_Rules(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	x := f.create(t, userU, teamT, "1792146739001", "X", membership.CreateOptions{})
	_, err := f.manager.Invite(ctx, userU, x.ID, "v@contable.ec", accountant)
	require.NoError(t, err)
	_, err = f.manager.Accept(ctx, userV, x.ID)
	require.NoError(t, err)

	t.Run("último propietario", func(t *testing.T) {
		err := f.manager.Deactivate(ctx, userU, x.ID, userU)
		require.ErrorIs(t, err, domain.ErrLastOwner)
		assert.True(t, f.membership(t, userU, x.ID).IsActive)
	})
	t.Run("un miembro no puede retirar a otro", func(t *testing.T) {
		err := f.manager.Deactivate(ctx, userV, x.ID, userU)
		require.ErrorIs(t, err, domain.ErrForbidden)
	})
	t.Run("sin membresía activa", func(t *testing.T) {
		require.NoError(t, f.manager.Deactivate(ctx, userU, x.ID, userV))
		err := f.manager.Deactivate(ctx, userU, x.ID, userV)
		require.ErrorIs(t, err, domain.ErrNotAMember)
	})
	f.assertInvariants(t, userU, userV)
}

func TestReinviteAfterDeactivation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	x := f.create(t, userU, teamT, "1792146739001", "X", membership.CreateOptions{})
	_, err := f.manager.Invite(ctx, userU, x.ID, "v@contable.ec", accountant)
	require.NoError(t, err)
	first, err := f.manager.Accept(ctx, userV, x.ID)
	require.NoError(t, err)
	require.NoError(t, f.manager.Deactivate(ctx, userU, x.ID, userV))

	viewer := entity.MembershipPermissions{Role: entity.RoleViewer}
	again, err := f.manager.Invite(ctx, userU, x.ID, "v@contable.ec", viewer)
	require.NoError(t, err)

	assert.Equal(t, entity.MembershipInvited, again.State())
	assert.Nil(t, again.JoinedAt)
	assert.True(t, again.InvitedAt.After(*first.InvitedAt))
	assert.Equal(t, first.ID, again.ID, "se reutiliza la fila del par usuario-empresa")
	assert.Equal(t, entity.RoleViewer, again.Permissions.Role)

	rejoined, err := f.manager.Accept(ctx, userV, x.ID)
	require.NoError(t, err)
	assert.True(t, rejoined.IsActive)
}

func TestTransferOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	x := f.create(t, userU, teamT, "1792146739001", "X", membership.CreateOptions{})

	err := f.manager.TransferOwnership(ctx, userU, x.ID, userV, false)
	require.ErrorIs(t, err, domain.ErrNotAMember)

	_, err = f.manager.Invite(ctx, userU, x.ID, "v@contable.ec", accountant)
	require.NoError(t, err)
	_, err = f.manager.Accept(ctx, userV, x.ID)
	require.NoError(t, err)

	err = f.manager.TransferOwnership(ctx, userV, x.ID, userU, false)
	require.ErrorIs(t, err, domain.ErrForbidden)

	require.NoError(t, f.manager.TransferOwnership(ctx, userU, x.ID, userV, false))
	assert.True(t, f.membership(t, userV, x.ID).IsOwner)
	assert.False(t, f.membership(t, userU, x.ID).IsOwner)

	// El antiguo propietario ya puede retirarse; el nuevo no.
	require.NoError(t, f.manager.Deactivate(ctx, userU, x.ID, userU))
	require.ErrorIs(t, f.manager.Deactivate(ctx, userV, x.ID, userV), domain.ErrLastOwner)
	f.assertInvariants(t, userU, userV)
}

func TestTransferOwnership_KeepPrevious(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	x := f.create(t, userU, teamT, "1792146739001", "X", membership.CreateOptions{})
	_, err := f.manager.Invite(ctx, userU, x.ID, "v@contable.ec", accountant)
	require.NoError(t, err)
	_, err = f.manager.Accept(ctx, userV, x.ID)
	require.NoError(t, err)

	require.NoError(t, f.manager.TransferOwnership(ctx, userU, x.ID, userV, true))

	owners, err := f.repos.Memberships.CountActiveOwners(ctx, x.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, owners)
}
