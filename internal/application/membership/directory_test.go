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

func TestListActiveCompanies(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	zap := f.create(t, userU, teamT, "1792146739001", "Zapatos del Sur", membership.CreateOptions{})
	f.create(t, userU, teamT, "0990017514001", "Ñandú S.A.", membership.CreateOptions{})
	nub := f.create(t, userU, teamT, "1710034065001", "Nube Cía. Ltda.", membership.CreateOptions{})
	arb := f.create(t, userU, teamT, "1760001550001", "árbol verde", membership.CreateOptions{})
	other := f.create(t, userV, teamT2, "0190012345001", "Ajena", membership.CreateOptions{})
	require.NoError(t, f.manager.SetDefaultCompany(ctx, userU, nub.ID))

	got, err := f.dir.ListActiveCompanies(ctx, entity.TenantContext{UserID: userU})
	require.NoError(t, err)

	require.Len(t, got.Data, 4)
	names := make([]string, 0, len(got.Data))
	for _, c := range got.Data {
		names = append(names, c.Name)
		assert.NotEqual(t, other.ID, c.ID)
		assert.True(t, c.IsOwner)
		assert.Equal(t, c.ID == nub.ID, c.IsDefault)
		assert.Equal(t, c.ID == zap.ID, c.IsCurrent)
	}
	assert.Equal(t, []string{"árbol verde", "Nube Cía. Ltda.", "Ñandú S.A.", "Zapatos del Sur"}, names)
	require.NotNil(t, got.CurrentCompanyID)
	assert.Equal(t, zap.ID, *got.CurrentCompanyID)
	assert.Equal(t, arb.RUC, got.Data[0].RUC)
}

func TestListActiveCompanies_Idempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.create(t, userU, teamT, "1792146739001", "B", membership.CreateOptions{})
	f.create(t, userU, teamT, "0990017514001", "A", membership.CreateOptions{})
	tenant := entity.TenantContext{UserID: userU, TeamID: teamT}

	first, err := f.dir.ListActiveCompanies(ctx, tenant)
	require.NoError(t, err)
	second, err := f.dir.ListActiveCompanies(ctx, tenant)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestListActiveCompanies_ExcludesInactiveAndInvited(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	x := f.create(t, userU, teamT, "1792146739001", "X", membership.CreateOptions{})
	_, err := f.manager.Invite(ctx, userU, x.ID, "v@contable.ec", accountant)
	require.NoError(t, err)

	got, err := f.dir.ListActiveCompanies(ctx, entity.TenantContext{UserID: userV})
	require.NoError(t, err)
	assert.Empty(t, got.Data)
	assert.NotNil(t, got.Data, "la lista vacía se serializa como []")
	assert.Nil(t, got.CurrentCompanyID)
}

func TestListActiveCompanies_UnknownUser(t *testing.T) {
	f := newFixture(t)

	_, err := f.dir.ListActiveCompanies(context.Background(), entity.TenantContext{UserID: "nadie"})

	require.ErrorIs(t, err, domain.ErrUserNotFound)
}
