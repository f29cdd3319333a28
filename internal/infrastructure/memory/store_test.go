package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

func seedUser(t *testing.T, repos repository.Repositories, id, email string) {
	t.Helper()
	require.NoError(t, repos.Users.Create(context.Background(), &entity.User{
		ID: id, Name: id, Email: email, Status: entity.UserStatusActive,
	}))
}

func seedCompany(t *testing.T, repos repository.Repositories, id, ruc, email string) {
	t.Helper()
	require.NoError(t, repos.Companies.Create(context.Background(), &entity.Company{
		ID: id, RUC: ruc, Name: "Empresa " + id, Email: email, IsActive: true,
	}))
}

func activeMembership(companyID, userID string, joined time.Time, isDefault bool) *entity.Membership {
	j := joined
	return &entity.Membership{
		ID: companyID + userID, CompanyID: companyID, UserID: userID,
		IsActive: true, IsDefault: isDefault, JoinedAt: &j,
	}
}

func TestCompanyRepo_UniqueRUCAndEmail(t *testing.T) {
	ctx := context.Background()
	st := NewStore()
	repos := st.Repositories()
	seedCompany(t, repos, "c1", "1792146739001", "a@b.com")

	err := repos.Companies.Create(ctx, &entity.Company{ID: "c2", RUC: "1792146739001", Email: "A@B.com"})
	require.Error(t, err)

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, entity.MsgRUCTaken, vErr.Fields["ruc"])
	assert.Equal(t, entity.MsgEmailTaken, vErr.Fields["email"])

	got, err := repos.Companies.GetByID(ctx, "c2")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_RunRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	st := NewStore()
	seedUser(t, st.Repositories(), "u1", "u1@x.com")

	boom := errors.New("boom")
	err := st.Run(ctx, func(repos repository.Repositories) error {
		seedCompany(t, repos, "c1", "1792146739001", "a@b.com")
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := st.Repositories().Companies.GetByID(ctx, "c1")
	require.NoError(t, err)
	assert.Nil(t, got, "una transacción fallida no debe dejar rastro")
}

func TestStore_RunRejectsTwoDefaults(t *testing.T) {
	ctx := context.Background()
	st := NewStore()
	repos := st.Repositories()
	seedUser(t, repos, "u1", "u1@x.com")
	seedCompany(t, repos, "c1", "1792146739001", "a@b.com")
	seedCompany(t, repos, "c2", "0990017514001", "c@d.com")
	now := time.Now()

	err := st.Run(ctx, func(tx repository.Repositories) error {
		if err := tx.Memberships.Create(ctx, activeMembership("c1", "u1", now, true)); err != nil {
			return err
		}
		return tx.Memberships.Create(ctx, activeMembership("c2", "u1", now, true))
	})
	require.ErrorIs(t, err, domain.ErrConflict)

	n, err := repos.Memberships.CountActiveByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestMembershipRepo_SetDefault(t *testing.T) {
	ctx := context.Background()
	st := NewStore()
	repos := st.Repositories()
	seedUser(t, repos, "u1", "u1@x.com")
	seedCompany(t, repos, "c1", "1792146739001", "a@b.com")
	seedCompany(t, repos, "c2", "0990017514001", "c@d.com")
	seedCompany(t, repos, "c3", "1710034065001", "e@f.com")
	now := time.Now()
	require.NoError(t, repos.Memberships.Create(ctx, activeMembership("c1", "u1", now, true)))
	require.NoError(t, repos.Memberships.Create(ctx, activeMembership("c2", "u1", now, false)))
	inactive := activeMembership("c3", "u1", now, false)
	inactive.IsActive = false
	require.NoError(t, repos.Memberships.Create(ctx, inactive))

	t.Run("mueve la predeterminada", func(t *testing.T) {
		require.NoError(t, repos.Memberships.SetDefault(ctx, "u1", "c2"))
		def, err := repos.Memberships.GetDefault(ctx, "u1")
		require.NoError(t, err)
		require.NotNil(t, def)
		assert.Equal(t, "c2", def.CompanyID)

		old, err := repos.Memberships.Get(ctx, "u1", "c1")
		require.NoError(t, err)
		assert.False(t, old.IsDefault)
	})

	t.Run("membresía inactiva", func(t *testing.T) {
		err := repos.Memberships.SetDefault(ctx, "u1", "c3")
		require.ErrorIs(t, err, domain.ErrNotAMember)

		def, err := repos.Memberships.GetDefault(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, "c2", def.CompanyID)
	})

	t.Run("sin membresía", func(t *testing.T) {
		err := repos.Memberships.SetDefault(ctx, "u1", "desconocida")
		require.ErrorIs(t, err, domain.ErrNotAMember)
	})
}

func TestMembershipRepo_RechazaFilasInvalidas(t *testing.T) {
	ctx := context.Background()
	st := NewStore()
	repos := st.Repositories()
	seedUser(t, repos, "u1", "u1@x.com")
	seedCompany(t, repos, "c1", "1792146739001", "a@b.com")

	sinIngreso := activeMembership("c1", "u1", time.Now(), true)
	sinIngreso.JoinedAt = nil
	sinIngreso.Permissions = entity.MembershipPermissions{Role: "superuser"}

	err := repos.Memberships.Create(ctx, sinIngreso)
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "joined_at")
	assert.Contains(t, vErr.Fields, "permissions.role")

	got, err := repos.Memberships.Get(ctx, "u1", "c1")
	require.NoError(t, err)
	assert.Nil(t, got, "una fila inválida no debe almacenarse")

	valida := activeMembership("c1", "u1", time.Now(), true)
	require.NoError(t, repos.Memberships.Create(ctx, valida))
	valida.IsActive = false
	err = repos.Memberships.Update(ctx, valida)
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "is_default")
}

func TestMembershipRepo_OldestActive(t *testing.T) {
	ctx := context.Background()
	st := NewStore()
	repos := st.Repositories()
	seedUser(t, repos, "u1", "u1@x.com")
	seedCompany(t, repos, "c1", "1792146739001", "a@b.com")
	seedCompany(t, repos, "c2", "0990017514001", "c@d.com")
	seedCompany(t, repos, "c3", "1710034065001", "e@f.com")
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repos.Memberships.Create(ctx, activeMembership("c1", "u1", base, true)))
	require.NoError(t, repos.Memberships.Create(ctx, activeMembership("c3", "u1", base.Add(time.Hour), false)))
	require.NoError(t, repos.Memberships.Create(ctx, activeMembership("c2", "u1", base.Add(time.Hour), false)))

	got, err := repos.Memberships.OldestActive(ctx, "u1", "c1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "c2", got.CompanyID, "empate en joined_at se resuelve por company_id")

	none, err := repos.Memberships.OldestActive(ctx, "otro", "")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestUserRepo_EmailUniqueCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	repos := NewStore().Repositories()
	seedUser(t, repos, "u1", "Ana@Example.com")

	err := repos.Users.Create(ctx, &entity.User{ID: "u2", Email: "ana@example.com"})
	require.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	got, err := repos.Users.GetByEmail(ctx, "ANA@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "u1", got.ID)
}

func TestTeamRepo_OwnerBelongs(t *testing.T) {
	ctx := context.Background()
	repos := NewStore().Repositories()
	seedUser(t, repos, "u1", "u1@x.com")
	require.NoError(t, repos.Teams.Create(ctx, &entity.Team{ID: "t1", Name: "Equipo", OwnerID: "u1"}))

	owns, err := repos.Teams.OwnsTeam(ctx, "u1", "t1")
	require.NoError(t, err)
	assert.True(t, owns)

	belongs, err := repos.Teams.BelongsToTeam(ctx, "u1", "t1")
	require.NoError(t, err)
	assert.True(t, belongs)

	belongs, err = repos.Teams.BelongsToTeam(ctx, "u2", "t1")
	require.NoError(t, err)
	assert.False(t, belongs)
}
