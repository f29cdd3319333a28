package usecase_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/application/membership"
	"github.com/jhoicas/Contable-api/internal/application/ports"
	"github.com/jhoicas/Contable-api/internal/application/usecase"
	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
	"github.com/jhoicas/Contable-api/internal/infrastructure/memory"
	"github.com/jhoicas/Contable-api/pkg/logger"
)

const (
	ownerID  = "11111111-1111-1111-1111-111111111111"
	memberID = "22222222-2222-2222-2222-222222222222"
)

// recordingFiles FileStore en memoria que registra lo almacenado y lo eliminado.
type recordingFiles struct {
	mu      sync.Mutex
	stored  []string
	deleted []string
}

func (f *recordingFiles) Store(_ context.Context, kind ports.FileKind, field, identifier, folder, payload string) (string, error) {
	if payload == "" || !strings.HasPrefix(payload, "data:") {
		return payload, nil
	}
	if kind == ports.FileKindImage && !strings.HasPrefix(payload, "data:image/") {
		return "", domain.NewValidationError(field, "Formato de base64 no válido para este tipo de archivo")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	ref := "/storage/" + folder + "/" + identifier
	f.stored = append(f.stored, ref)
	return ref, nil
}

func (f *recordingFiles) Delete(_ context.Context, ref string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, ref)
	return nil
}

type env struct {
	repos     repository.Repositories
	companies *usecase.CompanyUseCase
	teams     *usecase.TeamUseCase
	files     *recordingFiles
	teamID    string
}

func newEnv(t *testing.T) *env {
	t.Helper()
	ctx := context.Background()
	st := memory.NewStore()
	repos := st.Repositories()
	for _, id := range []string{ownerID, memberID} {
		require.NoError(t, repos.Users.Create(ctx, &entity.User{ID: id, Name: id, Email: id + "@contable.ec", Status: entity.UserStatusActive}))
	}
	log := logger.Nop()
	files := &recordingFiles{}
	teams := usecase.NewTeamUseCase(st, log)
	team, err := teams.Create(ctx, ownerID, dto.CreateTeamRequest{Name: "Estudio Contable"})
	require.NoError(t, err)
	manager := membership.NewManager(st, repos.Memberships, log)
	return &env{
		repos:     repos,
		companies: usecase.NewCompanyUseCase(manager, repos.Companies, files, log),
		teams:     teams,
		files:     files,
		teamID:    team.ID,
	}
}

func validRequest() dto.CreateCompanyRequest {
	req := dto.CreateCompanyRequest{
		RUC:          "1792146739001",
		Name:         "Comercial Andina S.A.",
		Address:      "Av. Amazonas N24-03",
		Email:        "info@andina.ec",
		TaxpayerType: "juridica",
		Logo:         "data:image/png;base64,iVBORw0KGgo=",
	}
	req.Normalize()
	return req
}

func TestTeamUseCase_CreateSetsCurrentTeam(t *testing.T) {
	e := newEnv(t)

	u, err := e.repos.Users.GetByID(context.Background(), ownerID)
	require.NoError(t, err)
	require.NotNil(t, u.CurrentTeamID)
	assert.Equal(t, e.teamID, *u.CurrentTeamID)

	owns, err := e.repos.Teams.OwnsTeam(context.Background(), ownerID, e.teamID)
	require.NoError(t, err)
	assert.True(t, owns)
}

func TestTeamUseCase_UnknownUser(t *testing.T) {
	e := newEnv(t)

	_, err := e.teams.Create(context.Background(), "desconocido", dto.CreateTeamRequest{Name: "X"})

	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestCompanyUseCase_Create(t *testing.T) {
	e := newEnv(t)
	tenant := entity.TenantContext{UserID: ownerID, TeamID: e.teamID}

	resp, err := e.companies.Create(context.Background(), tenant, validRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "USD", resp.Currency)
	assert.Equal(t, "America/Guayaquil", resp.Timezone)
	assert.Equal(t, "1", resp.SRIEnvironment)
	assert.Equal(t, "/storage/logos/1792146739001", resp.Logo)
	assert.True(t, resp.IsActive)
	assert.Empty(t, e.files.deleted)
}

func TestCompanyUseCase_CreateCleansUpFilesOnFailure(t *testing.T) {
	e := newEnv(t)
	tenant := entity.TenantContext{UserID: ownerID, TeamID: e.teamID}
	_, err := e.companies.Create(context.Background(), tenant, validRequest())
	require.NoError(t, err)

	dup := validRequest()
	dup.Email = "otra@andina.ec"
	_, err = e.companies.Create(context.Background(), tenant, dup)

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "ruc")
	assert.Equal(t, []string{"/storage/logos/1792146739001"}, e.files.deleted)
}

func TestCompanyUseCase_CreateRequiresTeam(t *testing.T) {
	e := newEnv(t)

	_, err := e.companies.Create(context.Background(), entity.TenantContext{UserID: ownerID}, validRequest())

	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, e.files.stored)
}

func TestCompanyUseCase_CreateInvalidLogo(t *testing.T) {
	e := newEnv(t)
	req := validRequest()
	req.Logo = "data:application/pdf;base64,JVBERi0="

	_, err := e.companies.Create(context.Background(), entity.TenantContext{UserID: ownerID, TeamID: e.teamID}, req)

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "logo")
}

func TestCompanyUseCase_GetAndUpdate(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := entity.TenantContext{UserID: ownerID, TeamID: e.teamID}
	stranger := entity.TenantContext{UserID: memberID}
	created, err := e.companies.Create(ctx, owner, validRequest())
	require.NoError(t, err)

	_, err = e.companies.GetByID(ctx, stranger, created.ID)
	require.ErrorIs(t, err, domain.ErrNotAMember)

	got, err := e.companies.GetByID(ctx, owner, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	name := "Andina Holding"
	days := 30
	updated, err := e.companies.Update(ctx, owner, created.ID, dto.UpdateCompanyRequest{
		Name:     &name,
		Settings: &entity.CompanySettings{InvoiceDueDays: &days, PrintFormat: entity.PrintFormatTicket},
	})
	require.NoError(t, err)
	assert.Equal(t, "Andina Holding", updated.Name)
	assert.Equal(t, "Av. Amazonas N24-03", updated.Address)
	require.NotNil(t, updated.Settings.InvoiceDueDays)
	assert.Equal(t, 30, *updated.Settings.InvoiceDueDays)

	_, err = e.companies.Update(ctx, stranger, created.ID, dto.UpdateCompanyRequest{Name: &name})
	require.ErrorIs(t, err, domain.ErrNotAMember)

	bad := 10
	_, err = e.companies.Update(ctx, owner, created.ID, dto.UpdateCompanyRequest{
		Settings: &entity.CompanySettings{DecimalPlaces: &bad},
	})
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestCompanyUseCase_Current(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := entity.TenantContext{UserID: ownerID, TeamID: e.teamID}
	created, err := e.companies.Create(ctx, owner, validRequest())
	require.NoError(t, err)

	_, err = e.companies.Current(ctx, owner)
	require.ErrorIs(t, err, domain.ErrNotFound)

	owner.CompanyID = created.ID
	got, err := e.companies.Current(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = e.companies.Current(ctx, entity.TenantContext{UserID: memberID, CompanyID: created.ID})
	require.ErrorIs(t, err, domain.ErrNotAMember)
}
