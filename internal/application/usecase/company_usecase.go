package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/application/membership"
	"github.com/jhoicas/Contable-api/internal/application/ports"
	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
	"github.com/jhoicas/Contable-api/pkg/logger"
)

// Carpetas del almacenamiento de archivos de empresa.
const (
	LogoFolder      = "logos"
	SignatureFolder = "signatures"
)

// CompanyUseCase aplica reglas de negocio para empresas (casos de uso).
type CompanyUseCase struct {
	manager   *membership.Manager
	companies repository.CompanyRepository
	files     ports.FileStore
	log       *logger.Logger
}

// NewCompanyUseCase construye el caso de uso.
func NewCompanyUseCase(manager *membership.Manager, companies repository.CompanyRepository, files ports.FileStore, log *logger.Logger) *CompanyUseCase {
	return &CompanyUseCase{manager: manager, companies: companies, files: files, log: log}
}

// Create almacena logo y firma, y crea la empresa con el usuario como propietario dentro del
// equipo actual. in ya viene normalizado y validado por la capa HTTP.
func (uc *CompanyUseCase) Create(ctx context.Context, tenant entity.TenantContext, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	if !tenant.HasTeam() {
		return nil, domain.NewValidationError("team_id", "Debe seleccionar un equipo antes de crear una empresa.")
	}
	company := in.ToEntity()

	var stored []string
	cleanup := func() {
		for _, ref := range stored {
			if err := uc.files.Delete(ctx, ref); err != nil {
				uc.log.Warn().Err(err).Str("ref", ref).Msg("no se pudo eliminar archivo huérfano")
			}
		}
	}

	logo, err := uc.files.Store(ctx, ports.FileKindImage, "logo", company.RUC, LogoFolder, in.Logo)
	if err != nil {
		return nil, err
	}
	if logo != in.Logo {
		stored = append(stored, logo)
	}
	company.Logo = logo

	signature, err := uc.files.Store(ctx, ports.FileKindSignature, "electronic_signature_file", company.RUC, SignatureFolder, in.ElectronicSignatureFile)
	if err != nil {
		cleanup()
		return nil, err
	}
	if signature != in.ElectronicSignatureFile {
		stored = append(stored, signature)
	}
	company.ElectronicSignatureFile = signature

	created, err := uc.manager.CreateCompanyWithOwner(ctx, company, tenant.UserID, tenant.TeamID, membership.CreateOptions{MakeDefault: in.IsDefault})
	if err != nil {
		cleanup()
		return nil, err
	}
	return dto.ToCompanyResponse(created), nil
}

// GetByID devuelve la empresa si el usuario es miembro activo.
func (uc *CompanyUseCase) GetByID(ctx context.Context, tenant entity.TenantContext, id string) (*dto.CompanyResponse, error) {
	member, err := uc.manager.IsActiveMember(ctx, tenant.UserID, id)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, domain.ErrNotAMember
	}
	company, err := uc.companies.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return dto.ToCompanyResponse(company), nil
}

// Current devuelve la empresa seleccionada en el token. domain.ErrNotFound si la petición
// no tiene empresa; domain.ErrNotAMember si la membresía ya no está activa.
func (uc *CompanyUseCase) Current(ctx context.Context, tenant entity.TenantContext) (*dto.CompanyResponse, error) {
	if !tenant.HasCompany() {
		return nil, fmt.Errorf("%w: no hay empresa seleccionada", domain.ErrNotFound)
	}
	return uc.GetByID(ctx, tenant, tenant.CompanyID)
}

// Update modifica los datos editables de la empresa. Solo el propietario puede hacerlo.
func (uc *CompanyUseCase) Update(ctx context.Context, tenant entity.TenantContext, id string, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	role, err := uc.manager.GetRole(ctx, tenant.UserID, id)
	if err != nil {
		return nil, err
	}
	if role == nil || !role.IsActive {
		return nil, domain.ErrNotAMember
	}
	if !role.IsOwner {
		return nil, fmt.Errorf("%w: solo el propietario puede modificar la empresa", domain.ErrForbidden)
	}
	company, err := uc.companies.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}

	apply(&company.Name, in.Name)
	apply(&company.CommercialName, in.CommercialName)
	apply(&company.Address, in.Address)
	apply(&company.Phone, in.Phone)
	apply(&company.Mobile, in.Mobile)
	apply(&company.Website, in.Website)
	apply(&company.SRIEnvironment, in.SRIEnvironment)
	apply(&company.Currency, in.Currency)
	apply(&company.Timezone, in.Timezone)
	if in.IsActive != nil {
		company.IsActive = *in.IsActive
	}
	if in.Settings != nil {
		if err := in.Settings.Validate(); err != nil {
			return nil, err
		}
		company.Settings = in.Settings.Clone()
	}
	company.UpdatedAt = time.Now().UTC()

	if err := uc.companies.Update(ctx, company); err != nil {
		return nil, err
	}
	uc.log.Info().Str("company_id", id).Str("user_id", tenant.UserID).Msg("company updated")
	return dto.ToCompanyResponse(company), nil
}

func apply(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
