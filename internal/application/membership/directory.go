package membership

import (
	"context"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

// Directory consulta de solo lectura de las empresas visibles para un usuario.
type Directory struct {
	memberships repository.MembershipRepository
	users       repository.UserRepository
}

// NewDirectory construye la consulta.
func NewDirectory(memberships repository.MembershipRepository, users repository.UserRepository) *Directory {
	return &Directory{memberships: memberships, users: users}
}

// ListActiveCompanies empresas con membresía activa, ordenadas por nombre (colación española)
// y luego por ID. IsCurrent se calcula contra users.current_company_id.
func (d *Directory) ListActiveCompanies(ctx context.Context, tenant entity.TenantContext) (*dto.CompanyDirectoryResponse, error) {
	if tenant.UserID == "" {
		return nil, domain.ErrInvalidInput
	}
	user, err := d.users.GetByID(ctx, tenant.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	rows, err := d.memberships.ListActiveCompanies(ctx, tenant.UserID)
	if err != nil {
		return nil, err
	}

	// collate.Collator no es seguro para uso concurrente.
	col := collate.New(language.Spanish)
	sort.Slice(rows, func(i, j int) bool {
		if c := col.CompareString(rows[i].Name, rows[j].Name); c != 0 {
			return c < 0
		}
		return rows[i].CompanyID < rows[j].CompanyID
	})

	out := &dto.CompanyDirectoryResponse{Data: make([]dto.CompanySummary, 0, len(rows))}
	if user.CurrentCompanyID != nil {
		current := *user.CurrentCompanyID
		out.CurrentCompanyID = &current
	}
	for _, r := range rows {
		out.Data = append(out.Data, dto.CompanySummary{
			ID:        r.CompanyID,
			RUC:       r.RUC,
			Name:      r.Name,
			IsCurrent: out.CurrentCompanyID != nil && *out.CurrentCompanyID == r.CompanyID,
			IsOwner:   r.IsOwner,
			IsDefault: r.IsDefault,
		})
	}
	return out, nil
}
