package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

// Asegura que CompanyRepo implementa repository.CompanyRepository.
var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL.
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador de persistencia para empresas. Pasar pool o tx (Querier).
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

const companyColumns = `
	id, team_id, ruc, name, commercial_name, address, phone, mobile, email, website,
	taxpayer_type, obligated_accounting, special_taxpayer_number, special_taxpayer_date,
	retention_agent_resolution, retention_agent_date, is_artisan, artisan_number,
	electronic_signature_file, electronic_signature_password, electronic_signature_expiry,
	sri_environment, logo, currency, timezone, is_active, settings, created_at, updated_at`

// Create persiste una nueva empresa. RUC o email duplicados devuelven *domain.ValidationError.
func (r *CompanyRepo) Create(ctx context.Context, c *entity.Company) error {
	settings, err := jsonColumn(c.Settings)
	if err != nil {
		return err
	}
	query := `INSERT INTO companies (` + companyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
		        $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29)`
	_, err = r.q.Exec(ctx, query,
		c.ID, c.TeamID, c.RUC, c.Name, c.CommercialName, c.Address, c.Phone, c.Mobile, c.Email, c.Website,
		c.TaxpayerType, c.ObligatedAccounting, c.SpecialTaxpayerNumber, c.SpecialTaxpayerDate,
		c.RetentionAgentResolution, c.RetentionAgentDate, c.IsArtisan, c.ArtisanNumber,
		c.ElectronicSignatureFile, c.ElectronicSignaturePassword, c.ElectronicSignatureExpiry,
		c.SRIEnvironment, c.Logo, c.Currency, c.Timezone, c.IsActive, settings, c.CreatedAt, c.UpdatedAt,
	)
	return mapPostgresError("insert company", err)
}

// GetByID obtiene una empresa por ID.
func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	return r.getOne(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id)
}

// GetByRUC obtiene una empresa por RUC.
func (r *CompanyRepo) GetByRUC(ctx context.Context, ruc string) (*entity.Company, error) {
	return r.getOne(ctx, `SELECT `+companyColumns+` FROM companies WHERE ruc = $1`, ruc)
}

// Update actualiza los datos editables (RUC, email y equipo no cambian).
func (r *CompanyRepo) Update(ctx context.Context, c *entity.Company) error {
	settings, err := jsonColumn(c.Settings)
	if err != nil {
		return err
	}
	query := `
		UPDATE companies SET
			name = $2, commercial_name = $3, address = $4, phone = $5, mobile = $6, website = $7,
			sri_environment = $8, currency = $9, timezone = $10, is_active = $11, settings = $12,
			logo = $13, electronic_signature_file = $14, updated_at = $15
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		c.ID, c.Name, c.CommercialName, c.Address, c.Phone, c.Mobile, c.Website,
		c.SRIEnvironment, c.Currency, c.Timezone, c.IsActive, settings,
		c.Logo, c.ElectronicSignatureFile, c.UpdatedAt,
	)
	if err != nil {
		return mapPostgresError("update company", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update company %s: %w", c.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *CompanyRepo) getOne(ctx context.Context, query string, arg any) (*entity.Company, error) {
	c, err := scanCompany(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, mapPostgresError("get company", err)
	}
	return c, nil
}

func scanCompany(row pgx.Row) (*entity.Company, error) {
	var c entity.Company
	var settings []byte
	err := row.Scan(
		&c.ID, &c.TeamID, &c.RUC, &c.Name, &c.CommercialName, &c.Address, &c.Phone, &c.Mobile, &c.Email, &c.Website,
		&c.TaxpayerType, &c.ObligatedAccounting, &c.SpecialTaxpayerNumber, &c.SpecialTaxpayerDate,
		&c.RetentionAgentResolution, &c.RetentionAgentDate, &c.IsArtisan, &c.ArtisanNumber,
		&c.ElectronicSignatureFile, &c.ElectronicSignaturePassword, &c.ElectronicSignatureExpiry,
		&c.SRIEnvironment, &c.Logo, &c.Currency, &c.Timezone, &c.IsActive, &settings, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(settings) > 0 {
		if err := json.Unmarshal(settings, &c.Settings); err != nil {
			return nil, fmt.Errorf("decodificar settings de %s: %w", c.ID, err)
		}
	}
	return &c, nil
}
