package dto

import (
	"regexp"
	"strings"
	"time"

	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/pkg/sri"
)

// DateLayout formato de fechas sin hora en las peticiones.
const DateLayout = "2006-01-02"

var phoneCleaner = regexp.MustCompile(`[^\d\-+()\s]`)

// CreateCompanyRequest entrada para crear una empresa. Logo y firma aceptan data URI base64
// o una referencia ya almacenada.
type CreateCompanyRequest struct {
	RUC                         string                  `json:"ruc" validate:"required,len=13,numeric,ruc"`
	Name                        string                  `json:"name" validate:"required,max=255"`
	CommercialName              string                  `json:"commercial_name" validate:"omitempty,max=255"`
	Address                     string                  `json:"address" validate:"required,max=1000"`
	Phone                       string                  `json:"phone" validate:"omitempty,max=20,phone"`
	Mobile                      string                  `json:"mobile" validate:"omitempty,max=20,phone"`
	Email                       string                  `json:"email" validate:"required,email,max=255"`
	Website                     string                  `json:"website" validate:"omitempty,url,max=255"`
	TaxpayerType                string                  `json:"taxpayer_type" validate:"required,oneof=natural juridica"`
	ObligatedAccounting         bool                    `json:"obligated_accounting"`
	SpecialTaxpayerNumber       string                  `json:"special_taxpayer_number" validate:"omitempty,max=255"`
	SpecialTaxpayerDate         string                  `json:"special_taxpayer_date" validate:"omitempty,datetime=2006-01-02,not_future"`
	RetentionAgentResolution    string                  `json:"retention_agent_resolution" validate:"omitempty,max=255"`
	RetentionAgentDate          string                  `json:"retention_agent_date" validate:"omitempty,datetime=2006-01-02,not_future"`
	IsArtisan                   bool                    `json:"is_artisan"`
	ArtisanNumber               string                  `json:"artisan_number" validate:"required_if=IsArtisan true,max=255"`
	ElectronicSignatureFile     string                  `json:"electronic_signature_file"`
	ElectronicSignaturePassword string                  `json:"electronic_signature_password" validate:"omitempty,max=255"`
	ElectronicSignatureExpiry   string                  `json:"electronic_signature_expiry" validate:"omitempty,datetime=2006-01-02,future"`
	SRIEnvironment              string                  `json:"sri_environment" validate:"omitempty,oneof=1 2"`
	Logo                        string                  `json:"logo"`
	Currency                    string                  `json:"currency" validate:"required,len=3,oneof=USD COP PEN EUR CAD AUD"`
	Timezone                    string                  `json:"timezone" validate:"required,timezone"`
	IsActive                    *bool                   `json:"is_active"`
	IsDefault                   bool                    `json:"is_default"`
	Settings                    *entity.CompanySettings `json:"settings"`
}

// Normalize limpia la entrada antes de validar (RUC solo dígitos, teléfonos, espacios).
func (r *CreateCompanyRequest) Normalize() {
	r.RUC = sri.NormalizeRUC(r.RUC)
	r.Name = strings.TrimSpace(r.Name)
	r.CommercialName = strings.TrimSpace(r.CommercialName)
	r.Address = strings.TrimSpace(r.Address)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Phone = strings.TrimSpace(phoneCleaner.ReplaceAllString(r.Phone, ""))
	r.Mobile = strings.TrimSpace(phoneCleaner.ReplaceAllString(r.Mobile, ""))
	r.Currency = strings.ToUpper(strings.TrimSpace(r.Currency))
	if r.Currency == "" {
		r.Currency = sri.DefaultCurrency
	}
	if r.Timezone == "" {
		r.Timezone = sri.DefaultTimezone
	}
}

// ToEntity construye la empresa (sin ID, equipo ni archivos almacenados).
// Las fechas ya fueron validadas con el formato DateLayout.
func (r *CreateCompanyRequest) ToEntity() *entity.Company {
	env := r.SRIEnvironment
	if env == "" {
		env = sri.EnvironmentTest
	}
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	c := &entity.Company{
		RUC:                         r.RUC,
		Name:                        r.Name,
		CommercialName:              r.CommercialName,
		Address:                     r.Address,
		Phone:                       r.Phone,
		Mobile:                      r.Mobile,
		Email:                       r.Email,
		Website:                     r.Website,
		TaxpayerType:                r.TaxpayerType,
		ObligatedAccounting:         r.ObligatedAccounting,
		SpecialTaxpayerNumber:       r.SpecialTaxpayerNumber,
		SpecialTaxpayerDate:         parseDate(r.SpecialTaxpayerDate),
		RetentionAgentResolution:    r.RetentionAgentResolution,
		RetentionAgentDate:          parseDate(r.RetentionAgentDate),
		IsArtisan:                   r.IsArtisan,
		ArtisanNumber:               r.ArtisanNumber,
		ElectronicSignaturePassword: r.ElectronicSignaturePassword,
		ElectronicSignatureExpiry:   parseDate(r.ElectronicSignatureExpiry),
		SRIEnvironment:              env,
		Currency:                    r.Currency,
		Timezone:                    r.Timezone,
		IsActive:                    active,
	}
	if r.Settings != nil {
		c.Settings = r.Settings.Clone()
	}
	return c
}

// UpdateCompanyRequest entrada para actualizar una empresa (campos opcionales).
// RUC y email no se modifican.
type UpdateCompanyRequest struct {
	Name           *string                 `json:"name" validate:"omitempty,min=1,max=255"`
	CommercialName *string                 `json:"commercial_name" validate:"omitempty,max=255"`
	Address        *string                 `json:"address" validate:"omitempty,min=1,max=1000"`
	Phone          *string                 `json:"phone" validate:"omitempty,max=20,phone"`
	Mobile         *string                 `json:"mobile" validate:"omitempty,max=20,phone"`
	Website        *string                 `json:"website" validate:"omitempty,url,max=255"`
	SRIEnvironment *string                 `json:"sri_environment" validate:"omitempty,oneof=1 2"`
	Currency       *string                 `json:"currency" validate:"omitempty,oneof=USD COP PEN EUR CAD AUD"`
	Timezone       *string                 `json:"timezone" validate:"omitempty,timezone"`
	IsActive       *bool                   `json:"is_active"`
	Settings       *entity.CompanySettings `json:"settings"`
}

// CompanyResponse salida de una empresa (sin la contraseña de la firma electrónica).
type CompanyResponse struct {
	ID                        string                 `json:"id"`
	TeamID                    string                 `json:"team_id"`
	RUC                       string                 `json:"ruc"`
	Name                      string                 `json:"name"`
	CommercialName            string                 `json:"commercial_name"`
	Address                   string                 `json:"address"`
	Phone                     string                 `json:"phone"`
	Mobile                    string                 `json:"mobile"`
	Email                     string                 `json:"email"`
	Website                   string                 `json:"website"`
	TaxpayerType              string                 `json:"taxpayer_type"`
	ObligatedAccounting       bool                   `json:"obligated_accounting"`
	SpecialTaxpayerNumber     string                 `json:"special_taxpayer_number"`
	RetentionAgentResolution  string                 `json:"retention_agent_resolution"`
	IsArtisan                 bool                   `json:"is_artisan"`
	ArtisanNumber             string                 `json:"artisan_number"`
	ElectronicSignatureFile   string                 `json:"electronic_signature_file"`
	ElectronicSignatureExpiry *time.Time             `json:"electronic_signature_expiry"`
	SRIEnvironment            string                 `json:"sri_environment"`
	Logo                      string                 `json:"logo"`
	Currency                  string                 `json:"currency"`
	Timezone                  string                 `json:"timezone"`
	IsActive                  bool                   `json:"is_active"`
	Settings                  entity.CompanySettings `json:"settings"`
	CreatedAt                 time.Time              `json:"created_at"`
	UpdatedAt                 time.Time              `json:"updated_at"`
}

// CompanySummary proyección usada por el selector de empresas.
type CompanySummary struct {
	ID        string `json:"id"`
	RUC       string `json:"ruc"`
	Name      string `json:"name"`
	IsCurrent bool   `json:"is_current"`
	IsOwner   bool   `json:"is_owner"`
	IsDefault bool   `json:"is_default"`
}

// CompanyDirectoryResponse empresas activas del usuario y su empresa actual.
type CompanyDirectoryResponse struct {
	Data             []CompanySummary `json:"data"`
	CurrentCompanyID *string          `json:"current_company_id"`
}

// ToCompanyResponse mapea la entidad a la salida HTTP.
func ToCompanyResponse(c *entity.Company) *CompanyResponse {
	if c == nil {
		return nil
	}
	return &CompanyResponse{
		ID:                        c.ID,
		TeamID:                    c.TeamID,
		RUC:                       c.RUC,
		Name:                      c.Name,
		CommercialName:            c.CommercialName,
		Address:                   c.Address,
		Phone:                     c.Phone,
		Mobile:                    c.Mobile,
		Email:                     c.Email,
		Website:                   c.Website,
		TaxpayerType:              c.TaxpayerType,
		ObligatedAccounting:       c.ObligatedAccounting,
		SpecialTaxpayerNumber:     c.SpecialTaxpayerNumber,
		RetentionAgentResolution:  c.RetentionAgentResolution,
		IsArtisan:                 c.IsArtisan,
		ArtisanNumber:             c.ArtisanNumber,
		ElectronicSignatureFile:   c.ElectronicSignatureFile,
		ElectronicSignatureExpiry: c.ElectronicSignatureExpiry,
		SRIEnvironment:            c.SRIEnvironment,
		Logo:                      c.Logo,
		Currency:                  c.Currency,
		Timezone:                  c.Timezone,
		IsActive:                  c.IsActive,
		Settings:                  c.Settings,
		CreatedAt:                 c.CreatedAt,
		UpdatedAt:                 c.UpdatedAt,
	}
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil
	}
	return &t
}
