package entity

import "time"

// Company representa una empresa/tenant del sistema (multi-tenant, enfoque Ecuador/SRI).
// Nunca se elimina: se desactiva con IsActive.
type Company struct {
	ID             string
	TeamID         string
	RUC            string // 13 dígitos, único
	Name           string // razón social
	CommercialName string
	Address        string
	Phone          string
	Mobile         string
	Email          string // único
	Website        string

	// Información tributaria
	TaxpayerType             string // natural, juridica
	ObligatedAccounting      bool
	SpecialTaxpayerNumber    string
	SpecialTaxpayerDate      *time.Time
	RetentionAgentResolution string
	RetentionAgentDate       *time.Time
	IsArtisan                bool
	ArtisanNumber            string

	// Facturación electrónica (solo referencias; no se firma ni se envía al SRI)
	ElectronicSignatureFile     string
	ElectronicSignaturePassword string
	ElectronicSignatureExpiry   *time.Time
	SRIEnvironment              string // "1" pruebas, "2" producción

	Logo      string
	Currency  string
	Timezone  string
	IsActive  bool
	Settings  CompanySettings
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Mensajes de unicidad compartidos por los adaptadores de persistencia.
const (
	MsgRUCTaken   = "Este RUC ya está registrado en el sistema."
	MsgEmailTaken = "Este email ya está registrado en el sistema."
)

// Clone copia profunda.
func (c Company) Clone() Company {
	out := c
	out.SpecialTaxpayerDate = cloneTime(c.SpecialTaxpayerDate)
	out.RetentionAgentDate = cloneTime(c.RetentionAgentDate)
	out.ElectronicSignatureExpiry = cloneTime(c.ElectronicSignatureExpiry)
	out.Settings = c.Settings.Clone()
	return out
}
