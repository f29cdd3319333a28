package entity

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Contable-api/internal/domain"
)

// Claves reconocidas de la configuración de empresa.
const (
	SettingInvoiceDueDays       = "invoice_due_days"
	SettingDefaultVATRate       = "default_vat_rate"
	SettingDecimalPlaces        = "decimal_places"
	SettingSendDocumentsByEmail = "send_documents_by_email"
	SettingPrintFormat          = "print_format"
)

// Formatos de impresión del RIDE.
const (
	PrintFormatA4     = "a4"
	PrintFormatTicket = "ticket"
)

// CompanySettings configuración tipada de la empresa. Las claves desconocidas se conservan
// en Extensions para compatibilidad hacia adelante.
type CompanySettings struct {
	InvoiceDueDays       *int
	DefaultVATRate       *decimal.Decimal
	DecimalPlaces        *int
	SendDocumentsByEmail *bool
	PrintFormat          string
	Extensions           map[string]json.RawMessage
}

// Validate verifica rangos de las claves reconocidas.
func (s CompanySettings) Validate() error {
	var vErr domain.ValidationError
	if s.InvoiceDueDays != nil && *s.InvoiceDueDays < 0 {
		vErr.Add("settings."+SettingInvoiceDueDays, "debe ser mayor o igual a 0")
	}
	if s.DefaultVATRate != nil && (s.DefaultVATRate.IsNegative() || s.DefaultVATRate.GreaterThan(decimal.NewFromInt(1))) {
		vErr.Add("settings."+SettingDefaultVATRate, "debe estar entre 0 y 1")
	}
	if s.DecimalPlaces != nil && (*s.DecimalPlaces < 0 || *s.DecimalPlaces > 6) {
		vErr.Add("settings."+SettingDecimalPlaces, "debe estar entre 0 y 6")
	}
	if s.PrintFormat != "" && s.PrintFormat != PrintFormatA4 && s.PrintFormat != PrintFormatTicket {
		vErr.Add("settings."+SettingPrintFormat, "debe ser a4 o ticket")
	}
	return vErr.OrNil()
}

// MarshalJSON serializa como un objeto plano; las claves reconocidas prevalecen sobre Extensions.
func (s CompanySettings) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(s.Extensions)+5)
	for k, v := range s.Extensions {
		out[k] = v
	}
	if s.InvoiceDueDays != nil {
		out[SettingInvoiceDueDays] = *s.InvoiceDueDays
	}
	if s.DefaultVATRate != nil {
		out[SettingDefaultVATRate] = *s.DefaultVATRate
	}
	if s.DecimalPlaces != nil {
		out[SettingDecimalPlaces] = *s.DecimalPlaces
	}
	if s.SendDocumentsByEmail != nil {
		out[SettingSendDocumentsByEmail] = *s.SendDocumentsByEmail
	}
	if s.PrintFormat != "" {
		out[SettingPrintFormat] = s.PrintFormat
	}
	return json.Marshal(out)
}

// UnmarshalJSON reparte las claves reconocidas en campos y el resto en Extensions.
// Los valores desconocidos se conservan tal cual llegaron y se vuelven a escribir sin cambios.
func (s *CompanySettings) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("settings: %w", err)
	}
	*s = CompanySettings{}
	for key, value := range raw {
		var err error
		switch key {
		case SettingInvoiceDueDays:
			s.InvoiceDueDays = new(int)
			err = json.Unmarshal(value, s.InvoiceDueDays)
		case SettingDefaultVATRate:
			s.DefaultVATRate = new(decimal.Decimal)
			err = json.Unmarshal(value, s.DefaultVATRate)
		case SettingDecimalPlaces:
			s.DecimalPlaces = new(int)
			err = json.Unmarshal(value, s.DecimalPlaces)
		case SettingSendDocumentsByEmail:
			s.SendDocumentsByEmail = new(bool)
			err = json.Unmarshal(value, s.SendDocumentsByEmail)
		case SettingPrintFormat:
			err = json.Unmarshal(value, &s.PrintFormat)
		default:
			if s.Extensions == nil {
				s.Extensions = make(map[string]json.RawMessage)
			}
			s.Extensions[key] = value
		}
		if err != nil {
			return domain.NewValidationError("settings."+key, "valor con tipo inválido")
		}
	}
	return nil
}

// Clone copia profunda (los punteros no se comparten).
func (s CompanySettings) Clone() CompanySettings {
	out := CompanySettings{PrintFormat: s.PrintFormat}
	if s.InvoiceDueDays != nil {
		v := *s.InvoiceDueDays
		out.InvoiceDueDays = &v
	}
	if s.DefaultVATRate != nil {
		v := *s.DefaultVATRate
		out.DefaultVATRate = &v
	}
	if s.DecimalPlaces != nil {
		v := *s.DecimalPlaces
		out.DecimalPlaces = &v
	}
	if s.SendDocumentsByEmail != nil {
		v := *s.SendDocumentsByEmail
		out.SendDocumentsByEmail = &v
	}
	if s.Extensions != nil {
		out.Extensions = make(map[string]json.RawMessage, len(s.Extensions))
		for k, v := range s.Extensions {
			out.Extensions[k] = append(json.RawMessage(nil), v...)
		}
	}
	return out
}
