// Package sri contiene catálogos y validaciones del Servicio de Rentas Internas (Ecuador).
package sri

// Ambientes del SRI (ficha técnica de comprobantes electrónicos offline).
const (
	EnvironmentTest       = "1" // Pruebas
	EnvironmentProduction = "2" // Producción
)

// Tipos de contribuyente aceptados al registrar una empresa.
const (
	TaxpayerNatural  = "natural"
	TaxpayerJuridica = "juridica"
)

// Tipos de identificación (tabla 6 de la ficha técnica).
const (
	IdentificationRUC       = "04"
	IdentificationCedula    = "05"
	IdentificationPassport  = "06"
	IdentificationFinalUser = "07"
	IdentificationForeign   = "08"
)

// Monedas y zona horaria por defecto.
const (
	DefaultCurrency = "USD"
	DefaultTimezone = "America/Guayaquil"
)

// SupportedCurrencies monedas admitidas para la contabilidad de la empresa.
var SupportedCurrencies = map[string]bool{
	"USD": true, "COP": true, "PEN": true, "EUR": true, "CAD": true, "AUD": true,
}
