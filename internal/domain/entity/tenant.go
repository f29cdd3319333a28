package entity

// TenantContext contexto resuelto una sola vez por petición (desde el JWT).
type TenantContext struct {
	UserID    string
	TeamID    string
	CompanyID string
}

// HasCompany informa si la petición tiene una empresa seleccionada.
func (t TenantContext) HasCompany() bool { return t.CompanyID != "" }

// HasTeam informa si la petición tiene un equipo seleccionado.
func (t TenantContext) HasTeam() bool { return t.TeamID != "" }
