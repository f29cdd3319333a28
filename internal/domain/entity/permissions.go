package entity

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/jhoicas/Contable-api/internal/domain"
)

// Roles dentro de una empresa.
const (
	RoleAdmin      = "admin"
	RoleAccountant = "accountant"
	RoleSeller     = "seller"
	RoleViewer     = "viewer"
)

// Módulos del ERP a los que puede acceder un miembro.
const (
	ModuleInventory  = "inventory"
	ModuleBilling    = "billing"
	ModuleAccounting = "accounting"
	ModulePurchasing = "purchasing"
	ModuleReports    = "reports"
)

var (
	validRoles   = map[string]bool{RoleAdmin: true, RoleAccountant: true, RoleSeller: true, RoleViewer: true}
	validModules = map[string]bool{
		ModuleInventory: true, ModuleBilling: true, ModuleAccounting: true,
		ModulePurchasing: true, ModuleReports: true,
	}
)

// MembershipPermissions payload de permisos de la membresía (columna permissions).
type MembershipPermissions struct {
	Role       string
	Modules    []string
	Extensions map[string]json.RawMessage
}

// OwnerPermissions permisos que recibe el creador de la empresa.
func OwnerPermissions() MembershipPermissions {
	return MembershipPermissions{
		Role:    RoleAdmin,
		Modules: []string{ModuleAccounting, ModuleBilling, ModuleInventory, ModulePurchasing, ModuleReports},
	}
}

// Validate rol y módulos deben pertenecer a los catálogos.
func (p MembershipPermissions) Validate() error {
	var vErr domain.ValidationError
	if p.Role != "" && !validRoles[p.Role] {
		vErr.Add("permissions.role", fmt.Sprintf("rol desconocido: %s", p.Role))
	}
	for _, m := range p.Modules {
		if !validModules[m] {
			vErr.Add("permissions.modules", fmt.Sprintf("módulo desconocido: %s", m))
		}
	}
	return vErr.OrNil()
}

// HasModule informa si el permiso incluye el módulo.
func (p MembershipPermissions) HasModule(module string) bool {
	for _, m := range p.Modules {
		if m == module {
			return true
		}
	}
	return false
}

type permissionsJSON struct {
	Role    string   `json:"role,omitempty"`
	Modules []string `json:"modules,omitempty"`
}

// MarshalJSON objeto plano {role, modules, ...extensiones}.
func (p MembershipPermissions) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(p.Extensions)+2)
	for k, v := range p.Extensions {
		out[k] = v
	}
	if p.Role != "" {
		out["role"] = p.Role
	}
	if len(p.Modules) > 0 {
		mods := append([]string(nil), p.Modules...)
		sort.Strings(mods)
		out["modules"] = mods
	}
	return json.Marshal(out)
}

// UnmarshalJSON separa role/modules del resto de claves.
func (p *MembershipPermissions) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("permissions: %w", err)
	}
	var known permissionsJSON
	if err := json.Unmarshal(data, &known); err != nil {
		return domain.NewValidationError("permissions", "estructura inválida")
	}
	*p = MembershipPermissions{Role: known.Role, Modules: known.Modules}
	for key, value := range raw {
		if key == "role" || key == "modules" {
			continue
		}
		if p.Extensions == nil {
			p.Extensions = make(map[string]json.RawMessage)
		}
		p.Extensions[key] = value
	}
	return nil
}

// Clone copia profunda.
func (p MembershipPermissions) Clone() MembershipPermissions {
	out := MembershipPermissions{Role: p.Role}
	if p.Modules != nil {
		out.Modules = append([]string(nil), p.Modules...)
	}
	if p.Extensions != nil {
		out.Extensions = make(map[string]json.RawMessage, len(p.Extensions))
		for k, v := range p.Extensions {
			out.Extensions[k] = append(json.RawMessage(nil), v...)
		}
	}
	return out
}
