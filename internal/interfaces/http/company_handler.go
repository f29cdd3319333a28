package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Contable-api/internal/application/auth"
	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/application/membership"
	"github.com/jhoicas/Contable-api/internal/application/usecase"
)

// CompanyHandler maneja las peticiones HTTP para el recurso Company y la selección de empresa.
type CompanyHandler struct {
	uc        *usecase.CompanyUseCase
	manager   *membership.Manager
	directory *membership.Directory
	auth      *auth.AuthUseCase
	val       *Validator
}

// NewCompanyHandler construye el handler inyectando los casos de uso.
func NewCompanyHandler(uc *usecase.CompanyUseCase, manager *membership.Manager, directory *membership.Directory, authUC *auth.AuthUseCase, val *Validator) *CompanyHandler {
	return &CompanyHandler{uc: uc, manager: manager, directory: directory, auth: authUC, val: val}
}

// Create godoc
// @Summary      Crear empresa
// @Description  Crea la empresa en el equipo actual con el usuario como propietario.
// @Tags         companies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateCompanyRequest  true  "Datos de la empresa"
// @Success      201   {object}  dto.CompanyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/companies [post]
func (h *CompanyHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCompanyRequest
	if ok, err := h.val.bind(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), GetTenant(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Empresas del usuario
// @Description  Empresas con membresía activa, ordenadas por nombre, y la empresa actual.
// @Tags         companies
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.CompanyDirectoryResponse
// @Router       /api/companies [get]
func (h *CompanyHandler) List(c *fiber.Ctx) error {
	out, err := h.directory.ListActiveCompanies(c.UserContext(), GetTenant(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Current godoc
// @Summary      Empresa actual
// @Description  Empresa seleccionada en el token (company_id).
// @Tags         companies
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.CompanyResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/current [get]
func (h *CompanyHandler) Current(c *fiber.Ctx) error {
	out, err := h.uc.Current(c.UserContext(), GetTenant(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener empresa por ID
// @Tags         companies
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la empresa"
// @Success      200  {object}  dto.CompanyResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{id} [get]
func (h *CompanyHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), GetTenant(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar empresa
// @Tags         companies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                    true  "ID de la empresa"
// @Param        body  body  dto.UpdateCompanyRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.CompanyResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/companies/{id} [put]
func (h *CompanyHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCompanyRequest
	if ok, err := h.val.bind(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), GetTenant(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SetDefault godoc
// @Summary      Marcar empresa predeterminada
// @Tags         companies
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la empresa"
// @Success      200  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/companies/{id}/default [post]
func (h *CompanyHandler) SetDefault(c *fiber.Ctx) error {
	if err := h.manager.SetDefaultCompany(c.UserContext(), GetTenant(c).UserID, c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Success: true, Message: "Empresa predeterminada actualizada."})
}

// Switch godoc
// @Summary      Cambiar empresa actual
// @Description  Guarda la empresa actual y devuelve un token con el nuevo contexto.
// @Tags         companies
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la empresa"
// @Success      200  {object}  dto.LoginResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/companies/{id}/switch [post]
func (h *CompanyHandler) Switch(c *fiber.Ctx) error {
	out, err := h.auth.SwitchCompany(c.UserContext(), GetTenant(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Role godoc
// @Summary      Rol del usuario en la empresa
// @Description  membership es null si el usuario no tiene relación con la empresa.
// @Tags         companies
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la empresa"
// @Success      200  {object}  dto.RoleLookupResponse
// @Router       /api/companies/{id}/role [get]
func (h *CompanyHandler) Role(c *fiber.Ctx) error {
	info, err := h.manager.GetRole(c.UserContext(), GetTenant(c).UserID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if info == nil {
		return c.JSON(dto.RoleLookupResponse{})
	}
	return c.JSON(dto.RoleLookupResponse{Membership: dto.ToMembershipResponse(&info.Membership)})
}
