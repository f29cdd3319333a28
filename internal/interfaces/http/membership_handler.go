package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/application/membership"
)

// MembershipHandler invitaciones, aceptación, baja y traspaso de propiedad.
type MembershipHandler struct {
	manager *membership.Manager
	val     *Validator
}

func NewMembershipHandler(manager *membership.Manager, val *Validator) *MembershipHandler {
	return &MembershipHandler{manager: manager, val: val}
}

// Invite godoc
// @Summary      Invitar usuario
// @Tags         memberships
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                   true  "ID de la empresa"
// @Param        body  body  dto.InviteMemberRequest  true  "Email y permisos"
// @Success      201   {object}  dto.MembershipResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/companies/{id}/invitations [post]
func (h *MembershipHandler) Invite(c *fiber.Ctx) error {
	var in dto.InviteMemberRequest
	if ok, err := h.val.bind(c, &in); !ok {
		return err
	}
	m, err := h.manager.Invite(c.UserContext(), GetTenant(c).UserID, c.Params("id"), in.Email, in.Permissions)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToMembershipResponse(m))
}

// Accept godoc
// @Summary      Aceptar invitación
// @Tags         memberships
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la empresa"
// @Success      200  {object}  dto.MembershipResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/companies/{id}/accept [post]
func (h *MembershipHandler) Accept(c *fiber.Ctx) error {
	m, err := h.manager.Accept(c.UserContext(), GetTenant(c).UserID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToMembershipResponse(m))
}

// Deactivate godoc
// @Summary      Dar de baja a un miembro
// @Description  El propietario puede dar de baja a cualquier miembro; cualquier miembro puede darse de baja a sí mismo.
// @Tags         memberships
// @Produce      json
// @Security     BearerAuth
// @Param        id      path  string  true  "ID de la empresa"
// @Param        userId  path  string  true  "ID del usuario"
// @Success      200     {object}  dto.MessageResponse
// @Failure      403     {object}  dto.ErrorResponse
// @Failure      409     {object}  dto.ErrorResponse
// @Router       /api/companies/{id}/members/{userId} [delete]
func (h *MembershipHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.manager.Deactivate(c.UserContext(), GetTenant(c).UserID, c.Params("id"), c.Params("userId")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Success: true, Message: "Miembro dado de baja."})
}

// TransferOwnership godoc
// @Summary      Traspasar propiedad
// @Tags         memberships
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                        true  "ID de la empresa"
// @Param        body  body  dto.TransferOwnershipRequest  true  "Nuevo propietario"
// @Success      200   {object}  dto.MessageResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/companies/{id}/owner [post]
func (h *MembershipHandler) TransferOwnership(c *fiber.Ctx) error {
	var in dto.TransferOwnershipRequest
	if ok, err := h.val.bind(c, &in); !ok {
		return err
	}
	if err := h.manager.TransferOwnership(c.UserContext(), GetTenant(c).UserID, c.Params("id"), in.UserID, in.KeepPrevious); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Success: true, Message: "Propiedad transferida."})
}
