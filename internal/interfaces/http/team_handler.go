package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Contable-api/internal/application/auth"
	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/application/usecase"
)

// TeamHandler alta de equipos.
type TeamHandler struct {
	teams *usecase.TeamUseCase
	auth  *auth.AuthUseCase
	val   *Validator
}

func NewTeamHandler(teams *usecase.TeamUseCase, authUC *auth.AuthUseCase, val *Validator) *TeamHandler {
	return &TeamHandler{teams: teams, auth: authUC, val: val}
}

// Create godoc
// @Summary      Crear equipo
// @Description  El equipo queda como equipo actual; la respuesta incluye un token con el nuevo contexto.
// @Tags         teams
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateTeamRequest  true  "Datos del equipo"
// @Success      201   {object}  dto.CreateTeamResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/teams [post]
func (h *TeamHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTeamRequest
	if ok, err := h.val.bind(c, &in); !ok {
		return err
	}
	userID := GetTenant(c).UserID
	team, err := h.teams.Create(c.UserContext(), userID, in)
	if err != nil {
		return writeError(c, err)
	}
	session, err := h.auth.Refresh(c.UserContext(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreateTeamResponse{Team: *team, Token: session.Token})
}
