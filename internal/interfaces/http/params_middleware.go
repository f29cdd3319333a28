package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/Contable-api/internal/application/dto"
)

// RequireUUIDParams responde 404 cuando alguno de los parámetros de ruta indicados no es un UUID.
// Un identificador mal formado no puede referirse a ningún recurso.
func RequireUUIDParams(names ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		for _, name := range names {
			v := c.Params(name)
			if v == "" {
				continue
			}
			if _, err := uuid.Parse(v); err != nil {
				return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
					Code:    "NOT_FOUND",
					Message: "recurso no encontrado",
				})
			}
		}
		return c.Next()
	}
}
