package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Contable-api/internal/application/auth"
	"github.com/jhoicas/Contable-api/internal/application/membership"
	"github.com/jhoicas/Contable-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	CompanyUC *usecase.CompanyUseCase
	TeamUC    *usecase.TeamUseCase
	Manager   *membership.Manager
	Directory *membership.Directory
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	val := NewValidator()

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, val)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	requireAuth := AuthMiddleware(deps.JWTSecret)
	authGroup.Get("/me", requireAuth, authHandler.Me)
	authGroup.Post("/refresh", requireAuth, authHandler.Refresh)

	teamHandler := NewTeamHandler(deps.TeamUC, deps.AuthUC, val)
	api.Post("/teams", requireAuth, teamHandler.Create)

	companyHandler := NewCompanyHandler(deps.CompanyUC, deps.Manager, deps.Directory, deps.AuthUC, val)
	memberHandler := NewMembershipHandler(deps.Manager, val)
	companyID := RequireUUIDParams("id")

	companies := api.Group("/companies", requireAuth)
	companies.Post("/", companyHandler.Create)
	companies.Get("/", companyHandler.List)
	companies.Get("/current", companyHandler.Current)
	companies.Get("/:id", companyID, companyHandler.GetByID)
	companies.Put("/:id", companyID, companyHandler.Update)
	companies.Post("/:id/default", companyID, companyHandler.SetDefault)
	companies.Post("/:id/switch", companyID, companyHandler.Switch)
	companies.Get("/:id/role", companyID, companyHandler.Role)

	// Membresías
	companies.Post("/:id/invitations", companyID, memberHandler.Invite)
	companies.Post("/:id/accept", companyID, memberHandler.Accept)
	companies.Delete("/:id/members/:userId", RequireUUIDParams("id", "userId"), memberHandler.Deactivate)
	companies.Post("/:id/owner", companyID, memberHandler.TransferOwnership)
}
