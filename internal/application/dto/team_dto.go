package dto

import (
	"time"

	"github.com/jhoicas/Contable-api/internal/domain/entity"
)

// CreateTeamRequest entrada para crear un equipo.
type CreateTeamRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description" validate:"omitempty,max=1000"`
}

// TeamResponse salida de un equipo.
type TeamResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	OwnerID     string    `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateTeamResponse equipo creado y token con el nuevo equipo actual.
type CreateTeamResponse struct {
	Team  TeamResponse `json:"team"`
	Token string       `json:"token"`
}

// ToTeamResponse mapea la entidad a la salida HTTP.
func ToTeamResponse(t *entity.Team) *TeamResponse {
	if t == nil {
		return nil
	}
	return &TeamResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		OwnerID:     t.OwnerID,
		CreatedAt:   t.CreatedAt,
	}
}
