package repository

import (
	"context"

	"github.com/jhoicas/Contable-api/internal/domain/entity"
)

// TeamRepository puerto mínimo del subsistema de equipos.
type TeamRepository interface {
	// Create persiste el equipo y registra a su dueño como miembro.
	Create(ctx context.Context, team *entity.Team) error
	GetByID(ctx context.Context, id string) (*entity.Team, error)
	OwnsTeam(ctx context.Context, userID, teamID string) (bool, error)
	BelongsToTeam(ctx context.Context, userID, teamID string) (bool, error)
}
