package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
	"github.com/jhoicas/Contable-api/pkg/logger"
)

// TeamUseCase alta de equipos.
type TeamUseCase struct {
	tx  TxRunner
	log *logger.Logger
}

// NewTeamUseCase construye el caso de uso.
func NewTeamUseCase(tx TxRunner, log *logger.Logger) *TeamUseCase {
	return &TeamUseCase{tx: tx, log: log}
}

// Create crea el equipo con el usuario como dueño y lo deja como equipo actual, en una transacción.
func (uc *TeamUseCase) Create(ctx context.Context, userID string, in dto.CreateTeamRequest) (*dto.TeamResponse, error) {
	now := time.Now().UTC()
	team := &entity.Team{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		OwnerID:     userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		user, err := repos.Users.LockByID(ctx, userID)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.ErrUserNotFound
		}
		if err := repos.Teams.Create(ctx, team); err != nil {
			return err
		}
		id := team.ID
		return repos.Users.SetCurrentTeam(ctx, userID, &id)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("team_id", team.ID).Str("user_id", userID).Msg("team created")
	return dto.ToTeamResponse(team), nil
}
