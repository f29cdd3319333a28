package postgres

import (
	"context"

	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

var _ repository.TeamRepository = (*TeamRepo)(nil)

// TeamRepo implementación mínima de TeamRepository (teams + team_users).
type TeamRepo struct {
	q Querier
}

// NewTeamRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTeamRepository(q Querier) *TeamRepo {
	return &TeamRepo{q: q}
}

// Create inserta el equipo y a su dueño en team_users. Debe ejecutarse dentro de una transacción.
func (r *TeamRepo) Create(ctx context.Context, t *entity.Team) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO teams (id, name, description, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		t.ID, t.Name, t.Description, t.OwnerID, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return mapPostgresError("insert team", err)
	}
	_, err = r.q.Exec(ctx, `
		INSERT INTO team_users (team_id, user_id, role, created_at) VALUES ($1, $2, $3, $4)`,
		t.ID, t.OwnerID, entity.TeamRoleOwner, t.CreatedAt)
	return mapPostgresError("insert team owner", err)
}

func (r *TeamRepo) GetByID(ctx context.Context, id string) (*entity.Team, error) {
	var t entity.Team
	err := r.q.QueryRow(ctx, `
		SELECT id, name, description, owner_id, created_at, updated_at FROM teams WHERE id = $1`, id,
	).Scan(&t.ID, &t.Name, &t.Description, &t.OwnerID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, mapPostgresError("get team", err)
	}
	return &t, nil
}

func (r *TeamRepo) OwnsTeam(ctx context.Context, userID, teamID string) (bool, error) {
	var owns bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM teams WHERE id = $1 AND owner_id = $2)`, teamID, userID).Scan(&owns)
	if err != nil {
		return false, mapPostgresError("owns team", err)
	}
	return owns, nil
}

func (r *TeamRepo) BelongsToTeam(ctx context.Context, userID, teamID string) (bool, error) {
	var belongs bool
	err := r.q.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM team_users WHERE team_id = $1 AND user_id = $2)
		    OR EXISTS (SELECT 1 FROM teams WHERE id = $1 AND owner_id = $2)`, teamID, userID).Scan(&belongs)
	if err != nil {
		return false, mapPostgresError("belongs to team", err)
	}
	return belongs, nil
}
