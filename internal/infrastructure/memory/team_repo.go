package memory

import (
	"context"

	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

var _ repository.TeamRepository = (*TeamRepo)(nil)

// TeamRepo implementación en memoria de repository.TeamRepository.
type TeamRepo struct {
	db access
}

func (r *TeamRepo) Create(_ context.Context, t *entity.Team) error {
	return r.db.write(func(st *state) error {
		if _, exists := st.teams[t.ID]; exists {
			return domain.ErrConflict
		}
		if _, ok := st.users[t.OwnerID]; !ok {
			return domain.ErrUserNotFound
		}
		st.teams[t.ID] = *t
		st.teamUsers[pair{t.OwnerID, t.ID}] = entity.TeamRoleOwner
		return nil
	})
}

func (r *TeamRepo) GetByID(_ context.Context, id string) (*entity.Team, error) {
	var out *entity.Team
	err := r.db.read(func(st *state) error {
		if t, ok := st.teams[id]; ok {
			clone := t
			out = &clone
		}
		return nil
	})
	return out, err
}

func (r *TeamRepo) OwnsTeam(_ context.Context, userID, teamID string) (bool, error) {
	owns := false
	err := r.db.read(func(st *state) error {
		t, ok := st.teams[teamID]
		owns = ok && t.OwnerID == userID
		return nil
	})
	return owns, err
}

func (r *TeamRepo) BelongsToTeam(_ context.Context, userID, teamID string) (bool, error) {
	belongs := false
	err := r.db.read(func(st *state) error {
		_, belongs = st.teamUsers[pair{userID, teamID}]
		return nil
	})
	return belongs, err
}
