package memory

import (
	"context"
	"strings"

	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación en memoria de repository.UserRepository.
type UserRepo struct {
	db access
}

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	return r.db.write(func(st *state) error {
		for _, other := range st.users {
			if strings.EqualFold(other.Email, u.Email) {
				return domain.ErrEmailAlreadyExists
			}
		}
		if _, exists := st.users[u.ID]; exists {
			return domain.ErrConflict
		}
		st.users[u.ID] = u.Clone()
		return nil
	})
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	var out *entity.User
	err := r.db.read(func(st *state) error {
		if u, ok := st.users[id]; ok {
			clone := u.Clone()
			out = &clone
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	var out *entity.User
	err := r.db.read(func(st *state) error {
		for _, u := range st.users {
			if strings.EqualFold(u.Email, email) {
				clone := u.Clone()
				out = &clone
				return nil
			}
		}
		return nil
	})
	return out, err
}

// LockByID dentro de Store.Run el mutex del store ya serializa; fuera de una transacción
// equivale a GetByID.
func (r *UserRepo) LockByID(ctx context.Context, id string) (*entity.User, error) {
	return r.GetByID(ctx, id)
}

func (r *UserRepo) SetCurrentCompany(_ context.Context, userID string, companyID *string) error {
	return r.db.write(func(st *state) error {
		u, ok := st.users[userID]
		if !ok {
			return domain.ErrUserNotFound
		}
		u.CurrentCompanyID = copyString(companyID)
		st.users[userID] = u
		return nil
	})
}

func (r *UserRepo) SetCurrentTeam(_ context.Context, userID string, teamID *string) error {
	return r.db.write(func(st *state) error {
		u, ok := st.users[userID]
		if !ok {
			return domain.ErrUserNotFound
		}
		u.CurrentTeamID = copyString(teamID)
		st.users[userID] = u
		return nil
	})
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
