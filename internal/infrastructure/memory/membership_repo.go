package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

var _ repository.MembershipRepository = (*MembershipRepo)(nil)

// MembershipRepo implementación en memoria de repository.MembershipRepository.
type MembershipRepo struct {
	db access
}

// Create aplica las mismas reglas de fila que los CHECK de company_users.
func (r *MembershipRepo) Create(_ context.Context, m *entity.Membership) error {
	if err := m.Validate(); err != nil {
		return err
	}
	return r.db.write(func(st *state) error {
		k := pair{m.UserID, m.CompanyID}
		if _, exists := st.memberships[k]; exists {
			return domain.ErrConflict
		}
		if _, ok := st.companies[m.CompanyID]; !ok {
			return domain.ErrNotFound
		}
		if _, ok := st.users[m.UserID]; !ok {
			return domain.ErrUserNotFound
		}
		st.memberships[k] = m.Clone()
		return nil
	})
}

func (r *MembershipRepo) Get(_ context.Context, userID, companyID string) (*entity.Membership, error) {
	var out *entity.Membership
	err := r.db.read(func(st *state) error {
		if m, ok := st.memberships[pair{userID, companyID}]; ok {
			clone := m.Clone()
			out = &clone
		}
		return nil
	})
	return out, err
}

func (r *MembershipRepo) Update(_ context.Context, m *entity.Membership) error {
	if err := m.Validate(); err != nil {
		return err
	}
	return r.db.write(func(st *state) error {
		k := pair{m.UserID, m.CompanyID}
		if _, ok := st.memberships[k]; !ok {
			return domain.ErrNotFound
		}
		st.memberships[k] = m.Clone()
		return nil
	})
}

func (r *MembershipRepo) GetDefault(_ context.Context, userID string) (*entity.Membership, error) {
	var out *entity.Membership
	err := r.db.read(func(st *state) error {
		for _, m := range st.memberships {
			if m.UserID == userID && m.IsActive && m.IsDefault {
				clone := m.Clone()
				out = &clone
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *MembershipRepo) CountActiveByUser(_ context.Context, userID string) (int, error) {
	n := 0
	err := r.db.read(func(st *state) error {
		for _, m := range st.memberships {
			if m.UserID == userID && m.IsActive {
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *MembershipRepo) CountActiveOwners(_ context.Context, companyID string) (int, error) {
	n := 0
	err := r.db.read(func(st *state) error {
		for _, m := range st.memberships {
			if m.CompanyID == companyID && m.IsActive && m.IsOwner {
				n++
			}
		}
		return nil
	})
	return n, err
}

// SetDefault recorre solo las membresías activas del usuario, igual que el UPDATE de PostgreSQL.
func (r *MembershipRepo) SetDefault(_ context.Context, userID, companyID string) error {
	return r.db.write(func(st *state) error {
		target, ok := st.memberships[pair{userID, companyID}]
		if !ok || !target.IsActive {
			return domain.ErrNotAMember
		}
		now := time.Now().UTC()
		for k, m := range st.memberships {
			if m.UserID != userID || !m.IsActive {
				continue
			}
			want := m.CompanyID == companyID
			if m.IsDefault != want {
				m.IsDefault = want
				m.UpdatedAt = now
				st.memberships[k] = m
			}
		}
		return nil
	})
}

func (r *MembershipRepo) OldestActive(_ context.Context, userID, exceptCompanyID string) (*entity.Membership, error) {
	var out *entity.Membership
	err := r.db.read(func(st *state) error {
		var candidates []entity.Membership
		for _, m := range st.memberships {
			if m.UserID == userID && m.IsActive && m.CompanyID != exceptCompanyID {
				candidates = append(candidates, m)
			}
		}
		if len(candidates) == 0 {
			return nil
		}
		sort.Slice(candidates, func(i, j int) bool {
			a, b := joinedAt(candidates[i]), joinedAt(candidates[j])
			if !a.Equal(b) {
				return a.Before(b)
			}
			return candidates[i].CompanyID < candidates[j].CompanyID
		})
		clone := candidates[0].Clone()
		out = &clone
		return nil
	})
	return out, err
}

func (r *MembershipRepo) Touch(_ context.Context, userID, companyID string, at time.Time) error {
	return r.db.write(func(st *state) error {
		k := pair{userID, companyID}
		m, ok := st.memberships[k]
		if !ok || !m.IsActive {
			return domain.ErrNotAMember
		}
		t := at
		m.LastAccessedAt = &t
		st.memberships[k] = m
		return nil
	})
}

func (r *MembershipRepo) ListActiveCompanies(_ context.Context, userID string) ([]entity.MembershipCompany, error) {
	out := make([]entity.MembershipCompany, 0)
	err := r.db.read(func(st *state) error {
		for _, m := range st.memberships {
			if m.UserID != userID || !m.IsActive {
				continue
			}
			c, ok := st.companies[m.CompanyID]
			if !ok {
				continue
			}
			out = append(out, entity.MembershipCompany{
				CompanyID: c.ID,
				RUC:       c.RUC,
				Name:      c.Name,
				IsOwner:   m.IsOwner,
				IsDefault: m.IsDefault,
			})
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].CompanyID < out[j].CompanyID })
	return out, err
}

func joinedAt(m entity.Membership) time.Time {
	if m.JoinedAt == nil {
		return m.CreatedAt
	}
	return *m.JoinedAt
}
