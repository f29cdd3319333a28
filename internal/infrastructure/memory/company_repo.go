package memory

import (
	"context"
	"strings"

	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementación en memoria de repository.CompanyRepository.
type CompanyRepo struct {
	db access
}

// Create valida la unicidad de RUC y email como lo hacen los índices únicos de PostgreSQL.
func (r *CompanyRepo) Create(_ context.Context, c *entity.Company) error {
	return r.db.write(func(st *state) error {
		if _, exists := st.companies[c.ID]; exists {
			return domain.ErrConflict
		}
		var vErr domain.ValidationError
		for _, other := range st.companies {
			if other.RUC == c.RUC {
				vErr.Add("ruc", entity.MsgRUCTaken)
			}
			if strings.EqualFold(other.Email, c.Email) {
				vErr.Add("email", entity.MsgEmailTaken)
			}
		}
		if err := vErr.OrNil(); err != nil {
			return err
		}
		st.companies[c.ID] = c.Clone()
		return nil
	})
}

func (r *CompanyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	var out *entity.Company
	err := r.db.read(func(st *state) error {
		if c, ok := st.companies[id]; ok {
			clone := c.Clone()
			out = &clone
		}
		return nil
	})
	return out, err
}

func (r *CompanyRepo) GetByRUC(_ context.Context, ruc string) (*entity.Company, error) {
	var out *entity.Company
	err := r.db.read(func(st *state) error {
		for _, c := range st.companies {
			if c.RUC == ruc {
				clone := c.Clone()
				out = &clone
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *CompanyRepo) Update(_ context.Context, c *entity.Company) error {
	return r.db.write(func(st *state) error {
		if _, ok := st.companies[c.ID]; !ok {
			return domain.ErrNotFound
		}
		st.companies[c.ID] = c.Clone()
		return nil
	})
}
