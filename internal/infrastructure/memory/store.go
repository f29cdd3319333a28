// Package memory implementa los puertos de persistencia en memoria.
// Se usa en tests y con STORE_DRIVER=memory; los datos se pierden al reiniciar.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

type pair struct {
	userID string
	ref    string // company_id o team_id
}

type state struct {
	companies   map[string]entity.Company
	memberships map[pair]entity.Membership
	users       map[string]entity.User
	teams       map[string]entity.Team
	teamUsers   map[pair]string // rol en el equipo
}

func newState() *state {
	return &state{
		companies:   make(map[string]entity.Company),
		memberships: make(map[pair]entity.Membership),
		users:       make(map[string]entity.User),
		teams:       make(map[string]entity.Team),
		teamUsers:   make(map[pair]string),
	}
}

func (s *state) clone() *state {
	out := newState()
	for k, v := range s.companies {
		out.companies[k] = v.Clone()
	}
	for k, v := range s.memberships {
		out.memberships[k] = v.Clone()
	}
	for k, v := range s.users {
		out.users[k] = v.Clone()
	}
	for k, v := range s.teams {
		out.teams[k] = v
	}
	for k, v := range s.teamUsers {
		out.teamUsers[k] = v
	}
	return out
}

// check equivale a las restricciones diferidas de la base: como máximo una membresía
// activa predeterminada por usuario.
func (s *state) check() error {
	defaults := make(map[string]int)
	for _, m := range s.memberships {
		if m.IsActive && m.IsDefault {
			defaults[m.UserID]++
			if defaults[m.UserID] > 1 {
				return fmt.Errorf("%w: el usuario %s tiene más de una empresa predeterminada", domain.ErrConflict, m.UserID)
			}
		}
	}
	return nil
}

// access abstrae si los repositorios trabajan sobre el Store (bloqueando por operación)
// o sobre el estado de trabajo de una transacción en curso.
type access interface {
	read(fn func(st *state) error) error
	write(fn func(st *state) error) error
}

// Store base de datos en memoria. Run serializa las transacciones con un único mutex.
type Store struct {
	mu sync.RWMutex
	st *state
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

func (s *Store) read(fn func(st *state) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.st)
}

// write aplica fn sobre una copia y solo la publica si las restricciones se cumplen.
func (s *Store) write(fn func(st *state) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	work := s.st.clone()
	if err := fn(work); err != nil {
		return err
	}
	if err := work.check(); err != nil {
		return err
	}
	s.st = work
	return nil
}

// Repositories repositorios sin transacción (cada operación es atómica por sí sola).
func (s *Store) Repositories() repository.Repositories {
	return reposFor(s)
}

// Run ejecuta fn con repositorios atados a una transacción. Si fn falla, nada se publica.
func (s *Store) Run(ctx context.Context, fn func(repos repository.Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.write(func(st *state) error {
		return fn(reposFor(txAccess{st: st}))
	})
}

type txAccess struct {
	st *state
}

func (t txAccess) read(fn func(st *state) error) error  { return fn(t.st) }
func (t txAccess) write(fn func(st *state) error) error { return fn(t.st) }

func reposFor(db access) repository.Repositories {
	return repository.Repositories{
		Companies:   &CompanyRepo{db: db},
		Memberships: &MembershipRepo{db: db},
		Users:       &UserRepo{db: db},
		Teams:       &TeamRepo{db: db},
	}
}
