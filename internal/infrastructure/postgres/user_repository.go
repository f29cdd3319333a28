package postgres

import (
	"context"

	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userColumns = `id, name, email, password_hash, status, current_team_id, current_company_id, created_at, updated_at`

// Create persiste un usuario. Email duplicado (sin distinguir mayúsculas) devuelve domain.ErrEmailAlreadyExists.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	_, err := r.q.Exec(ctx, `INSERT INTO users (`+userColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		u.ID, u.Name, u.Email, u.PasswordHash, u.Status, u.CurrentTeamID, u.CurrentCompanyID, u.CreatedAt, u.UpdatedAt,
	)
	return mapPostgresError("insert user", err)
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email)
}

// LockByID lee el usuario con SELECT ... FOR UPDATE; solo tiene efecto dentro de una transacción.
func (r *UserRepo) LockByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1 FOR UPDATE`, id)
}

func (r *UserRepo) SetCurrentCompany(ctx context.Context, userID string, companyID *string) error {
	return r.setColumn(ctx, "current_company_id", userID, companyID)
}

func (r *UserRepo) SetCurrentTeam(ctx context.Context, userID string, teamID *string) error {
	return r.setColumn(ctx, "current_team_id", userID, teamID)
}

// setColumn column siempre es una constante interna.
func (r *UserRepo) setColumn(ctx context.Context, column, userID string, value *string) error {
	tag, err := r.q.Exec(ctx, `UPDATE users SET `+column+` = $2, updated_at = now() WHERE id = $1`, userID, value)
	if err != nil {
		return mapPostgresError("update user "+column, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepo) getOne(ctx context.Context, query string, arg any) (*entity.User, error) {
	var u entity.User
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Status, &u.CurrentTeamID, &u.CurrentCompanyID, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, mapPostgresError("get user", err)
	}
	return &u, nil
}
