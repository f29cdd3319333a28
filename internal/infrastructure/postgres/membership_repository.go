package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

var _ repository.MembershipRepository = (*MembershipRepo)(nil)

// MembershipRepo implementación de MembershipRepository sobre la tabla company_users.
type MembershipRepo struct {
	q Querier
}

// NewMembershipRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMembershipRepository(q Querier) *MembershipRepo {
	return &MembershipRepo{q: q}
}

const membershipColumns = `
	id, company_id, user_id, is_active, is_default, is_owner, permissions,
	invited_at, joined_at, last_accessed_at, created_at, updated_at`

// Create inserta la membresía. Un par usuario-empresa repetido devuelve domain.ErrConflict.
func (r *MembershipRepo) Create(ctx context.Context, m *entity.Membership) error {
	if err := m.Validate(); err != nil {
		return err
	}
	perms, err := jsonColumn(m.Permissions)
	if err != nil {
		return err
	}
	query := `INSERT INTO company_users (` + membershipColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err = r.q.Exec(ctx, query,
		m.ID, m.CompanyID, m.UserID, m.IsActive, m.IsDefault, m.IsOwner, perms,
		m.InvitedAt, m.JoinedAt, m.LastAccessedAt, m.CreatedAt, m.UpdatedAt,
	)
	return mapPostgresError("insert membership", err)
}

// Get obtiene la membresía del par; (nil, nil) si no existe.
func (r *MembershipRepo) Get(ctx context.Context, userID, companyID string) (*entity.Membership, error) {
	query := `SELECT ` + membershipColumns + ` FROM company_users WHERE user_id = $1 AND company_id = $2`
	return r.getOne(ctx, query, userID, companyID)
}

// Update reescribe flags, permisos y marcas de tiempo de la membresía.
func (r *MembershipRepo) Update(ctx context.Context, m *entity.Membership) error {
	if err := m.Validate(); err != nil {
		return err
	}
	perms, err := jsonColumn(m.Permissions)
	if err != nil {
		return err
	}
	query := `
		UPDATE company_users SET
			is_active = $3, is_default = $4, is_owner = $5, permissions = $6,
			invited_at = $7, joined_at = $8, last_accessed_at = $9, updated_at = $10
		WHERE user_id = $1 AND company_id = $2`
	tag, err := r.q.Exec(ctx, query,
		m.UserID, m.CompanyID, m.IsActive, m.IsDefault, m.IsOwner, perms,
		m.InvitedAt, m.JoinedAt, m.LastAccessedAt, m.UpdatedAt,
	)
	if err != nil {
		return mapPostgresError("update membership", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update membership: %w", domain.ErrNotFound)
	}
	return nil
}

// GetDefault membresía activa predeterminada del usuario; (nil, nil) si no tiene.
func (r *MembershipRepo) GetDefault(ctx context.Context, userID string) (*entity.Membership, error) {
	query := `SELECT ` + membershipColumns + ` FROM company_users
		WHERE user_id = $1 AND is_active AND is_default`
	return r.getOne(ctx, query, userID)
}

func (r *MembershipRepo) CountActiveByUser(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT count(*) FROM company_users WHERE user_id = $1 AND is_active`, userID).Scan(&n)
	if err != nil {
		return 0, mapPostgresError("count memberships", err)
	}
	return n, nil
}

// CountActiveOwners bloquea las filas de propietarios (FOR UPDATE no admite agregados,
// por eso se cuentan las filas devueltas).
func (r *MembershipRepo) CountActiveOwners(ctx context.Context, companyID string) (int, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id FROM company_users
		WHERE company_id = $1 AND is_active AND is_owner
		FOR UPDATE`, companyID)
	if err != nil {
		return 0, mapPostgresError("count owners", err)
	}
	defer rows.Close()
	n := 0
	for rows.Next() {
		n++
	}
	if err := rows.Err(); err != nil {
		return 0, mapPostgresError("count owners", err)
	}
	return n, nil
}

// SetDefault un solo UPDATE acotado al usuario: la fila destino queda en true y la anterior en false.
// La subconsulta exige que la membresía destino esté activa; si no, no se toca ninguna fila.
func (r *MembershipRepo) SetDefault(ctx context.Context, userID, companyID string) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE company_users
		SET is_default = (company_id = $2), updated_at = now()
		WHERE user_id = $1
		  AND is_active
		  AND (is_default OR company_id = $2)
		  AND EXISTS (
		      SELECT 1 FROM company_users t
		      WHERE t.user_id = $1 AND t.company_id = $2 AND t.is_active
		  )`, userID, companyID)
	if err != nil {
		return mapPostgresError("set default company", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotAMember
	}
	return nil
}

// OldestActive membresía activa más antigua por joined_at (desempate por company_id).
func (r *MembershipRepo) OldestActive(ctx context.Context, userID, exceptCompanyID string) (*entity.Membership, error) {
	query := `SELECT ` + membershipColumns + ` FROM company_users
		WHERE user_id = $1 AND is_active AND ($2::text = '' OR company_id::text <> $2::text)
		ORDER BY joined_at ASC NULLS LAST, company_id ASC
		LIMIT 1`
	return r.getOne(ctx, query, userID, exceptCompanyID)
}

func (r *MembershipRepo) Touch(ctx context.Context, userID, companyID string, at time.Time) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE company_users SET last_accessed_at = $3
		WHERE user_id = $1 AND company_id = $2 AND is_active`, userID, companyID, at)
	if err != nil {
		return mapPostgresError("touch membership", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotAMember
	}
	return nil
}

// ListActiveCompanies una sola lectura con join a companies.
func (r *MembershipRepo) ListActiveCompanies(ctx context.Context, userID string) ([]entity.MembershipCompany, error) {
	rows, err := r.q.Query(ctx, `
		SELECT c.id, c.ruc, c.name, cu.is_owner, cu.is_default
		FROM company_users cu
		JOIN companies c ON c.id = cu.company_id
		WHERE cu.user_id = $1 AND cu.is_active
		ORDER BY c.name, c.id`, userID)
	if err != nil {
		return nil, mapPostgresError("list active companies", err)
	}
	defer rows.Close()
	out := make([]entity.MembershipCompany, 0)
	for rows.Next() {
		var mc entity.MembershipCompany
		if err := rows.Scan(&mc.CompanyID, &mc.RUC, &mc.Name, &mc.IsOwner, &mc.IsDefault); err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		out = append(out, mc)
	}
	if err := rows.Err(); err != nil {
		return nil, mapPostgresError("list active companies", err)
	}
	return out, nil
}

func (r *MembershipRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Membership, error) {
	m, err := scanMembership(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, mapPostgresError("get membership", err)
	}
	return m, nil
}

func scanMembership(row pgx.Row) (*entity.Membership, error) {
	var m entity.Membership
	var perms []byte
	err := row.Scan(
		&m.ID, &m.CompanyID, &m.UserID, &m.IsActive, &m.IsDefault, &m.IsOwner, &perms,
		&m.InvitedAt, &m.JoinedAt, &m.LastAccessedAt, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(perms) > 0 {
		if err := json.Unmarshal(perms, &m.Permissions); err != nil {
			return nil, fmt.Errorf("decodificar permisos de %s: %w", m.ID, err)
		}
	}
	return &m, nil
}
