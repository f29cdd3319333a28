package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Las restricciones diferidas se evalúan en el Commit, por eso su error también se traduce.
func (r *TxRunner) Run(ctx context.Context, fn func(repos repository.Repositories) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(Repositories(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return mapPostgresError("commit transaction", err)
	}
	return nil
}

// Repositories repositorios atados a q (pool para lecturas sueltas, tx dentro de Run).
func Repositories(q Querier) repository.Repositories {
	return repository.Repositories{
		Companies:   NewCompanyRepository(q),
		Memberships: NewMembershipRepository(q),
		Users:       NewUserRepository(q),
		Teams:       NewTeamRepository(q),
	}
}
