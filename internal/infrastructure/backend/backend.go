// Package backend elige la persistencia según STORE_DRIVER y expone repositorios y transacciones.
package backend

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Contable-api/internal/domain/repository"
	"github.com/jhoicas/Contable-api/internal/infrastructure/memory"
	"github.com/jhoicas/Contable-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Contable-api/pkg/config"
	"github.com/jhoicas/Contable-api/pkg/logger"
)

// ErrNoDatabase operación que requiere PostgreSQL sobre el driver en memoria.
var ErrNoDatabase = errors.New("el driver de almacenamiento no usa base de datos")

// TxRunner lo satisfacen memory.Store y postgres.TxRunner.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.Repositories) error) error
}

// Backend repositorios fuera de transacción, runner transaccional y el pool si lo hay.
type Backend struct {
	Driver string
	Repos  repository.Repositories
	Tx     TxRunner
	Pool   *pgxpool.Pool
}

// Open conecta con el driver configurado. Con postgres y DB_AUTO_MIGRATE aplica las migraciones.
func Open(ctx context.Context, cfg config.DBConfig, log *logger.Logger) (*Backend, error) {
	switch cfg.Driver {
	case config.StoreDriverMemory:
		log.Warn().Msg("usando almacenamiento en memoria; los datos se pierden al reiniciar")
		return Memory(memory.NewStore()), nil
	case config.StoreDriverPostgres:
		pool, err := postgres.Open(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		return &Backend{
			Driver: config.StoreDriverPostgres,
			Repos:  postgres.Repositories(pool),
			Tx:     postgres.NewTxRunner(pool),
			Pool:   pool,
		}, nil
	default:
		return nil, fmt.Errorf("driver de almacenamiento desconocido %q", cfg.Driver)
	}
}

// Memory envuelve un store en memoria ya creado (tests, demos).
func Memory(st *memory.Store) *Backend {
	return &Backend{Driver: config.StoreDriverMemory, Repos: st.Repositories(), Tx: st}
}

// Migrate aplica migraciones pendientes; ErrNoDatabase con el driver en memoria.
func (b *Backend) Migrate(ctx context.Context, log *logger.Logger) (int, error) {
	if b.Pool == nil {
		return 0, ErrNoDatabase
	}
	return postgres.Migrate(ctx, b.Pool, log)
}

func (b *Backend) Close() {
	if b.Pool != nil {
		b.Pool.Close()
	}
}
