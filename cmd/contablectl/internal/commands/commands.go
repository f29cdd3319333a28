package commands

import (
	"context"
	"io"
	"os"

	"github.com/jhoicas/Contable-api/internal/infrastructure/backend"
	"github.com/jhoicas/Contable-api/pkg/config"
	"github.com/jhoicas/Contable-api/pkg/logger"
)

// Globals opciones compartidas por todos los comandos.
type Globals struct {
	Debug   bool
	Version string

	// Out destino de la salida; nil escribe en stdout.
	Out io.Writer
	// Backend almacenamiento ya abierto; nil lo abre desde la configuración del entorno.
	Backend *backend.Backend
}

func (g *Globals) out() io.Writer {
	if g.Out == nil {
		return os.Stdout
	}
	return g.Out
}

func (g *Globals) logger() *logger.Logger {
	level := "info"
	if g.Debug {
		level = "debug"
	}
	return logger.NewWithWriter(os.Stderr, logger.Config{Env: "development", Level: level, AppName: "contablectl"})
}

// open devuelve el backend y la función de cierre.
func (g *Globals) open(ctx context.Context, log *logger.Logger) (*backend.Backend, func(), error) {
	if g.Backend != nil {
		return g.Backend, func() {}, nil
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	// El CLI aplica migraciones solo con el comando migrate.
	cfg.DB.AutoMigrate = false
	b, err := backend.Open(ctx, cfg.DB, log)
	if err != nil {
		return nil, nil, err
	}
	return b, b.Close, nil
}
