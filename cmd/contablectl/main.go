package main

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/jhoicas/Contable-api/cmd/contablectl/internal/commands"
)

var (
	version = "dev"
	cli     struct {
		Migrate    commands.MigrateCmd    `cmd:"" help:"Aplicar migraciones pendientes"`
		Companies  commands.CompaniesCmd  `cmd:"" help:"Listar las empresas activas de un usuario"`
		SetDefault commands.SetDefaultCmd `cmd:"" name:"set-default" help:"Marcar la empresa predeterminada de un usuario"`
		Debug      bool                   `help:"Logs en nivel debug."`
		Version    kong.VersionFlag
	}
)

func main() {
	ctx := context.Background()
	cmd := kong.Parse(&cli,
		kong.Name("contablectl"),
		kong.Description("Administración de Contable API."),
		kong.Vars{
			"version": version,
		},
		kong.BindTo(ctx, (*context.Context)(nil)))
	err := cmd.Run(&commands.Globals{Debug: cli.Debug, Version: version})
	cmd.FatalIfErrorf(err)
}
