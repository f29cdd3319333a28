package commands

import (
	"context"
	"fmt"

	"github.com/jhoicas/Contable-api/internal/application/membership"
)

type SetDefaultCmd struct {
	User    string `help:"ID del usuario" required:""`
	Company string `help:"ID de la empresa" required:""`
}

func (s *SetDefaultCmd) Run(ctx context.Context, globals *Globals) error {
	log := globals.logger()
	b, closeFn, err := globals.open(ctx, log)
	if err != nil {
		return err
	}
	defer closeFn()

	manager := membership.NewManager(b.Tx, b.Repos.Memberships, log)
	if err := manager.SetDefaultCompany(ctx, s.User, s.Company); err != nil {
		return fmt.Errorf("empresa predeterminada: %w", err)
	}
	fmt.Fprintf(globals.out(), "empresa %s es ahora la predeterminada de %s\n", s.Company, s.User)
	return nil
}
