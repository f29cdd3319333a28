package commands

import (
	"context"
	"fmt"
)

type MigrateCmd struct{}

func (m *MigrateCmd) Run(ctx context.Context, globals *Globals) error {
	log := globals.logger()
	b, closeFn, err := globals.open(ctx, log)
	if err != nil {
		return err
	}
	defer closeFn()

	applied, err := b.Migrate(ctx, log)
	if err != nil {
		return fmt.Errorf("migrar: %w", err)
	}
	fmt.Fprintf(globals.out(), "migraciones aplicadas: %d\n", applied)
	return nil
}
