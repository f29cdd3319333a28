package commands

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/jhoicas/Contable-api/internal/application/membership"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
)

type CompaniesCmd struct {
	User string `help:"ID del usuario" required:""`
}

func (c *CompaniesCmd) Run(ctx context.Context, globals *Globals) error {
	log := globals.logger()
	b, closeFn, err := globals.open(ctx, log)
	if err != nil {
		return err
	}
	defer closeFn()

	dir := membership.NewDirectory(b.Repos.Memberships, b.Repos.Users)
	res, err := dir.ListActiveCompanies(ctx, entity.TenantContext{UserID: c.User})
	if err != nil {
		return fmt.Errorf("listar empresas: %w", err)
	}

	w := tabwriter.NewWriter(globals.out(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tRUC\tNOMBRE\tACTUAL\tPROPIETARIO\tPREDETERMINADA")
	for _, s := range res.Data {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", s.ID, s.RUC, s.Name, yesNo(s.IsCurrent), yesNo(s.IsOwner), yesNo(s.IsDefault))
	}
	return w.Flush()
}

func yesNo(v bool) string {
	if v {
		return "sí"
	}
	return "no"
}
