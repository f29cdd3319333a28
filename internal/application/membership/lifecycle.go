package membership

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

// Invite crea (o reabre, si estaba inactiva) la invitación de un usuario existente.
// Solo un propietario activo puede invitar.
func (m *Manager) Invite(ctx context.Context, inviterID, companyID, inviteeEmail string, perms entity.MembershipPermissions) (*entity.Membership, error) {
	if inviterID == "" || companyID == "" || inviteeEmail == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := perms.Validate(); err != nil {
		return nil, err
	}
	now := m.now().UTC()
	var out entity.Membership
	err := m.tx.Run(ctx, func(repos repository.Repositories) error {
		if err := requireOwner(ctx, repos, inviterID, companyID); err != nil {
			return err
		}
		invitee, err := repos.Users.GetByEmail(ctx, inviteeEmail)
		if err != nil {
			return err
		}
		if invitee == nil {
			return domain.ErrUserNotFound
		}
		existing, err := repos.Memberships.Get(ctx, invitee.ID, companyID)
		if err != nil {
			return err
		}
		if existing == nil {
			invited := now
			mem := &entity.Membership{
				ID:          uuid.New().String(),
				CompanyID:   companyID,
				UserID:      invitee.ID,
				Permissions: perms.Clone(),
				InvitedAt:   &invited,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if err := repos.Memberships.Create(ctx, mem); err != nil {
				return err
			}
			out = mem.Clone()
			return nil
		}
		if err := existing.Reinvite(now, perms.Clone()); err != nil {
			return rule(err)
		}
		if err := repos.Memberships.Update(ctx, existing); err != nil {
			return err
		}
		out = existing.Clone()
		return nil
	})
	if err != nil {
		return nil, classify(err)
	}
	m.log.Info().Str("company_id", companyID).Str("user_id", out.UserID).Str("invited_by", inviterID).Msg("member invited")
	return &out, nil
}

// Accept acepta una invitación pendiente. La empresa pasa a ser la predeterminada si el
// usuario no tiene otra, y la actual si no había ninguna seleccionada.
func (m *Manager) Accept(ctx context.Context, userID, companyID string) (*entity.Membership, error) {
	if userID == "" || companyID == "" {
		return nil, domain.ErrInvalidInput
	}
	now := m.now().UTC()
	var out entity.Membership
	err := m.tx.Run(ctx, func(repos repository.Repositories) error {
		user, err := repos.Users.LockByID(ctx, userID)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.ErrUserNotFound
		}
		mem, err := repos.Memberships.Get(ctx, userID, companyID)
		if err != nil {
			return err
		}
		if mem == nil {
			return domain.ErrNotAMember
		}
		if err := mem.Accept(now); err != nil {
			return rule(err)
		}
		if err := repos.Memberships.Update(ctx, mem); err != nil {
			return err
		}
		def, err := repos.Memberships.GetDefault(ctx, userID)
		if err != nil {
			return err
		}
		if def == nil {
			if err := repos.Memberships.SetDefault(ctx, userID, companyID); err != nil {
				return err
			}
			mem.IsDefault = true
		}
		if user.CurrentCompanyID == nil {
			id := companyID
			if err := repos.Users.SetCurrentCompany(ctx, userID, &id); err != nil {
				return err
			}
		}
		out = mem.Clone()
		return nil
	})
	if err != nil {
		return nil, classify(err)
	}
	m.log.Info().Str("company_id", companyID).Str("user_id", userID).Bool("is_default", out.IsDefault).Msg("invitation accepted")
	return &out, nil
}

// Deactivate desactiva la membresía de targetUserID. Puede hacerlo un propietario o el propio usuario.
// El último propietario activo no puede retirarse (domain.ErrLastOwner). Si era la predeterminada,
// se promueve la membresía activa más antigua del usuario.
func (m *Manager) Deactivate(ctx context.Context, actorID, companyID, targetUserID string) error {
	if actorID == "" || companyID == "" || targetUserID == "" {
		return domain.ErrInvalidInput
	}
	now := m.now().UTC()
	var promoted string
	err := m.tx.Run(ctx, func(repos repository.Repositories) error {
		if actorID != targetUserID {
			if err := requireOwner(ctx, repos, actorID, companyID); err != nil {
				return err
			}
		}
		user, err := repos.Users.LockByID(ctx, targetUserID)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.ErrUserNotFound
		}
		target, err := repos.Memberships.Get(ctx, targetUserID, companyID)
		if err != nil {
			return err
		}
		if target == nil || !target.IsActive {
			return domain.ErrNotAMember
		}
		if target.IsOwner {
			owners, err := repos.Memberships.CountActiveOwners(ctx, companyID)
			if err != nil {
				return err
			}
			if owners <= 1 {
				return domain.ErrLastOwner
			}
		}
		wasDefault := target.IsDefault
		if err := target.Deactivate(now); err != nil {
			return rule(err)
		}
		if err := repos.Memberships.Update(ctx, target); err != nil {
			return err
		}
		if wasDefault {
			next, err := repos.Memberships.OldestActive(ctx, targetUserID, companyID)
			if err != nil {
				return err
			}
			if next != nil {
				if err := repos.Memberships.SetDefault(ctx, targetUserID, next.CompanyID); err != nil {
					return err
				}
				promoted = next.CompanyID
			}
		}
		if user.CurrentCompanyID != nil && *user.CurrentCompanyID == companyID {
			def, err := repos.Memberships.GetDefault(ctx, targetUserID)
			if err != nil {
				return err
			}
			var current *string
			if def != nil {
				id := def.CompanyID
				current = &id
			}
			if err := repos.Users.SetCurrentCompany(ctx, targetUserID, current); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return classify(err)
	}
	m.log.Info().
		Str("company_id", companyID).
		Str("user_id", targetUserID).
		Str("actor_id", actorID).
		Str("promoted_default", promoted).
		Msg("membership deactivated")
	return nil
}

// TransferOwnership otorga la propiedad a newOwnerID (miembro activo). Si keepPrevious es falso
// el actor deja de ser propietario en la misma transacción.
func (m *Manager) TransferOwnership(ctx context.Context, actorID, companyID, newOwnerID string, keepPrevious bool) error {
	if actorID == "" || companyID == "" || newOwnerID == "" || actorID == newOwnerID {
		return domain.ErrInvalidInput
	}
	now := m.now().UTC()
	err := m.tx.Run(ctx, func(repos repository.Repositories) error {
		actor, err := repos.Memberships.Get(ctx, actorID, companyID)
		if err != nil {
			return err
		}
		if actor == nil || !actor.IsActive || !actor.IsOwner {
			return domain.ErrForbidden
		}
		target, err := repos.Memberships.Get(ctx, newOwnerID, companyID)
		if err != nil {
			return err
		}
		if target == nil || !target.IsActive {
			return domain.ErrNotAMember
		}
		target.IsOwner = true
		target.UpdatedAt = now
		if err := repos.Memberships.Update(ctx, target); err != nil {
			return err
		}
		if keepPrevious {
			return nil
		}
		actor.IsOwner = false
		actor.UpdatedAt = now
		return repos.Memberships.Update(ctx, actor)
	})
	if err != nil {
		return classify(err)
	}
	m.log.Info().Str("company_id", companyID).Str("from", actorID).Str("to", newOwnerID).Bool("keep_previous", keepPrevious).Msg("ownership transferred")
	return nil
}

func requireOwner(ctx context.Context, repos repository.Repositories, userID, companyID string) error {
	mem, err := repos.Memberships.Get(ctx, userID, companyID)
	if err != nil {
		return err
	}
	if mem == nil || !mem.IsActive || !mem.IsOwner {
		return fmt.Errorf("%w: se requiere ser propietario de la empresa", domain.ErrForbidden)
	}
	return nil
}
