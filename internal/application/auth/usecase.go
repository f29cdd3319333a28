package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
	"github.com/jhoicas/Contable-api/pkg/jwt"
	"github.com/jhoicas/Contable-api/pkg/logger"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// TxRunner ejecuta una función dentro de una transacción de BD.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.Repositories) error) error
}

// AuthUseCase casos de uso de autenticación: registro, login y cambio de empresa actual.
type AuthUseCase struct {
	users       repository.UserRepository
	memberships repository.MembershipRepository
	tx          TxRunner
	jwtCfg      JWTConfig
	log         *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(users repository.UserRepository, memberships repository.MembershipRepository, tx TxRunner, jwtCfg JWTConfig, log *logger.Logger) *AuthUseCase {
	return &AuthUseCase{users: users, memberships: memberships, tx: tx, jwtCfg: jwtCfg, log: log}
}

// Register crea un usuario: hashea password con bcrypt y persiste. Devuelve ErrEmailAlreadyExists si el email ya existe.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	existing, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = email
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", user.ID).Msg("user registered")
	return dto.ToUserResponse(user), nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != entity.UserStatusActive {
		return nil, domain.ErrForbidden
	}
	token, err := uc.issue(ctx, user)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: *dto.ToUserResponse(user)}, nil
}

// Me devuelve el usuario autenticado.
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return dto.ToUserResponse(user), nil
}

// Refresh emite un token nuevo con el equipo y la empresa actuales del usuario.
func (uc *AuthUseCase) Refresh(ctx context.Context, userID string) (*dto.LoginResponse, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	token, err := uc.issue(ctx, user)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: *dto.ToUserResponse(user)}, nil
}

// SwitchCompany guarda companyID como empresa actual, registra el acceso y emite un token nuevo.
func (uc *AuthUseCase) SwitchCompany(ctx context.Context, tenant entity.TenantContext, companyID string) (*dto.LoginResponse, error) {
	now := time.Now().UTC()
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		mem, err := repos.Memberships.Get(ctx, tenant.UserID, companyID)
		if err != nil {
			return err
		}
		if mem == nil || !mem.IsActive {
			return domain.ErrNotAMember
		}
		id := companyID
		if err := repos.Users.SetCurrentCompany(ctx, tenant.UserID, &id); err != nil {
			return err
		}
		return repos.Memberships.Touch(ctx, tenant.UserID, companyID, now)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", tenant.UserID).Str("company_id", companyID).Msg("current company switched")
	return uc.Refresh(ctx, tenant.UserID)
}

// issue resuelve la empresa del token: la actual si sigue activa, si no la predeterminada.
func (uc *AuthUseCase) issue(ctx context.Context, user *entity.User) (string, error) {
	companyID, err := uc.resolveCompany(ctx, user)
	if err != nil {
		return "", err
	}
	teamID := ""
	if user.CurrentTeamID != nil {
		teamID = *user.CurrentTeamID
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, teamID, companyID, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return "", fmt.Errorf("generar token: %w", err)
	}
	return token, nil
}

func (uc *AuthUseCase) resolveCompany(ctx context.Context, user *entity.User) (string, error) {
	if user.CurrentCompanyID != nil {
		mem, err := uc.memberships.Get(ctx, user.ID, *user.CurrentCompanyID)
		if err != nil {
			return "", err
		}
		if mem != nil && mem.IsActive {
			return mem.CompanyID, nil
		}
	}
	def, err := uc.memberships.GetDefault(ctx, user.ID)
	if err != nil {
		return "", err
	}
	if def == nil {
		return "", nil
	}
	return def.CompanyID, nil
}
