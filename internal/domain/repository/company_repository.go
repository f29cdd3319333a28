package repository

import (
	"context"

	"github.com/jhoicas/Contable-api/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure. Las lecturas devuelven (nil, nil) si no existe.
type CompanyRepository interface {
	// Create devuelve *domain.ValidationError si el RUC o el email ya existen.
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	GetByRUC(ctx context.Context, ruc string) (*entity.Company, error)
	Update(ctx context.Context, company *entity.Company) error
}
