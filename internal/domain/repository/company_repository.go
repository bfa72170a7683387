package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/miracle7662/Miracle-Account-sub000/internal/domain/entity"
)

// CompanyRepository defines the interface for company data operations
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Company, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Company, error)
	Update(ctx context.Context, company *entity.Company) error
}
