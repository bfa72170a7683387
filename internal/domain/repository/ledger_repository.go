package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/miracle7662/Miracle-Account-sub000/internal/domain/entity"
	"github.com/miracle7662/Miracle-Account-sub000/internal/domain/enum"
	"github.com/miracle7662/Miracle-Account-sub000/pkg/pagination"
)

// LedgerRepository defines the interface for ledger data operations
type LedgerRepository interface {
	Create(ctx context.Context, ledger *entity.Ledger) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Ledger, error)
	Update(ctx context.Context, ledger *entity.Ledger) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *LedgerFilterParams) ([]entity.Ledger, int64, error)
}

// LedgerFilterParams contains filtering parameters for ledger queries
type LedgerFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Type       *enum.LedgerType
}
