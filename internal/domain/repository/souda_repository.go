package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/miracle7662/Miracle-Account-sub000/internal/domain/entity"
	"github.com/miracle7662/Miracle-Account-sub000/internal/domain/enum"
	"github.com/miracle7662/Miracle-Account-sub000/pkg/pagination"
)

// SoudaRepository defines the interface for souda data operations
type SoudaRepository interface {
	Create(ctx context.Context, souda *entity.Souda) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Souda, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Souda, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *SoudaFilterParams) ([]entity.Souda, int64, error)
	// ListUnbilled returns soudas not yet claimed by a bill of the given
	// type, ordered by date then creation
	ListUnbilled(ctx context.Context, filter UnbilledFilter) ([]entity.Souda, error)
}

// SoudaFilterParams contains filtering parameters for souda queries
type SoudaFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	FarmerID   *uuid.UUID
	CustomerID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
}

// UnbilledFilter selects the soudas a new bill can load
type UnbilledFilter struct {
	BillType  enum.BillType
	LedgerID  uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
}
