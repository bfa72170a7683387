package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/miracle7662/Miracle-Account-sub000/internal/domain/entity"
	"github.com/miracle7662/Miracle-Account-sub000/internal/domain/enum"
	"github.com/miracle7662/Miracle-Account-sub000/pkg/pagination"
)

// BillRepository defines the interface for bill persistence. Writes that
// touch lines and soudas are atomic.
type BillRepository interface {
	// Create stores the bill with its lines and marks every souda the lines
	// reference as billed on the bill's side. It fails with
	// ErrSoudaAlreadyBilled if any of them was claimed in the meantime.
	Create(ctx context.Context, bill *entity.Bill) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Bill, error)
	// Update rewrites the header and replaces all lines, releasing soudas
	// that are no longer referenced and claiming new ones
	Update(ctx context.Context, bill *entity.Bill) error
	// Delete removes the bill and its lines and releases its soudas
	Delete(ctx context.Context, bill *entity.Bill) error
	List(ctx context.Context, params *BillFilterParams) ([]entity.Bill, int64, error)
	// LatestForLedger returns the most recent bill of a type for a ledger,
	// or nil when the ledger has none
	LatestForLedger(ctx context.Context, ledgerID uuid.UUID, billType enum.BillType) (*entity.Bill, error)
	Outstanding(ctx context.Context, billType enum.BillType) ([]entity.OutstandingRow, error)
}

// BillFilterParams contains filtering parameters for bill queries
type BillFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Type       *enum.BillType
	LedgerID   *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	SortBy     string
	SortOrder  string
}
