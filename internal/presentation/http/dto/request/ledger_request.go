package request

import (
	"github.com/miracle7662/Miracle-Account-sub000/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// LedgerRequest represents a ledger creation or update request
type LedgerRequest struct {
	Name           string          `json:"name" binding:"required,min=2,max=255"`
	LedgerType     enum.LedgerType `json:"ledger_type"`
	Phone          *string         `json:"phone" binding:"omitempty,max=50"`
	City           *string         `json:"city" binding:"omitempty,max=100"`
	Address        *string         `json:"address"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
}
