package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateSoudaRequest represents a souda creation request
type CreateSoudaRequest struct {
	SoudaDate      string          `json:"souda_date" binding:"omitempty,datetime=2006-01-02"`
	FarmerID       uuid.UUID       `json:"farmer_id" binding:"required"`
	CustomerID     uuid.UUID       `json:"customer_id" binding:"required"`
	ItemName       string          `json:"item_name" binding:"required,max=255"`
	Quantity       int             `json:"quantity" binding:"min=1"`
	CustomerAmount decimal.Decimal `json:"customer_amount"`
	FarmerAmount   decimal.Decimal `json:"farmer_amount"`
	Katala         decimal.Decimal `json:"katala"`
	Commission     decimal.Decimal `json:"commission"`
}
