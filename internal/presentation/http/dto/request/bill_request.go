package request

import (
	"github.com/google/uuid"
	"github.com/miracle7662/Miracle-Account-sub000/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// BillLineRequest is one bill line. A line with a souda_id is filled from
// the souda and its other fields are ignored.
type BillLineRequest struct {
	SoudaID            *uuid.UUID      `json:"souda_id"`
	ItemName           string          `json:"item_name" binding:"max=255"`
	Quantity           int             `json:"quantity" binding:"min=0"`
	UnitCustomerAmount decimal.Decimal `json:"unit_customer_amount"`
	UnitFarmerAmount   decimal.Decimal `json:"unit_farmer_amount"`
	CommissionPerUnit  decimal.Decimal `json:"commission_per_unit"`
	Katala             decimal.Decimal `json:"katala"`
}

// RatesRequest overrides the company rates for one bill
type RatesRequest struct {
	DalaliPercent decimal.Decimal `json:"dalali_percent"`
	HamaliRate    decimal.Decimal `json:"hamali_rate"`
	VatavRate     decimal.Decimal `json:"vatav_rate"`
}

// BillRequest represents a bill preview, creation or update request
type BillRequest struct {
	LedgerID     uuid.UUID         `json:"ledger_id" binding:"required"`
	BillType     *enum.BillType    `json:"bill_type" binding:"required"`
	BillDate     string            `json:"bill_date" binding:"omitempty,datetime=2006-01-02"`
	FromDate     string            `json:"from_date" binding:"omitempty,datetime=2006-01-02"`
	ToDate       string            `json:"to_date" binding:"omitempty,datetime=2006-01-02"`
	Notes        *string           `json:"notes" binding:"omitempty,max=1000"`
	Lines        []BillLineRequest `json:"lines" binding:"omitempty,max=500,dive"`
	LoadUnbilled bool              `json:"load_unbilled"`

	TransportCharges decimal.Decimal  `json:"transport_charges"`
	DepositCash      decimal.Decimal  `json:"deposit_cash"`
	PreviousAdvance  decimal.Decimal  `json:"previous_advance"`
	PreviousBalance  *decimal.Decimal `json:"previous_balance"`
	DiscountPercent  *decimal.Decimal `json:"discount_percent"`
	DiscountAmount   *decimal.Decimal `json:"discount_amount"`
	Rates            *RatesRequest    `json:"rates"`
}

// BillFilterRequest represents bill list filter parameters
type BillFilterRequest struct {
	Search    string `form:"search"`
	BillType  string `form:"bill_type"`
	LedgerID  string `form:"ledger_id"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}
