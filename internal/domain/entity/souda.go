package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/miracle7662/Miracle-Account-sub000/internal/domain/billing"
	"github.com/miracle7662/Miracle-Account-sub000/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Souda is a deal between a farmer and a customer. It stays unbilled on a
// side until a bill of that type claims it.
type Souda struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	CompanyID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"company_id"`
	SoudaDate      time.Time       `gorm:"type:date;not null;index" json:"souda_date"`
	FarmerID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"farmer_id"`
	CustomerID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"customer_id"`
	ItemName       string          `gorm:"size:255;not null" json:"item_name"`
	Quantity       int             `gorm:"not null" json:"quantity"`
	CustomerAmount decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0" json:"customer_amount"`
	FarmerAmount   decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0" json:"farmer_amount"`
	Katala         decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0" json:"katala"`
	Commission     decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0" json:"commission"`
	CustomerBillID *uuid.UUID      `gorm:"type:uuid;index" json:"customer_bill_id,omitempty"`
	FarmerBillID   *uuid.UUID      `gorm:"type:uuid;index" json:"farmer_bill_id,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`

	Farmer   *Ledger `gorm:"foreignKey:FarmerID" json:"farmer,omitempty"`
	Customer *Ledger `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
}

// BeforeCreate generates a UUID before creating a new souda
func (s *Souda) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Souda model
func (Souda) TableName() string {
	return "soudas"
}

// LineItem maps the souda onto a bill line
func (s *Souda) LineItem() billing.LineItem {
	return billing.LineItem{
		ItemName:           s.ItemName,
		Quantity:           s.Quantity,
		UnitCustomerAmount: s.CustomerAmount,
		UnitFarmerAmount:   s.FarmerAmount,
		CommissionPerUnit:  s.Commission,
		Katala:             s.Katala,
	}
}

// PartyFor returns the ledger a bill of the given type is raised against
func (s *Souda) PartyFor(billType enum.BillType) uuid.UUID {
	if billType == enum.BillTypeFarmer {
		return s.FarmerID
	}
	return s.CustomerID
}

// BilledOn returns the bill that claimed this souda on the given side
func (s *Souda) BilledOn(billType enum.BillType) *uuid.UUID {
	if billType == enum.BillTypeFarmer {
		return s.FarmerBillID
	}
	return s.CustomerBillID
}

// IsBilled reports whether either side has been billed
func (s *Souda) IsBilled() bool {
	return s.CustomerBillID != nil || s.FarmerBillID != nil
}
