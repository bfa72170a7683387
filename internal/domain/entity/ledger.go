package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/miracle7662/Miracle-Account-sub000/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Ledger is an account for a party the mandi deals with
type Ledger struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	CompanyID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"company_id"`
	Name           string          `gorm:"size:255;not null" json:"name"`
	LedgerType     enum.LedgerType `gorm:"not null;default:0;index" json:"ledger_type"`
	Phone          *string         `gorm:"size:50" json:"phone,omitempty"`
	City           *string         `gorm:"size:100" json:"city,omitempty"`
	Address        *string         `gorm:"type:text" json:"address,omitempty"`
	OpeningBalance decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0" json:"opening_balance"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new ledger
func (l *Ledger) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Ledger model
func (Ledger) TableName() string {
	return "ledgers"
}
