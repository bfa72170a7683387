package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/miracle7662/Miracle-Account-sub000/internal/domain/billing"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Company is a mandi firm; every ledger, souda and bill belongs to one
type Company struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Name      string          `gorm:"size:255;not null" json:"name"`
	Slug      string          `gorm:"size:255;unique;not null" json:"slug"`
	Settings  CompanySettings `gorm:"type:jsonb;serializer:json" json:"settings"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	DeletedAt gorm.DeletedAt  `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new company
func (c *Company) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Company model
func (Company) TableName() string {
	return "companies"
}

// CompanySettings holds the billing configuration of a company
type CompanySettings struct {
	DalaliPercent decimal.Decimal `json:"dalali_percent"`
	HamaliRate    decimal.Decimal `json:"hamali_rate"`
	VatavRate     decimal.Decimal `json:"vatav_rate"`

	CustomerBillPrefix string `json:"customer_bill_prefix,omitempty"`
	FarmerBillPrefix   string `json:"farmer_bill_prefix,omitempty"`
	Currency           string `json:"currency,omitempty"`
}

// Rates returns the settings as engine rates
func (s CompanySettings) Rates() billing.Rates {
	return billing.Rates{
		DalaliPercent: s.DalaliPercent,
		HamaliRate:    s.HamaliRate,
		VatavRate:     s.VatavRate,
	}
}

// Scan implements the sql.Scanner interface for CompanySettings
func (s *CompanySettings) Scan(value interface{}) error {
	if value == nil {
		*s = CompanySettings{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan CompanySettings: unsupported type")
	}

	return json.Unmarshal(bytes, s)
}

// Value implements the driver.Valuer interface for CompanySettings
func (s CompanySettings) Value() (driver.Value, error) {
	return json.Marshal(s)
}

// DefaultCompanySettings returns settings for a new company seeded with rates
func DefaultCompanySettings(rates billing.Rates) CompanySettings {
	return CompanySettings{
		DalaliPercent:      rates.DalaliPercent,
		HamaliRate:         rates.HamaliRate,
		VatavRate:          rates.VatavRate,
		CustomerBillPrefix: "CB-",
		FarmerBillPrefix:   "FB-",
		Currency:           "INR",
	}
}
