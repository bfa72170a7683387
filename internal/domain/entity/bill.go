package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/miracle7662/Miracle-Account-sub000/internal/domain/billing"
	"github.com/miracle7662/Miracle-Account-sub000/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Bill is a finalized customer or farmer bill. Totals are stored exactly as
// the engine computed them.
type Bill struct {
	ID        uuid.UUID     `gorm:"type:uuid;primary_key" json:"id"`
	CompanyID uuid.UUID     `gorm:"type:uuid;not null;index" json:"company_id"`
	UserID    uuid.UUID     `gorm:"type:uuid;not null;index" json:"user_id"`
	LedgerID  uuid.UUID     `gorm:"type:uuid;not null;index" json:"ledger_id"`
	BillNo    string        `gorm:"size:100;unique;not null" json:"bill_no"`
	BillType  enum.BillType `gorm:"not null;default:0;index" json:"bill_type"`
	BillDate  time.Time     `gorm:"type:date;not null;index" json:"bill_date"`
	FromDate  *time.Time    `gorm:"type:date" json:"from_date,omitempty"`
	ToDate    *time.Time    `gorm:"type:date" json:"to_date,omitempty"`
	Notes     *string       `gorm:"type:text" json:"notes,omitempty"`

	// Header
	PreviousBalance  decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0" json:"previous_balance"`
	PreviousAdvance  decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0" json:"previous_advance"`
	TransportCharges decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0" json:"transport_charges"`
	DiscountPercent  decimal.Decimal `gorm:"type:numeric(9,2);not null;default:0" json:"discount_percent"`
	DiscountAmount   decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0" json:"discount_amount"`
	DepositCash      decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0" json:"deposit_cash"`
	DalaliPercent    decimal.Decimal `gorm:"type:numeric(9,4);not null;default:0" json:"dalali_percent"`
	HamaliRate       decimal.Decimal `gorm:"type:numeric(18,4);not null;default:0" json:"hamali_rate"`
	VatavRate        decimal.Decimal `gorm:"type:numeric(18,4);not null;default:0" json:"vatav_rate"`

	// Totals
	TotalItems        int             `gorm:"not null;default:0" json:"total_items"`
	TotalLineAmount   decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0" json:"total_line_amount"`
	TotalFarmerAmount decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0" json:"total_farmer_amount"`
	TotalCommission   decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0" json:"total_commission"`
	TotalKatala       decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0" json:"total_katala"`
	Dalali            decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0" json:"dalali"`
	Hamali            decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0" json:"hamali"`
	Vatav             decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0" json:"vatav"`
	TotalExpense      decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0" json:"total_expense"`
	TotalBill         decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0" json:"total_bill"`
	FinalBalance      decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0" json:"final_balance"`
	GrandTotal        decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0" json:"grand_total"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Ledger *Ledger    `gorm:"foreignKey:LedgerID" json:"ledger,omitempty"`
	Lines  []BillLine `gorm:"foreignKey:BillID;constraint:OnDelete:CASCADE" json:"lines,omitempty"`
}

// BeforeCreate generates a UUID before creating a new bill
func (b *Bill) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Bill model
func (Bill) TableName() string {
	return "bills"
}

// SetComputed copies the draft header and its totals onto the bill and
// rebuilds the line rows. soudaIDs is parallel to draft.Lines.
func (b *Bill) SetComputed(draft billing.BillDraft, totals billing.BillTotals, soudaIDs []*uuid.UUID) {
	b.BillType = draft.Type
	b.PreviousBalance = totals.PreviousBalance
	b.PreviousAdvance = draft.PreviousAdvance
	b.TransportCharges = draft.TransportCharges
	b.DiscountPercent = totals.DiscountPercent
	b.DiscountAmount = totals.DiscountAmount
	b.DepositCash = draft.DepositCash
	b.DalaliPercent = draft.Rates.DalaliPercent
	b.HamaliRate = draft.Rates.HamaliRate
	b.VatavRate = draft.Rates.VatavRate

	b.TotalItems = totals.TotalItems
	b.TotalLineAmount = totals.TotalLineAmount
	b.TotalFarmerAmount = totals.TotalFarmerAmount
	b.TotalCommission = totals.TotalCommission
	b.TotalKatala = totals.TotalKatala
	b.Dalali = totals.Dalali
	b.Hamali = totals.Hamali
	b.Vatav = totals.Vatav
	b.TotalExpense = totals.TotalExpense
	b.TotalBill = totals.TotalBill
	b.FinalBalance = totals.FinalBalance
	b.GrandTotal = totals.GrandTotal

	b.Lines = make([]BillLine, len(draft.Lines))
	for i, l := range draft.Lines {
		var soudaID *uuid.UUID
		if i < len(soudaIDs) {
			soudaID = soudaIDs[i]
		}
		b.Lines[i] = BillLine{
			BillID:             b.ID,
			SoudaID:            soudaID,
			Position:           i,
			ItemName:           l.ItemName,
			Quantity:           l.Quantity,
			UnitCustomerAmount: l.UnitCustomerAmount,
			UnitFarmerAmount:   l.UnitFarmerAmount,
			CommissionPerUnit:  l.CommissionPerUnit,
			Katala:             l.Katala,
		}
	}
}

// SoudaIDs returns the soudas claimed by this bill's lines
func (b *Bill) SoudaIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(b.Lines))
	for _, l := range b.Lines {
		if l.SoudaID != nil {
			ids = append(ids, *l.SoudaID)
		}
	}
	return ids
}

// BillLine is one line of a bill
type BillLine struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	BillID             uuid.UUID       `gorm:"type:uuid;not null;index" json:"bill_id"`
	SoudaID            *uuid.UUID      `gorm:"type:uuid;index" json:"souda_id,omitempty"`
	Position           int             `gorm:"not null;default:0" json:"position"`
	ItemName           string          `gorm:"size:255" json:"item_name"`
	Quantity           int             `gorm:"not null" json:"quantity"`
	UnitCustomerAmount decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0" json:"unit_customer_amount"`
	UnitFarmerAmount   decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0" json:"unit_farmer_amount"`
	CommissionPerUnit  decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0" json:"commission_per_unit"`
	Katala             decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0" json:"katala"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new bill line
func (l *BillLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the BillLine model
func (BillLine) TableName() string {
	return "bill_lines"
}

// LineItem converts the row back into an engine line
func (l *BillLine) LineItem() billing.LineItem {
	return billing.LineItem{
		ItemName:           l.ItemName,
		Quantity:           l.Quantity,
		UnitCustomerAmount: l.UnitCustomerAmount,
		UnitFarmerAmount:   l.UnitFarmerAmount,
		CommissionPerUnit:  l.CommissionPerUnit,
		Katala:             l.Katala,
	}
}

// OutstandingRow is one line of the outstanding ledger report
type OutstandingRow struct {
	LedgerID   uuid.UUID       `json:"ledger_id"`
	LedgerName string          `json:"ledger_name"`
	BillID     uuid.UUID       `json:"bill_id"`
	BillNo     string          `json:"bill_no"`
	BillDate   time.Time       `json:"bill_date"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}
