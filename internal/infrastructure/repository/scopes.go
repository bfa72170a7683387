package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ctxKey string

// CompanyIDKey is the context key for the active company ID
const CompanyIDKey ctxKey = "company_id"

// CompanyScope returns a GORM scope that filters by the company in ctx.
// Queries without a company in context match nothing.
func CompanyScope(ctx context.Context) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		companyID, ok := ctx.Value(CompanyIDKey).(uuid.UUID)
		if !ok {
			return db.Where("1 = 0")
		}
		return db.Where("company_id = ?", companyID)
	}
}

// WithCompany adds the company ID to context
func WithCompany(ctx context.Context, companyID uuid.UUID) context.Context {
	return context.WithValue(ctx, CompanyIDKey, companyID)
}

// GetCompanyID extracts the company ID from context
func GetCompanyID(ctx context.Context) (uuid.UUID, bool) {
	companyID, ok := ctx.Value(CompanyIDKey).(uuid.UUID)
	return companyID, ok
}
