package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/miracle7662/Miracle-Account-sub000/internal/domain/billing"
	"github.com/miracle7662/Miracle-Account-sub000/internal/domain/entity"
	"github.com/miracle7662/Miracle-Account-sub000/internal/domain/repository"
	"github.com/miracle7662/Miracle-Account-sub000/pkg/apperror"
	"github.com/miracle7662/Miracle-Account-sub000/pkg/logger"
	"github.com/miracle7662/Miracle-Account-sub000/pkg/utils"
	"github.com/sirupsen/logrus"
)

// RateCache caches company billing rates. Get returns nil on a miss.
type RateCache interface {
	Get(ctx context.Context, companyID uuid.UUID) (*billing.Rates, error)
	Set(ctx context.Context, companyID uuid.UUID, rates billing.Rates) error
	Invalidate(ctx context.Context, companyID uuid.UUID) error
}

// CompanyService handles company-related operations and provides the
// billing rates of a company
type CompanyService struct {
	companyRepo  repository.CompanyRepository
	cache        RateCache
	defaultRates billing.Rates
	log          logrus.FieldLogger
}

// NewCompanyService creates a new company service. cache may be nil.
func NewCompanyService(companyRepo repository.CompanyRepository, cache RateCache, defaultRates billing.Rates, log logrus.FieldLogger) *CompanyService {
	return &CompanyService{
		companyRepo:  companyRepo,
		cache:        cache,
		defaultRates: defaultRates,
		log:          log,
	}
}

// CreateCompanyInput represents input for creating a company
type CreateCompanyInput struct {
	Name     string
	Slug     string
	Settings *entity.CompanySettings
}

// CreateCompany creates a new company seeded with the default rates
func (s *CompanyService) CreateCompany(ctx context.Context, input *CreateCompanyInput) (*entity.Company, error) {
	slug := input.Slug
	if slug == "" {
		slug = utils.Slugify(input.Name)
	}
	if slug == "" {
		return nil, apperror.NewBadRequestError("Company slug cannot be empty")
	}

	existing, err := s.companyRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Company slug already exists")
	}

	settings := entity.DefaultCompanySettings(s.defaultRates)
	if input.Settings != nil {
		settings = *input.Settings
	}

	company := &entity.Company{
		Name:     input.Name,
		Slug:     slug,
		Settings: settings,
	}

	if err := s.companyRepo.Create(ctx, company); err != nil {
		return nil, err
	}

	return company, nil
}

// GetCompany retrieves a company by ID
func (s *CompanyService) GetCompany(ctx context.Context, id uuid.UUID) (*entity.Company, error) {
	company, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, apperror.NewNotFoundError("Company")
	}
	return company, nil
}

// UpdateCompanyInput represents input for updating a company. Nil fields
// are left unchanged.
type UpdateCompanyInput struct {
	ID                 uuid.UUID
	Name               string
	Rates              *billing.Rates
	CustomerBillPrefix *string
	FarmerBillPrefix   *string
	Currency           *string
}

// UpdateCompany updates a company and drops its cached rates
func (s *CompanyService) UpdateCompany(ctx context.Context, input *UpdateCompanyInput) (*entity.Company, error) {
	company, err := s.GetCompany(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		company.Name = input.Name
	}
	if input.Rates != nil {
		company.Settings.DalaliPercent = input.Rates.DalaliPercent
		company.Settings.HamaliRate = input.Rates.HamaliRate
		company.Settings.VatavRate = input.Rates.VatavRate
	}
	if input.CustomerBillPrefix != nil {
		company.Settings.CustomerBillPrefix = *input.CustomerBillPrefix
	}
	if input.FarmerBillPrefix != nil {
		company.Settings.FarmerBillPrefix = *input.FarmerBillPrefix
	}
	if input.Currency != nil {
		company.Settings.Currency = *input.Currency
	}

	if err := s.companyRepo.Update(ctx, company); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, company.ID); err != nil {
			logger.LogError(s.log, "company", "UpdateCompany", "invalidate rate cache", company.ID, err)
		}
	}

	return company, nil
}

// RatesFor returns the billing rates of a company, served from the cache
// when possible. Cache failures are logged and fall through to the store.
func (s *CompanyService) RatesFor(ctx context.Context, companyID uuid.UUID) (billing.Rates, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, companyID)
		if err != nil {
			logger.LogError(s.log, "company", "RatesFor", "read rate cache", companyID, err)
		}
		if cached != nil {
			return *cached, nil
		}
	}

	company, err := s.GetCompany(ctx, companyID)
	if err != nil {
		return billing.Rates{}, err
	}
	rates := company.Settings.Rates()

	if s.cache != nil {
		if err := s.cache.Set(ctx, companyID, rates); err != nil {
			logger.LogError(s.log, "company", "RatesFor", "write rate cache", companyID, err)
		}
	}

	return rates, nil
}
