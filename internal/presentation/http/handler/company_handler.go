package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/miracle7662/Miracle-Account-sub000/internal/application/service"
	"github.com/miracle7662/Miracle-Account-sub000/internal/domain/billing"
	"github.com/miracle7662/Miracle-Account-sub000/internal/domain/entity"
	"github.com/miracle7662/Miracle-Account-sub000/internal/presentation/http/dto/request"
	"github.com/miracle7662/Miracle-Account-sub000/internal/presentation/http/dto/response"
	"github.com/miracle7662/Miracle-Account-sub000/internal/presentation/http/middleware"
)

// CompanyHandler handles company-related HTTP requests
type CompanyHandler struct {
	companyService *service.CompanyService
}

// NewCompanyHandler creates a new company handler
func NewCompanyHandler(companyService *service.CompanyService) *CompanyHandler {
	return &CompanyHandler{companyService: companyService}
}

// Create handles creating a company
func (h *CompanyHandler) Create(c *gin.Context) {
	var req request.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	input := &service.CreateCompanyInput{Name: req.Name, Slug: req.Slug}
	if req.Rates != nil {
		settings := entity.DefaultCompanySettings(toRates(req.Rates))
		input.Settings = &settings
	}

	company, err := h.companyService.CreateCompany(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Company created successfully", company)
}

// GetCurrent returns the active company
func (h *CompanyHandler) GetCurrent(c *gin.Context) {
	companyID := middleware.GetCompanyID(c)
	if companyID == uuid.Nil {
		response.BadRequest(c, "No active company")
		return
	}

	company, err := h.companyService.GetCompany(c.Request.Context(), companyID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Company retrieved successfully", company)
}

// UpdateCurrent updates the active company's name, rates and bill prefixes
func (h *CompanyHandler) UpdateCurrent(c *gin.Context) {
	companyID := middleware.GetCompanyID(c)
	if companyID == uuid.Nil {
		response.BadRequest(c, "No active company")
		return
	}

	var req request.UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	input := &service.UpdateCompanyInput{
		ID:                 companyID,
		Name:               req.Name,
		CustomerBillPrefix: req.CustomerBillPrefix,
		FarmerBillPrefix:   req.FarmerBillPrefix,
		Currency:           req.Currency,
	}
	if req.Rates != nil {
		rates := toRates(req.Rates)
		input.Rates = &rates
	}

	company, err := h.companyService.UpdateCompany(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Company updated successfully", company)
}

func toRates(r *request.RatesRequest) billing.Rates {
	return billing.Rates{
		DalaliPercent: r.DalaliPercent,
		HamaliRate:    r.HamaliRate,
		VatavRate:     r.VatavRate,
	}
}
