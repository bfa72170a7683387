package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/miracle7662/Miracle-Account-sub000/internal/application/service"
	"github.com/miracle7662/Miracle-Account-sub000/internal/domain/enum"
	"github.com/miracle7662/Miracle-Account-sub000/internal/domain/repository"
	"github.com/miracle7662/Miracle-Account-sub000/internal/presentation/http/dto/request"
	"github.com/miracle7662/Miracle-Account-sub000/internal/presentation/http/dto/response"
)

// SoudaHandler handles souda-related HTTP requests
type SoudaHandler struct {
	soudaService *service.SoudaService
}

// NewSoudaHandler creates a new souda handler
func NewSoudaHandler(soudaService *service.SoudaService) *SoudaHandler {
	return &SoudaHandler{soudaService: soudaService}
}

// List handles listing soudas
func (h *SoudaHandler) List(c *gin.Context) {
	params := &repository.SoudaFilterParams{
		Pagination: pageParams(c),
		Search:     c.Query("search"),
		FarmerID:   parseUUID(c.Query("farmer_id")),
		CustomerID: parseUUID(c.Query("customer_id")),
		StartDate:  parseDate(c.Query("start_date")),
		EndDate:    parseDate(c.Query("end_date")),
	}

	result, err := h.soudaService.ListSoudas(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, "Soudas retrieved successfully", result)
}

// Unbilled lists the soudas a new bill for a ledger would load
func (h *SoudaHandler) Unbilled(c *gin.Context) {
	billType, err := enum.ParseBillType(c.DefaultQuery("bill_type", "customer"))
	if err != nil {
		response.BadRequest(c, "Invalid bill type")
		return
	}
	ledgerID, err := uuid.Parse(c.Query("ledger_id"))
	if err != nil {
		response.BadRequest(c, "Invalid ledger ID")
		return
	}

	soudas, err := h.soudaService.UnbilledSoudas(c.Request.Context(), repository.UnbilledFilter{
		BillType:  billType,
		LedgerID:  ledgerID,
		StartDate: parseDate(c.Query("start_date")),
		EndDate:   parseDate(c.Query("end_date")),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Unbilled soudas retrieved successfully", soudas)
}

// Create handles recording a souda
func (h *SoudaHandler) Create(c *gin.Context) {
	var req request.CreateSoudaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	var soudaDate time.Time
	if d := parseDate(req.SoudaDate); d != nil {
		soudaDate = *d
	}

	souda, err := h.soudaService.CreateSouda(c.Request.Context(), &service.CreateSoudaInput{
		SoudaDate:      soudaDate,
		FarmerID:       req.FarmerID,
		CustomerID:     req.CustomerID,
		ItemName:       req.ItemName,
		Quantity:       req.Quantity,
		CustomerAmount: req.CustomerAmount,
		FarmerAmount:   req.FarmerAmount,
		Katala:         req.Katala,
		Commission:     req.Commission,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Souda created successfully", souda)
}

// Get handles getting a single souda
func (h *SoudaHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid souda ID")
		return
	}

	souda, err := h.soudaService.GetSouda(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Souda retrieved successfully", souda)
}

// Delete handles deleting an unbilled souda
func (h *SoudaHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid souda ID")
		return
	}

	if err := h.soudaService.DeleteSouda(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Souda deleted successfully", nil)
}
