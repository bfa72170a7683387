package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/miracle7662/Miracle-Account-sub000/internal/application/service"
	"github.com/miracle7662/Miracle-Account-sub000/internal/domain/enum"
	"github.com/miracle7662/Miracle-Account-sub000/internal/domain/repository"
	"github.com/miracle7662/Miracle-Account-sub000/internal/presentation/http/dto/request"
	"github.com/miracle7662/Miracle-Account-sub000/internal/presentation/http/dto/response"
)

// LedgerHandler handles ledger-related HTTP requests
type LedgerHandler struct {
	ledgerService *service.LedgerService
}

// NewLedgerHandler creates a new ledger handler
func NewLedgerHandler(ledgerService *service.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerService: ledgerService}
}

// List handles listing ledgers
func (h *LedgerHandler) List(c *gin.Context) {
	params := &repository.LedgerFilterParams{
		Pagination: pageParams(c),
		Search:     c.Query("search"),
	}

	if typeStr := c.Query("type"); typeStr != "" {
		ledgerType, err := enum.ParseLedgerType(typeStr)
		if err != nil {
			response.BadRequest(c, "Invalid ledger type")
			return
		}
		params.Type = &ledgerType
	}

	result, err := h.ledgerService.ListLedgers(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, "Ledgers retrieved successfully", result)
}

// Create handles creating a ledger
func (h *LedgerHandler) Create(c *gin.Context) {
	var req request.LedgerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	ledger, err := h.ledgerService.CreateLedger(c.Request.Context(), toLedgerInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Ledger created successfully", ledger)
}

// Get handles getting a single ledger
func (h *LedgerHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid ledger ID")
		return
	}

	ledger, err := h.ledgerService.GetLedger(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Ledger retrieved successfully", ledger)
}

// Update handles updating a ledger
func (h *LedgerHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid ledger ID")
		return
	}

	var req request.LedgerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	ledger, err := h.ledgerService.UpdateLedger(c.Request.Context(), id, toLedgerInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Ledger updated successfully", ledger)
}

// Delete handles deleting a ledger
func (h *LedgerHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid ledger ID")
		return
	}

	if err := h.ledgerService.DeleteLedger(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Ledger deleted successfully", nil)
}

func toLedgerInput(req *request.LedgerRequest) *service.LedgerInput {
	return &service.LedgerInput{
		Name:           req.Name,
		LedgerType:     req.LedgerType,
		Phone:          req.Phone,
		City:           req.City,
		Address:        req.Address,
		OpeningBalance: req.OpeningBalance,
	}
}
