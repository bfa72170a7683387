package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/miracle7662/Miracle-Account-sub000/internal/application/service"
	"github.com/miracle7662/Miracle-Account-sub000/internal/domain/billing"
	"github.com/miracle7662/Miracle-Account-sub000/internal/domain/enum"
	"github.com/miracle7662/Miracle-Account-sub000/internal/domain/repository"
	"github.com/miracle7662/Miracle-Account-sub000/internal/presentation/http/dto/request"
	"github.com/miracle7662/Miracle-Account-sub000/internal/presentation/http/dto/response"
	"github.com/miracle7662/Miracle-Account-sub000/pkg/pagination"
)

// BillHandler handles bill-related HTTP requests
type BillHandler struct {
	billService *service.BillService
}

// NewBillHandler creates a new bill handler
func NewBillHandler(billService *service.BillService) *BillHandler {
	return &BillHandler{billService: billService}
}

// List handles listing bills
func (h *BillHandler) List(c *gin.Context) {
	var req request.BillFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BindError(c, err)
		return
	}

	params := &repository.BillFilterParams{
		Pagination: &pagination.PaginationParams{Page: req.Page, PerPage: req.PerPage},
		Search:     req.Search,
		LedgerID:   parseUUID(req.LedgerID),
		StartDate:  parseDate(req.StartDate),
		EndDate:    parseDate(req.EndDate),
		SortBy:     req.SortBy,
		SortOrder:  req.SortOrder,
	}

	if req.BillType != "" {
		billType, err := enum.ParseBillType(req.BillType)
		if err != nil {
			response.BadRequest(c, "Invalid bill type")
			return
		}
		params.Type = &billType
	}

	result, err := h.billService.ListBills(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, "Bills retrieved successfully", result)
}

// Preview computes a bill's totals without saving it
func (h *BillHandler) Preview(c *gin.Context) {
	input, ok := h.bindBill(c)
	if !ok {
		return
	}

	preview, err := h.billService.Preview(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill computed successfully", preview)
}

// Create handles creating a new bill
func (h *BillHandler) Create(c *gin.Context) {
	input, ok := h.bindBill(c)
	if !ok {
		return
	}

	bill, err := h.billService.CreateBill(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Bill created successfully", bill)
}

// Get handles getting a single bill
func (h *BillHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid bill ID")
		return
	}

	bill, err := h.billService.GetBill(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill retrieved successfully", bill)
}

// Update handles recomputing and saving an existing bill
func (h *BillHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid bill ID")
		return
	}

	input, ok := h.bindBill(c)
	if !ok {
		return
	}

	bill, err := h.billService.UpdateBill(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill updated successfully", bill)
}

// Delete handles deleting a bill and releasing its soudas
func (h *BillHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid bill ID")
		return
	}

	if err := h.billService.DeleteBill(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill deleted successfully", nil)
}

// Outstanding lists each ledger's latest grand total for a bill type
func (h *BillHandler) Outstanding(c *gin.Context) {
	billType, err := enum.ParseBillType(c.DefaultQuery("bill_type", "customer"))
	if err != nil {
		response.BadRequest(c, "Invalid bill type")
		return
	}

	rows, err := h.billService.Outstanding(c.Request.Context(), billType)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Outstanding balances retrieved successfully", rows)
}

// bindBill binds the request body into service input, writing the error
// response itself when binding fails
func (h *BillHandler) bindBill(c *gin.Context) (*service.BillInput, bool) {
	var req request.BillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return nil, false
	}

	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return nil, false
	}

	input := &service.BillInput{
		UserID:           *userID,
		LedgerID:         req.LedgerID,
		BillType:         *req.BillType,
		FromDate:         parseDate(req.FromDate),
		ToDate:           parseDate(req.ToDate),
		Notes:            req.Notes,
		LoadUnbilled:     req.LoadUnbilled,
		TransportCharges: req.TransportCharges,
		DepositCash:      req.DepositCash,
		PreviousAdvance:  req.PreviousAdvance,
		PreviousBalance:  req.PreviousBalance,
		DiscountPercent:  req.DiscountPercent,
		DiscountAmount:   req.DiscountAmount,
	}

	if d := parseDate(req.BillDate); d != nil {
		input.BillDate = *d
	}

	if req.Rates != nil {
		rates := toRates(req.Rates)
		input.Rates = &rates
	}

	input.Lines = make([]service.BillLineInput, 0, len(req.Lines))
	for _, l := range req.Lines {
		input.Lines = append(input.Lines, service.BillLineInput{
			SoudaID: l.SoudaID,
			LineItem: billing.LineItem{
				ItemName:           l.ItemName,
				Quantity:           l.Quantity,
				UnitCustomerAmount: l.UnitCustomerAmount,
				UnitFarmerAmount:   l.UnitFarmerAmount,
				CommissionPerUnit:  l.CommissionPerUnit,
				Katala:             l.Katala,
			},
		})
	}

	return input, true
}
