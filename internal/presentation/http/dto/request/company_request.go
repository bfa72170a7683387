package request

// CreateCompanyRequest represents a company creation request
type CreateCompanyRequest struct {
	Name  string        `json:"name" binding:"required,min=2,max=255"`
	Slug  string        `json:"slug" binding:"omitempty,max=255"`
	Rates *RatesRequest `json:"rates"`
}

// UpdateCompanyRequest represents a company update request
type UpdateCompanyRequest struct {
	Name               string        `json:"name" binding:"omitempty,min=2,max=255"`
	Rates              *RatesRequest `json:"rates"`
	CustomerBillPrefix *string       `json:"customer_bill_prefix" binding:"omitempty,max=20"`
	FarmerBillPrefix   *string       `json:"farmer_bill_prefix" binding:"omitempty,max=20"`
	Currency           *string       `json:"currency" binding:"omitempty,len=3"`
}
