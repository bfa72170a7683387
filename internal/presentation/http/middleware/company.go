package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/miracle7662/Miracle-Account-sub000/internal/domain/repository"
	"github.com/miracle7662/Miracle-Account-sub000/internal/presentation/http/dto/response"
)

// RequireCompany ensures the token named an existing company. The company
// is stored in the Gin context for handlers that need its settings.
func RequireCompany(companyRepo repository.CompanyRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		companyID := GetCompanyID(c)
		if companyID == uuid.Nil {
			response.BadRequest(c, "Company context required")
			c.Abort()
			return
		}

		company, err := companyRepo.GetByID(c.Request.Context(), companyID)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}
		if company == nil {
			response.NotFound(c, "Company not found")
			c.Abort()
			return
		}

		c.Set("company", company)
		c.Next()
	}
}

// GetCompanyID retrieves the company ID from gin context
func GetCompanyID(c *gin.Context) uuid.UUID {
	companyID, exists := c.Get("company_id")
	if !exists {
		return uuid.Nil
	}
	id, ok := companyID.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}
