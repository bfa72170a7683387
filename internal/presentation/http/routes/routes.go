package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/miracle7662/Miracle-Account-sub000/internal/config"
	domainRepo "github.com/miracle7662/Miracle-Account-sub000/internal/domain/repository"
	"github.com/miracle7662/Miracle-Account-sub000/internal/presentation/http/handler"
	"github.com/miracle7662/Miracle-Account-sub000/internal/presentation/http/middleware"
	"github.com/miracle7662/Miracle-Account-sub000/pkg/utils"
	"github.com/sirupsen/logrus"
)

// Permissions checked on company administration routes
const (
	PermissionCompanyCreate = "companies.create"
	PermissionCompanyUpdate = "companies.update"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Company *handler.CompanyHandler
	Ledger  *handler.LedgerHandler
	Souda   *handler.SoudaHandler
	Bill    *handler.BillHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Verifier        *utils.TokenVerifier
	Cfg             *config.Config
	Log             logrus.FieldLogger
	CompanyRepo     domainRepo.CompanyRepository
	IdempotencyRepo domainRepo.IdempotencyRepository
	RateLimiter     *middleware.CompanyRateLimiter
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Log))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	v1 := router.Group("/api/v1")
	v1.Use(middleware.AuthMiddleware(deps.Verifier))
	if deps.RateLimiter != nil {
		v1.Use(deps.RateLimiter.Middleware())
	}

	// Creating a company happens before any company is on the token
	v1.POST("/companies", middleware.RequirePermission(PermissionCompanyCreate), h.Company.Create)

	scoped := v1.Group("")
	scoped.Use(middleware.RequireCompany(deps.CompanyRepo))

	registerCompanyRoutes(scoped, h)
	registerLedgerRoutes(scoped, h)
	registerSoudaRoutes(scoped, h)
	registerBillRoutes(scoped, h, deps)

	return router
}

func registerCompanyRoutes(rg *gin.RouterGroup, h *Handlers) {
	company := rg.Group("/company")
	{
		company.GET("", h.Company.GetCurrent)
		company.PUT("", middleware.RequirePermission(PermissionCompanyUpdate), h.Company.UpdateCurrent)
	}
}

func registerLedgerRoutes(rg *gin.RouterGroup, h *Handlers) {
	ledgers := rg.Group("/ledgers")
	{
		ledgers.GET("", h.Ledger.List)
		ledgers.POST("", h.Ledger.Create)
		ledgers.GET("/:id", h.Ledger.Get)
		ledgers.PUT("/:id", h.Ledger.Update)
		ledgers.DELETE("/:id", h.Ledger.Delete)
	}
}

func registerSoudaRoutes(rg *gin.RouterGroup, h *Handlers) {
	soudas := rg.Group("/soudas")
	{
		soudas.GET("", h.Souda.List)
		soudas.GET("/unbilled", h.Souda.Unbilled)
		soudas.POST("", h.Souda.Create)
		soudas.GET("/:id", h.Souda.Get)
		soudas.DELETE("/:id", h.Souda.Delete)
	}
}

func registerBillRoutes(rg *gin.RouterGroup, h *Handlers, deps *Deps) {
	idempotent := middleware.Idempotency(middleware.IdempotencyConfig{
		Repo: deps.IdempotencyRepo,
		TTL:  deps.Cfg.Billing.IdempotencyTTL,
		Log:  deps.Log,
	})

	bills := rg.Group("/bills")
	{
		bills.GET("", h.Bill.List)
		bills.GET("/outstanding", h.Bill.Outstanding)
		bills.POST("/preview", h.Bill.Preview)
		bills.POST("", idempotent, h.Bill.Create)
		bills.GET("/:id", h.Bill.Get)
		bills.PUT("/:id", idempotent, h.Bill.Update)
		bills.DELETE("/:id", h.Bill.Delete)
	}
}
