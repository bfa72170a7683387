package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/miracle7662/Miracle-Account-sub000/internal/application/service"
	"github.com/miracle7662/Miracle-Account-sub000/internal/config"
	"github.com/miracle7662/Miracle-Account-sub000/internal/domain/billing"
	domainRepo "github.com/miracle7662/Miracle-Account-sub000/internal/domain/repository"
	"github.com/miracle7662/Miracle-Account-sub000/internal/infrastructure/cache"
	"github.com/miracle7662/Miracle-Account-sub000/internal/infrastructure/database"
	"github.com/miracle7662/Miracle-Account-sub000/internal/infrastructure/repository"
	"github.com/miracle7662/Miracle-Account-sub000/internal/presentation/http/handler"
	"github.com/miracle7662/Miracle-Account-sub000/internal/presentation/http/middleware"
	"github.com/miracle7662/Miracle-Account-sub000/internal/presentation/http/routes"
	"github.com/miracle7662/Miracle-Account-sub000/pkg/apperror"
	"github.com/miracle7662/Miracle-Account-sub000/pkg/logger"
	"github.com/miracle7662/Miracle-Account-sub000/pkg/utils"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log := logger.New(cfg.Log.Level, cfg.Log.Format, os.Stdout)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Money goes over the wire as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		apperror.UseJSONFieldNames(v)
	}

	defaultRates, err := parseDefaultRates(&cfg.Billing)
	if err != nil {
		log.WithError(err).Fatal("invalid default billing rates")
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database, log)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}

	if err := database.AutoMigrate(db, log); err != nil {
		log.WithError(err).Fatal("failed to run migrations")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Rate cache is optional; without Redis every lookup reads the company row
	var rateCache service.RateCache
	if cfg.Redis.Addr != "" {
		client, err := cache.New(ctx, &cfg.Redis)
		if err != nil {
			log.WithError(err).Warn("redis unavailable, company rates will not be cached")
		} else {
			defer client.Close()
			rateCache = cache.NewRateCache(client, cfg.Redis.RateTTL)
		}
	}

	verifier := utils.NewTokenVerifier(cfg.JWT.Secret, cfg.JWT.Issuer)

	// Initialize repositories
	companyRepo := repository.NewCompanyRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)
	soudaRepo := repository.NewSoudaRepository(db)
	billRepo := repository.NewBillRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize services
	companyService := service.NewCompanyService(companyRepo, rateCache, defaultRates, log)
	ledgerService := service.NewLedgerService(ledgerRepo)
	soudaService := service.NewSoudaService(soudaRepo, ledgerRepo)
	billService := service.NewBillService(billRepo, ledgerRepo, soudaRepo, companyService, log)

	handlers := &routes.Handlers{
		Company: handler.NewCompanyHandler(companyService),
		Ledger:  handler.NewLedgerHandler(ledgerService),
		Souda:   handler.NewSoudaHandler(soudaService),
		Bill:    handler.NewBillHandler(billService),
	}

	rateLimiter := middleware.NewCompanyRateLimiter(middleware.RateLimiterConfigFrom(&cfg.RateLimit))
	defer rateLimiter.Stop()

	router := routes.Setup(handlers, &routes.Deps{
		Verifier:        verifier,
		Cfg:             cfg,
		Log:             log,
		CompanyRepo:     companyRepo,
		IdempotencyRepo: idempotencyRepo,
		RateLimiter:     rateLimiter,
	})

	go purgeIdempotencyKeys(ctx, idempotencyRepo, log)

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithFields(logrus.Fields{"port": port, "env": cfg.App.Env}).Infof("starting %s server", cfg.App.Name)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
}

// parseDefaultRates reads the rates new companies start with
func parseDefaultRates(cfg *config.BillingConfig) (billing.Rates, error) {
	dalali, err := decimal.NewFromString(cfg.DefaultDalaliPercent)
	if err != nil {
		return billing.Rates{}, err
	}
	hamali, err := decimal.NewFromString(cfg.DefaultHamaliRate)
	if err != nil {
		return billing.Rates{}, err
	}
	vatav, err := decimal.NewFromString(cfg.DefaultVatavRate)
	if err != nil {
		return billing.Rates{}, err
	}
	return billing.Rates{DalaliPercent: dalali, HamaliRate: hamali, VatavRate: vatav}, nil
}

// purgeIdempotencyKeys deletes expired idempotency keys every hour
func purgeIdempotencyKeys(ctx context.Context, repo domainRepo.IdempotencyRepository, log logrus.FieldLogger) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			purged, err := repo.PurgeExpired(ctx, time.Now())
			if err != nil {
				log.WithError(err).Warn("failed to purge idempotency keys")
				continue
			}
			if purged > 0 {
				log.WithField("purged", purged).Debug("purged expired idempotency keys")
			}
		}
	}
}
