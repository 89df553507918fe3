package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/impcorecl/ticketeraimpactualizada/internal/api/http"
	"github.com/impcorecl/ticketeraimpactualizada/internal/api/http/handlers"
	"github.com/impcorecl/ticketeraimpactualizada/internal/auth"
	"github.com/impcorecl/ticketeraimpactualizada/internal/config"
	"github.com/impcorecl/ticketeraimpactualizada/internal/domain"
	"github.com/impcorecl/ticketeraimpactualizada/internal/events"
	"github.com/impcorecl/ticketeraimpactualizada/internal/mail"
	"github.com/impcorecl/ticketeraimpactualizada/internal/observability"
	"github.com/impcorecl/ticketeraimpactualizada/internal/persistence"
	"github.com/impcorecl/ticketeraimpactualizada/internal/repository"
	"github.com/impcorecl/ticketeraimpactualizada/internal/repository/memstore"
	"github.com/impcorecl/ticketeraimpactualizada/internal/service"
	"github.com/impcorecl/ticketeraimpactualizada/internal/worker"
	apperrors "github.com/impcorecl/ticketeraimpactualizada/pkg/util"
)

// repoSet groups every repository the services consume, regardless of
// which store backs them.
type repoSet struct {
	Users       repository.UserRepository
	TicketTypes repository.TicketTypeRepository
	Tickets     repository.TicketRepository
	Customers   repository.CustomerRepository
	Ambassadors repository.AmbassadorRepository
	Sales       repository.SaleRepository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if pg.PoolHandle() != nil && cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	repos := buildRepos(pg)

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(*cfg, repos.Users)
	seedBootstrapAdmin(ctx, cfg, authService, logger)

	saleService := service.NewSaleService(service.SaleDependencies{
		SaleRepo:   repos.Sales,
		Dispatcher: dispatcher,
		Metrics:    metrics,
		Logger:     logger,
	})
	validationService := service.NewValidationService(service.ValidationDependencies{
		TicketRepo: repos.Tickets,
		Dispatcher: dispatcher,
		Metrics:    metrics,
		Logger:     logger,
	})
	reportService := service.NewReportService(repos.Sales, redis, cfg.Report.CacheTTL(), dispatcher, logger)
	statsService := service.NewStatsService(repos.TicketTypes, repos.Tickets)
	adminService := service.NewAdminService(repos.Ambassadors, repos.Customers, repos.TicketTypes)

	sender := mail.NewFromConfig(cfg.Mail, logger)
	deliveryService := service.NewDeliveryService(dispatcher, sender, cfg.Event, logger)
	worker.StartDeliveryWorker(deliveryService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), repos.Users)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Sales:          handlers.NewSalesHandler(saleService, reportService),
		Scan:           handlers.NewScanHandler(validationService, saleService),
		Admin:          handlers.NewAdminHandler(adminService),
		Stats:          handlers.NewStatsHandler(statsService),
		Export:         handlers.NewExportHandler(reportService, adminService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

// buildRepos selects the backing store: pgx repositories when a DSN is
// configured, the in-memory store otherwise.
func buildRepos(pg *persistence.Postgres) repoSet {
	pool := pg.PoolHandle()
	if pool == nil {
		store := memstore.NewStore()
		return repoSet{
			Users:       store.Users(),
			TicketTypes: store.TicketTypes(),
			Tickets:     store.Tickets(),
			Customers:   store.Customers(),
			Ambassadors: store.Ambassadors(),
			Sales:       store.Sales(),
		}
	}
	return repoSet{
		Users:       repository.NewUserRepository(pool),
		TicketTypes: repository.NewTicketTypeRepository(pool),
		Tickets:     repository.NewTicketRepository(pool),
		Customers:   repository.NewCustomerRepository(pool),
		Ambassadors: repository.NewAmbassadorRepository(pool),
		Sales:       repository.NewSaleRepository(pool),
	}
}

// seedBootstrapAdmin creates the initial admin account when configured
// and absent. A store with the user already present is left untouched.
func seedBootstrapAdmin(ctx context.Context, cfg *config.Config, authService *service.AuthService, logger *zap.Logger) {
	if cfg.Auth.BootstrapAdminPassword == "" {
		return
	}
	username := cfg.Auth.BootstrapAdminUser
	_, err := authService.Register(ctx, username, username+"@local", cfg.Auth.BootstrapAdminPassword, domain.RoleAdmin)
	if err != nil {
		if apperrors.ToDomainError(err).Code == "CONFLICT" {
			return
		}
		logger.Warn("bootstrap admin not created", zap.String("username", username), zap.Error(err))
		return
	}
	logger.Info("bootstrap admin created", zap.String("username", username))
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
