package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	limitermem "github.com/ulule/limiter/v3/drivers/store/memory"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/Travelintrips/travelindashboard-sub001/internal/adapters/database/pgsql"
	"github.com/Travelintrips/travelindashboard-sub001/internal/adapters/memory"
	"github.com/Travelintrips/travelindashboard-sub001/internal/adapters/notify"
	notifykafka "github.com/Travelintrips/travelindashboard-sub001/internal/adapters/notify/kafka"
	"github.com/Travelintrips/travelindashboard-sub001/internal/core/domain"
	portsrepo "github.com/Travelintrips/travelindashboard-sub001/internal/core/ports/repositories"
	portssvc "github.com/Travelintrips/travelindashboard-sub001/internal/core/ports/services"
	"github.com/Travelintrips/travelindashboard-sub001/internal/core/services"
	"github.com/Travelintrips/travelindashboard-sub001/internal/handlers"
	"github.com/Travelintrips/travelindashboard-sub001/internal/middleware"
	"github.com/Travelintrips/travelindashboard-sub001/internal/platform/config"
	"github.com/Travelintrips/travelindashboard-sub001/pkg/database"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repos, cleanup, err := buildRepositories(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer cleanup()

	servicesContainer := buildServices(cfg, repos, logger)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AddAllowHeaders("Origin", "Content-Type", "Authorization", "X-User-ID")
	r.Use(cors.New(corsConfig))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, servicesContainer, buildRateLimiter(cfg, logger))

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// buildRepositories selects the storage backend. With PGSQL_URL set the
// postgres repositories are used and migrations are applied; otherwise the
// process falls back to in-memory stores with a seeded chart of accounts.
func buildRepositories(cfg *config.Config, logger *slog.Logger) (*portsrepo.RepositoryProvider, func(), error) {
	if cfg.DatabaseURL == "" {
		logger.Warn("No database configured, using in-memory stores")
		return buildMemoryRepositories(), func() {}, nil
	}

	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg, logger); err != nil {
		dbPool.Close()
		return nil, nil, err
	}

	return pgsql.NewRepositoryProvider(dbPool), func() { database.ClosePgxPool(dbPool) }, nil
}

func buildMemoryRepositories() *portsrepo.RepositoryProvider {
	ledgerStore := memory.NewLedgerStore()
	eventStore := memory.NewEventStore()
	seedMemoryChart(ledgerStore)

	return &portsrepo.RepositoryProvider{
		Ledger:          ledgerStore,
		Account:         ledgerStore,
		SalesEvents:     eventStore,
		InventoryEvents: eventStore,
		Products:        eventStore,
		IntegrationLog:  eventStore,
	}
}

// seedMemoryChart registers the accounts the default mapping table refers to,
// mirroring the seed migration.
func seedMemoryChart(store *memory.LedgerStore) {
	seed := []domain.Account{
		{Code: "1100", Name: "Kas", Category: domain.Asset, IsActive: true},
		{Code: "1101", Name: "Persediaan Barang", Category: domain.Asset, IsActive: true},
		{Code: "1200", Name: "Piutang Usaha", Category: domain.Asset, IsActive: true},
		{Code: "4101", Name: "Penjualan Barang", Category: domain.Revenue, IsActive: true},
		{Code: "4201", Name: "Pendapatan Tiket Pesawat", Category: domain.Revenue, IsActive: true},
		{Code: "4202", Name: "Pendapatan Hotel", Category: domain.Revenue, IsActive: true},
		{Code: "4203", Name: "Pendapatan Executive Lounge", Category: domain.Revenue, IsActive: true},
		{Code: "4204", Name: "Pendapatan Transportasi", Category: domain.Revenue, IsActive: true},
		{Code: "4205", Name: "Pendapatan Sapphire Handling", Category: domain.Revenue, IsActive: true},
		{Code: "4206", Name: "Pendapatan Porter", Category: domain.Revenue, IsActive: true},
		{Code: "4207", Name: "Pendapatan Sewa Modem", Category: domain.Revenue, IsActive: true},
		{Code: "4208", Name: "Pendapatan Sport Center", Category: domain.Revenue, IsActive: true},
		{Code: "5101", Name: "Harga Pokok Penjualan", Category: domain.Expense, IsActive: true},
		{Code: "5102", Name: "Penyesuaian Persediaan", Category: domain.Expense, IsActive: true},
	}
	for i := range seed {
		seed[i].AccountID = seed[i].Code
		_ = store.SaveAccount(context.Background(), seed[i])
	}
}

func buildServices(cfg *config.Config, repos *portsrepo.RepositoryProvider, logger *slog.Logger) *portssvc.ServiceContainer {
	var seed []domain.AccountMapping
	if cfg.MappingFile != "" {
		loaded, err := services.LoadMappingFile(cfg.MappingFile)
		if err != nil {
			logger.Error("Failed to load mapping file, using defaults",
				slog.String("path", cfg.MappingFile), slog.String("error", err.Error()))
		} else {
			// File entries override the defaults per type without dropping
			// the types the file does not mention.
			seed = append(services.DefaultMappings(), loaded...)
		}
	}

	var notifier portssvc.Notifier = notify.Noop{}
	if len(cfg.KafkaBrokers) > 0 {
		notifier = notifykafka.NewNotifier(cfg.KafkaBrokers, cfg.KafkaTopic)
		logger.Info("Kafka notifier enabled", slog.String("topic", cfg.KafkaTopic))
	}

	return services.NewContainer(repos, services.ContainerConfig{
		MappingSeed:     seed,
		Notifier:        notifier,
		NotifyRecipient: cfg.NotifyRecipient,
	})
}

func buildRateLimiter(cfg *config.Config, logger *slog.Logger) *limiter.Limiter {
	if cfg.RateLimit == "" {
		return nil
	}
	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid rate limit format, disabling rate limiting",
			slog.String("rate_limit", cfg.RateLimit), slog.String("error", err.Error()))
		return nil
	}
	return limiter.New(limitermem.NewStore(), rate)
}

func runMigrations(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	// Open a temporary standard sql.DB connection for migrations, using the
	// pgx/v5/stdlib driver to be compatible with the main pool.
	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
