package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/senyabanana/notice-service/internal/db"
	"github.com/senyabanana/notice-service/internal/handlers"
	"github.com/senyabanana/notice-service/internal/repository"
	"github.com/senyabanana/notice-service/internal/router"
	"github.com/senyabanana/notice-service/internal/router/config"
	"github.com/senyabanana/notice-service/internal/services"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal("cannot load config:", err)
	}

	logger := log.New(os.Stdout, "INFO: ", log.LstdFlags)

	var (
		releaseRepo repository.ReleaseRepository
		historyRepo repository.HistoryRepository
		storagePing handlers.StorageCheck
	)
	switch cfg.StorageDriver {
	case config.StorageMemory:
		releaseRepo = repository.NewMemoryReleaseRepository()
		historyRepo = repository.NewMemoryHistoryRepository()
		logger.Println("using in-memory release storage")
	case config.StoragePostgres:
		runDBMigration(cfg.MigrationURL, cfg.PostgresConn)

		dbPool, err := db.InitDb(context.Background(), cfg)
		if err != nil {
			log.Fatalf("error initializing database: %v", err)
		}
		defer dbPool.Close()

		releaseRepo = repository.NewPostgresReleaseRepository(dbPool)
		historyRepo = repository.NewPostgresHistoryRepository(dbPool)
		storagePing = dbPool.Ping
	default:
		log.Fatalf("unknown storage driver %q", cfg.StorageDriver)
	}

	releaseService := services.NewReleaseService(releaseRepo, services.NewIdentityGenerator(nil))
	commandHandler := handlers.NewCommandHandler(
		services.NewAwardService(releaseService),
		services.NewTenderService(releaseService),
		services.NewContractService(releaseService),
		services.NewEnquiryService(releaseService),
		services.NewBudgetService(releaseService),
		historyRepo,
		logger,
		cfg.RequestTimeout,
	)

	routes := router.InitRoutes(commandHandler, handlers.NewPingHandler(storagePing, cfg.RequestTimeout), cfg.MetricsPath)

	log.Printf("server is listening on %s...", cfg.ServerAddress)
	if err := http.ListenAndServe(cfg.ServerAddress, routes); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

func runDBMigration(migrationURL string, dbSource string) {
	migration, err := migrate.New(migrationURL, dbSource)
	if err != nil {
		log.Fatal("cannot create a new migrate instance", err)
	}

	if err = migration.Up(); err != nil && err != migrate.ErrNoChange {
		log.Fatal("failed to run migrate up:", err)
	}
	log.Println("db migrated successfully")
}
