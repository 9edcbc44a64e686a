package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"myShopCart/business/recommendation"
	"myShopCart/internal/cli"
	"myShopCart/internal/repository"
	"myShopCart/internal/repository/filesystem"
	psqlRepo "myShopCart/internal/repository/postgres"
	"myShopCart/pkg/config"
	"myShopCart/pkg/database"
	"myShopCart/pkg/logger"

	"gorm.io/gorm"
)

func main() {
	os.Exit(run())
}

// run owns every resource so its defers complete before the process exits.
func run() int {
	cfg, err := config.Load()
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		return 1
	}

	logger.Init(cfg.App.Environment)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// the postgres connection is opened on first use so file builds run without a database
	var db *gorm.DB
	connect := func() (*gorm.DB, error) {
		if db != nil {
			return db, nil
		}
		conn, err := database.InitPostgres(cfg)
		if err != nil {
			return nil, err
		}
		if err := psqlRepo.Migrate(conn); err != nil {
			_ = database.ClosePostgres(conn)
			return nil, err
		}
		db = conn
		return db, nil
	}
	defer func() {
		if db != nil {
			_ = database.ClosePostgres(db)
		}
	}()

	if cfg.Reco.Store == config.StorePostgres {
		if _, err := connect(); err != nil {
			logger.Error("Failed to connect to database", "error", err)
			return 1
		}
	}

	store, closeStore, err := repository.NewMatrixStore(ctx, cfg, db)
	if err != nil {
		logger.Error("Failed to init matrix store", "error", err)
		return 1
	}
	defer closeStore()

	engine := recommendation.NewEngine(store, recommendation.Uint64Keys(),
		recommendation.WithDefaultLimit(cfg.Reco.DefaultLimit))

	cli.Configure(engine, sourceOpener(cfg, connect), cfg.App.Version)

	if err := cli.Execute(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}

	return 0
}

// sourceOpener resolves --source. An empty --orders-file falls back to RECO_ORDERS_FILE.
func sourceOpener(cfg *config.Config, connect func() (*gorm.DB, error)) cli.SourceOpener {
	return func(ctx context.Context, kind, ordersFile string) (cli.OrderSource, func(), error) {
		if kind == "file" {
			if ordersFile == "" {
				ordersFile = cfg.Reco.OrdersFile
			}
			return filesystem.NewOrderHistoryFile(ordersFile), func() {}, nil
		}

		conn, err := connect()
		if err != nil {
			return nil, func() {}, err
		}
		return psqlRepo.NewOrderHistoryRepository(conn), func() {}, nil
	}
}
