package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ogurasousui/employee-registry/internal/adapters/repository/memory"
	"github.com/ogurasousui/employee-registry/internal/adapters/repository/postgres"
	sqliterepo "github.com/ogurasousui/employee-registry/internal/adapters/repository/sqlite"
	"github.com/ogurasousui/employee-registry/internal/core/employee"
	"github.com/ogurasousui/employee-registry/internal/platform/config"
	pg "github.com/ogurasousui/employee-registry/internal/platform/db/postgres"
	sqlitedb "github.com/ogurasousui/employee-registry/internal/platform/db/sqlite"
	"github.com/ogurasousui/employee-registry/internal/platform/logging"
	"github.com/ogurasousui/employee-registry/internal/platform/server"
)

func main() {
	configPath := flag.String("config", "", "path to config file (defaults to CONFIG_PATH env or assets/local.yaml)")
	flag.Parse()

	if err := config.LoadDotEnv(config.DotEnvPath); err != nil {
		slog.Warn("failed to load .env", slog.Any("error", err))
	}

	cfg, err := config.Load(config.PathFromEnv(*configPath))
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := logging.New(os.Stdout, cfg.Log)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped with error", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("server stopped")
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, tx, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	svc := employee.NewService(repo, nil, tx, nil)
	ctrl := employee.NewController(svc)
	grpcServer := server.New(cfg.Server.ListenAddr, ctrl, logger)

	return grpcServer.Run(ctx)
}

func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (employee.Repository, employee.TransactionManager, func(), error) {
	logger.Info("opening storage", slog.String("driver", string(cfg.Storage.Driver)))

	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		pool, err := pg.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("initialize database pool: %w", err)
		}
		return postgres.NewEmployeeRepository(pool), pg.NewTransactionManager(pool), pool.Close, nil

	case config.StorageSQLite:
		db, err := sqlitedb.Open(ctx, cfg.SQLite.Path)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := sqliterepo.Migrate(ctx, db); err != nil {
			closeDB(db, logger)
			return nil, nil, nil, err
		}
		return sqliterepo.NewEmployeeRepository(db), sqlitedb.NewTransactionManager(db), func() { closeDB(db, logger) }, nil

	default:
		return memory.NewEmployeeRepository(), nil, func() {}, nil
	}
}

func closeDB(db *sql.DB, logger *slog.Logger) {
	if err := db.Close(); err != nil {
		logger.Warn("failed to close sqlite database", slog.Any("error", err))
	}
}
