package db

import (
	"context"
	"fmt"

	"github.com/senyabanana/notice-service/internal/router/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

// InitDb инициализирует подключение к базе данных и возвращает пул соединений.
func InitDb(ctx context.Context, cfg config.Config) (*pgxpool.Pool, error) {
	if err := checkConnectionSettings(cfg); err != nil {
		return nil, err
	}

	dbPool, err := pgxpool.New(ctx, cfg.PostgresConn)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	if err = dbPool.Ping(ctx); err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("database is not reachable: %w", err)
	}
	return dbPool, nil
}

func checkConnectionSettings(cfg config.Config) error {
	if cfg.PostgresConn == "" {
		return fmt.Errorf("POSTGRES_CONN is not set")
	}
	if cfg.PostgresUser == "" || cfg.PostgresPass == "" || cfg.PostgresHost == "" || cfg.PostgresPort == "" || cfg.PostgresDB == "" {
		return fmt.Errorf("one or more database connection environment variables are missing")
	}
	return nil
}
