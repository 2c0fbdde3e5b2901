package db

import (
	"context"
	"fmt"
	"net"
	"time"

	"taskmanager/internal/config"
	"taskmanager/internal/logger"

	"cloud.google.com/go/cloudsqlconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Connect opens a pgx pool against the configured database. With
// INSTANCE_CONNECTION_NAME set, connections are dialed through the Cloud
// SQL connector; otherwise DB_HOST/DB_PORT are used directly (local auth
// proxy or plain Postgres). The returned cleanup closes the pool and, when
// present, the connector's dialer.
func Connect(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, func(), error) {
	var (
		poolCfg *pgxpool.Config
		dialer  *cloudsqlconn.Dialer
		err     error
	)

	if cfg.UseConnector() {
		poolCfg, dialer, err = connectorConfig(ctx, cfg)
	} else {
		poolCfg, err = directConfig(cfg)
	}
	if err != nil {
		return nil, nil, err
	}

	// Mirrors the managed pool the service ran with before: 5 base
	// connections plus 2 overflow, recycled every 30 minutes.
	poolCfg.MaxConns = 7
	poolCfg.MaxConnLifetime = 30 * time.Minute
	poolCfg.ConnConfig.ConnectTimeout = 30 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		if dialer != nil {
			dialer.Close()
		}
		return nil, nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		if dialer != nil {
			dialer.Close()
		}
		return nil, nil, fmt.Errorf("ping database: %w", err)
	}

	cleanup := func() {
		pool.Close()
		if dialer != nil {
			dialer.Close()
		}
	}

	logger.Info("database connected", "connector", cfg.UseConnector())
	return pool, cleanup, nil
}

func connectorConfig(ctx context.Context, cfg *config.Config) (*pgxpool.Config, *cloudsqlconn.Dialer, error) {
	var opts []cloudsqlconn.Option
	if cfg.IAMAuth {
		opts = append(opts, cloudsqlconn.WithIAMAuthN())
	}
	if cfg.PrivateIP {
		opts = append(opts, cloudsqlconn.WithDefaultDialOptions(cloudsqlconn.WithPrivateIP()))
	}

	dialer, err := cloudsqlconn.NewDialer(ctx, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("cloud sql dialer: %w", err)
	}

	dsn := fmt.Sprintf("host=localhost user=%s dbname=%s sslmode=disable", cfg.DBUser, cfg.DBName)
	if !cfg.IAMAuth {
		dsn += " password=" + cfg.DBPass
	}

	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		dialer.Close()
		return nil, nil, fmt.Errorf("parse config: %w", err)
	}

	instance := cfg.InstanceConnectionName
	poolCfg.ConnConfig.DialFunc = func(ctx context.Context, _, _ string) (net.Conn, error) {
		return dialer.Dial(ctx, instance)
	}
	return poolCfg, dialer, nil
}

func directConfig(cfg *config.Config) (*pgxpool.Config, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPass, cfg.DBName)

	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return poolCfg, nil
}
