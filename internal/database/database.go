package database

import (
	"context"
	"fmt"
	"time"

	"catalog/internal/config"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Querier is the subset of a pgx connection used by repositories.
// Both *pgx.Conn and *pgxpool.Conn satisfy it.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Connector hands out a database connection for the duration of fn and
// releases it on every return path.
type Connector interface {
	WithConn(ctx context.Context, fn func(q Querier) error) error
	Close()
}

// New builds the connector selected by cfg.ConnMode. Neither mode touches the
// network here, so an unreachable database only surfaces on first use.
func New(ctx context.Context, cfg config.DatabaseConfig, logger zerolog.Logger) (Connector, error) {
	switch cfg.ConnMode {
	case config.ConnModePool:
		return NewPoolConnector(ctx, cfg, logger)
	case config.ConnModePerRequest, "":
		return NewDirectConnector(cfg.URL, logger)
	default:
		return nil, fmt.Errorf("unknown connection mode: %s", cfg.ConnMode)
	}
}

// directConnector opens a dedicated connection per call.
type directConnector struct {
	connConfig *pgx.ConnConfig
	logger     zerolog.Logger
}

// NewDirectConnector creates a connector that dials a fresh connection for
// every WithConn call and closes it afterwards.
func NewDirectConnector(connString string, logger zerolog.Logger) (Connector, error) {
	connConfig, err := pgx.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}

	logger = logger.With().Str("component", "db-connector").Logger()
	logger.Info().
		Str("host", connConfig.Host).
		Uint16("port", connConfig.Port).
		Str("database", connConfig.Database).
		Str("mode", config.ConnModePerRequest).
		Msg("database connector configured")

	return &directConnector{
		connConfig: connConfig,
		logger:     logger,
	}, nil
}

// WithConn dials, runs fn and closes the connection.
func (c *directConnector) WithConn(ctx context.Context, fn func(q Querier) error) error {
	conn, err := pgx.ConnectConfig(ctx, c.connConfig.Copy())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		// Close must run even if ctx is already cancelled.
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := conn.Close(closeCtx); err != nil {
			c.logger.Warn().Err(err).Msg("failed to close database connection")
		}
	}()

	return fn(conn)
}

// Close is a no-op; every connection is closed by WithConn.
func (c *directConnector) Close() {}

// poolConnector acquires connections from a pgxpool.Pool.
type poolConnector struct {
	pool *pgxpool.Pool
}

// NewPoolConnector creates a pooled connector.
func NewPoolConnector(ctx context.Context, cfg config.DatabaseConfig, logger zerolog.Logger) (Connector, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxConnections)
	poolConfig.MinConns = int32(cfg.MinConnections)
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute

	logger.Info().
		Str("component", "db-connector").
		Str("host", poolConfig.ConnConfig.Host).
		Uint16("port", poolConfig.ConnConfig.Port).
		Str("database", poolConfig.ConnConfig.Database).
		Str("mode", config.ConnModePool).
		Int("max_connections", cfg.MaxConnections).
		Int("min_connections", cfg.MinConnections).
		Msg("creating database connection pool")

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	return &poolConnector{pool: pool}, nil
}

// WithConn acquires a pooled connection, runs fn and releases it.
func (c *poolConnector) WithConn(ctx context.Context, fn func(q Querier) error) error {
	conn, err := c.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire database connection: %w", err)
	}
	defer conn.Release()

	return fn(conn)
}

// Close closes the pool.
func (c *poolConnector) Close() {
	c.pool.Close()
}
