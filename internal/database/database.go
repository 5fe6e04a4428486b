package database

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Pool is the subset of the connection pool used for health checks
type Pool interface {
	Ping(ctx context.Context) error
	Close()
}

// PoolConfig sizes and labels the punishment store's connection pool
type PoolConfig struct {
	ConnString      string
	MaxConns        int
	MaxConnIdleTime time.Duration
	MaxConnLifetime time.Duration
	// ApplicationName shows up in pg_stat_activity
	ApplicationName string
}

// NewPool opens the pool and pings it. Sessions run in UTC so timestamptz values
// scan back in the same zone the reducer compares them in.
func NewPool(ctx context.Context, cfg PoolConfig) (*pgxpool.Pool, error) {
	pc, err := pgxpool.ParseConfig(cfg.ConnString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToParseConnString, err)
	}

	maxConns := cfg.MaxConns
	switch {
	case maxConns <= 0:
		maxConns = DefaultMaxConnections
	case maxConns > math.MaxInt32:
		maxConns = math.MaxInt32
	}
	pc.MaxConns = int32(maxConns)
	pc.MinConns = min(DefaultMinConnections, pc.MaxConns)
	if cfg.MaxConnLifetime > 0 {
		pc.MaxConnLifetime = cfg.MaxConnLifetime
	}
	if cfg.MaxConnIdleTime > 0 {
		pc.MaxConnIdleTime = cfg.MaxConnIdleTime
	}

	params := pc.ConnConfig.RuntimeParams
	params[RuntimeParamTimezone] = SessionTimezone
	if cfg.ApplicationName != "" {
		params[RuntimeParamApplicationName] = cfg.ApplicationName
	}

	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToCreatePool, err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, PingTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToPingDatabase, err)
	}

	slog.Default().Info(LogMsgSuccessfullyConnectedToDatabase,
		"max_conns", pc.MaxConns, "application_name", cfg.ApplicationName)
	return pool, nil
}
