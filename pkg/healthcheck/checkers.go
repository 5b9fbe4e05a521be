package healthcheck

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// CheckFunc adapts a plain function to the Checker interface
type CheckFunc func(ctx context.Context) Check

// Check implements Checker
func (f CheckFunc) Check(ctx context.Context) Check {
	return f(ctx)
}

// PostgresChecker pings the connection pool serving the repositories
type PostgresChecker struct {
	pool *pgxpool.Pool
}

// NewPostgresChecker creates a database health checker
func NewPostgresChecker(pool *pgxpool.Pool) *PostgresChecker {
	return &PostgresChecker{pool: pool}
}

// Check pings the database and reports pool saturation as degraded
func (c *PostgresChecker) Check(ctx context.Context) Check {
	start := time.Now()
	check := Check{Status: StatusHealthy, LastChecked: start}

	if err := c.pool.Ping(ctx); err != nil {
		check.Status = StatusUnhealthy
		check.Message = err.Error()
		check.Duration = time.Since(start)
		return check
	}

	stat := c.pool.Stat()
	if stat.MaxConns() > 0 && stat.AcquiredConns() == stat.MaxConns() {
		check.Status = StatusDegraded
		check.Message = "connection pool exhausted"
	}
	check.Duration = time.Since(start)
	return check
}

// RedisChecker pings the cache backing the recipe catalog
type RedisChecker struct {
	client *redis.Client
}

// NewRedisChecker creates a cache health checker
func NewRedisChecker(client *redis.Client) *RedisChecker {
	return &RedisChecker{client: client}
}

// Check pings the cache. The catalog cache is an optimization, so a
// failing cache degrades the service but does not take it down.
func (c *RedisChecker) Check(ctx context.Context) Check {
	start := time.Now()
	check := Check{Status: StatusHealthy, LastChecked: start}

	if err := c.client.Ping(ctx).Err(); err != nil {
		check.Status = StatusDegraded
		check.Message = err.Error()
	}
	check.Duration = time.Since(start)
	return check
}
