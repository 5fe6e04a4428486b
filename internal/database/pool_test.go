package database

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/osse101/modstanding/internal/testing/leaktest"
)

var testDBConnString string

func TestMain(m *testing.M) {
	flag.Parse()

	var terminate func()
	if !testing.Short() {
		testDBConnString, terminate = setupContainer(context.Background())
	}

	code := m.Run()

	if terminate != nil {
		terminate()
	}
	os.Exit(code)
}

func setupContainer(ctx context.Context) (string, func()) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("Recovered from panic in setupContainer: %v\n", r)
		}
	}()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		fmt.Printf("WARNING: Failed to start postgres container: %v\n", err)
		return "", func() {}
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		fmt.Printf("WARNING: Failed to get connection string: %v\n", err)
		_ = pgContainer.Terminate(ctx)
		return "", func() {}
	}

	return connStr, func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			fmt.Printf("Failed to terminate container: %v\n", err)
		}
	}
}

func requireDB(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if testDBConnString == "" {
		t.Skip("Skipping integration test: database not available")
	}
}

func TestNewPool_InvalidConnString(t *testing.T) {
	_, err := NewPool(context.Background(), PoolConfig{ConnString: "://not a url", MaxConns: 5})
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgFailedToParseConnString)
}

func TestNewPool_SessionSettings(t *testing.T) {
	requireDB(t)

	ctx := context.Background()
	pool, err := NewPool(ctx, PoolConfig{ConnString: testDBConnString, ApplicationName: "modstanding-test"})
	require.NoError(t, err)
	defer pool.Close()

	assert.Equal(t, int32(DefaultMaxConnections), pool.Config().MaxConns, "unset max conns falls back to the default")

	var tz, app string
	require.NoError(t, pool.QueryRow(ctx, `SELECT current_setting('TimeZone'), current_setting('application_name')`).Scan(&tz, &app))
	assert.Equal(t, SessionTimezone, tz)
	assert.Equal(t, "modstanding-test", app)
}

func TestMigrate_CreatesSchemaAndIsIdempotent(t *testing.T) {
	requireDB(t)

	ctx := context.Background()
	pool, err := NewPool(ctx, PoolConfig{ConnString: testDBConnString, MaxConns: 5})
	require.NoError(t, err)
	defer pool.Close()

	require.NoError(t, Migrate(ctx, pool))
	require.NoError(t, Migrate(ctx, pool), "second run has nothing to apply")

	for _, table := range []string{"punishments", "punishment_modifications", "punishment_notes", "punishment_types", "status_thresholds", "standing_tiers"} {
		var exists bool
		err := pool.QueryRow(ctx, `SELECT to_regclass($1) IS NOT NULL`, "public."+table).Scan(&exists)
		require.NoError(t, err)
		assert.True(t, exists, "table %s", table)
	}

	_, err = pool.Exec(ctx, `INSERT INTO punishment_types (ordinal, name, category, definition) VALUES (3, 'x', 'social', '{}')`)
	assert.Error(t, err, "reserved ordinals cannot be stored")
}

func TestPool_ConcurrentAccessReleasesConnections(t *testing.T) {
	requireDB(t)

	pool, err := NewPool(context.Background(), PoolConfig{
		ConnString:      testDBConnString,
		MaxConns:        10,
		MaxConnIdleTime: time.Minute,
		MaxConnLifetime: 5 * time.Minute,
	})
	require.NoError(t, err)
	defer pool.Close()

	checker := leaktest.NewGoroutineChecker(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			ctx := context.Background()
			conn, err := pool.Acquire(ctx)
			if err != nil {
				t.Errorf("worker %d failed to acquire connection: %v", id, err)
				return
			}
			defer conn.Release()

			var result int
			if err := conn.QueryRow(ctx, "SELECT $1::int", id).Scan(&result); err != nil {
				t.Errorf("worker %d query failed: %v", id, err)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(0), pool.Stat().AcquiredConns(), "all connections should be released")
	checker.Check(2)
}
